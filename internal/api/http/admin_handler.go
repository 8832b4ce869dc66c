package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"renthub-backend/internal/service"
)

type adminHandler struct {
	payments service.PaymentService
}

func (h *adminHandler) listInterventions(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	interventions, total, err := h.payments.ListInterventions(r.Context(), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: interventions, Total: total, Page: page})
}

type resolveInterventionRequest struct {
	Note string `json:"note"`
}

func (h *adminHandler) resolveIntervention(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	var req resolveInterventionRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.payments.ResolveIntervention(r.Context(), claims.UserID, mux.Vars(r)["id"], req.Note); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "resolved"})
}

type refundRequest struct {
	PaymentID   string `json:"payment_id"`
	AmountCents int64  `json:"amount_cents"`
	Reason      string `json:"reason"`
}

// createRefund lets an admin issue a manual refund, typically to resolve a
// REFUND_FAILED intervention after fixing the underlying gateway problem.
func (h *adminHandler) createRefund(w http.ResponseWriter, r *http.Request) {
	var req refundRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	refund, err := h.payments.CreateRefund(r.Context(), mux.Vars(r)["id"], req.PaymentID, req.AmountCents, req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, refund)
}
