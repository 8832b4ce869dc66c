package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/service"
)

type orderHandler struct {
	lifecycle service.OrderLifecycleService
	payments  service.PaymentService
	inventory service.InventoryService
}

type orderResponse struct {
	Order *domain.Order      `json:"order"`
	Items []domain.OrderItem `json:"items,omitempty"`
}

func (h *orderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	order, items, err := h.lifecycle.GetOrder(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orderResponse{Order: order, Items: items})
}

func (h *orderHandler) listCustomerOrders(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	page, pageSize := pagination(r)
	status := domain.OrderStatus(r.URL.Query().Get("status"))
	orders, total, err := h.lifecycle.ListCustomerOrders(r.Context(), claims.UserID, status, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: orders, Total: total, Page: page})
}

func (h *orderHandler) listVendorOrders(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	page, pageSize := pagination(r)
	status := domain.OrderStatus(r.URL.Query().Get("status"))
	orders, total, err := h.lifecycle.ListVendorOrders(r.Context(), claims.UserID, status, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: orders, Total: total, Page: page})
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

func (h *orderHandler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	var req cancelOrderRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	order, err := h.lifecycle.CancelOrder(r.Context(), claims.UserID, mux.Vars(r)["id"], req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orderResponse{Order: order})
}

func (h *orderHandler) approveOrder(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	order, err := h.lifecycle.ApproveOrder(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orderResponse{Order: order})
}

type rejectOrderRequest struct {
	Reason string `json:"reason"`
}

func (h *orderHandler) rejectOrder(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	var req rejectOrderRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	order, err := h.lifecycle.RejectOrder(r.Context(), claims.UserID, mux.Vars(r)["id"], req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orderResponse{Order: order})
}

func (h *orderHandler) activateRental(w http.ResponseWriter, r *http.Request) {
	order, err := h.lifecycle.ActivateRental(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orderResponse{Order: order})
}

type completeRentalRequest struct {
	WithheldCents  int64  `json:"withheld_cents"`
	WithholdReason string `json:"withhold_reason"`
}

func (h *orderHandler) completeRental(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	var req completeRentalRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	order, err := h.lifecycle.CompleteRental(r.Context(), claims.UserID, mux.Vars(r)["id"], req.WithheldCents, req.WithholdReason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orderResponse{Order: order})
}

func (h *orderHandler) getOrderRefund(w http.ResponseWriter, r *http.Request) {
	refund, err := h.payments.GetRefundForOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, refund)
}

func (h *orderHandler) listOrderLocks(w http.ResponseWriter, r *http.Request) {
	locks, err := h.inventory.ListLocks(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, locks)
}
