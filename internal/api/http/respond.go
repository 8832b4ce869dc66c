package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/logger"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps the domain taxonomy onto HTTP statuses. Validation
// outcomes are client errors with their message passed through; anything
// unrecognized is a 500 with a generic body.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidPeriod):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInventoryConflict):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "the requested dates are no longer available"})
	case errors.Is(err, domain.ErrInvalidTransition):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "the order cannot change state that way"})
	case errors.Is(err, domain.ErrRefundExceedsPayment):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "refund exceeds the original payment"})
	case errors.Is(err, domain.ErrPaymentNotVerified):
		respondJSON(w, http.StatusPaymentRequired, errorResponse{Error: "payment could not be verified"})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrUnauthorized):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	default:
		logger.Error("Request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
