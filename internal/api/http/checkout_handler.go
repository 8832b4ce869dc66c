package http

import (
	"net/http"
	"time"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/service"
)

type checkoutHandler struct {
	checkoutSvc service.CheckoutService
	payments service.PaymentService
}

type checkoutItemRequest struct {
	VariantID    string    `json:"variant_id"`
	Quantity     int32     `json:"quantity"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	DurationUnit string    `json:"duration_unit"`
}

type checkoutRequest struct {
	Items []checkoutItemRequest `json:"items"`
}

type checkoutResponse struct {
	PaymentID      string `json:"payment_id"`
	GatewayOrderID string `json:"gateway_order_id"`
	TotalCents     int64  `json:"total_cents"`
	DepositCents   int64  `json:"deposit_cents"`
	Currency       string `json:"currency"`
}

func (h *checkoutHandler) checkout(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	var req checkoutRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if len(req.Items) == 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "no items to check out"})
		return
	}
	items := make([]service.CheckoutItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.CheckoutItem{
			VariantID:    it.VariantID,
			Quantity:     it.Quantity,
			Start:        it.Start,
			End:          it.End,
			DurationUnit: domain.DurationUnit(it.DurationUnit),
		})
	}
	result, err := h.checkoutSvc.Checkout(r.Context(), claims.UserID, items)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, checkoutResponse{
		PaymentID:      result.Payment.ID,
		GatewayOrderID: result.GatewayOrderID,
		TotalCents:     result.TotalCents,
		DepositCents:   result.DepositCents,
		Currency:       result.Payment.Currency,
	})
}

type confirmPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
}

func (h *checkoutHandler) confirmPayment(w http.ResponseWriter, r *http.Request) {
	var req confirmPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	order, err := h.checkoutSvc.ConfirmPayment(r.Context(), req.GatewayOrderID, req.GatewayPaymentID, req.Signature)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

type refundWebhookRequest struct {
	GatewayRefundID string `json:"gateway_refund_id"`
	Status          string `json:"status"`
}

// refundWebhook receives the gateway's asynchronous refund outcome.
func (h *checkoutHandler) refundWebhook(w http.ResponseWriter, r *http.Request) {
	var req refundWebhookRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.payments.ProcessRefundCallback(r.Context(), req.GatewayRefundID, req.Status == "processed"); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
