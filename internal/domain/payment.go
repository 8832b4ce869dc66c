package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusCreated  PaymentStatus = "CREATED"
	PaymentStatusVerified PaymentStatus = "VERIFIED"
	PaymentStatusFailed   PaymentStatus = "FAILED"
)

// Payment records a gateway charge. A payment is created before the customer
// completes checkout on the gateway side and verified afterwards; order
// creation is gated strictly on VERIFIED. At most one order references a
// payment (unique constraint on orders.payment_id).
type Payment struct {
	ID               string            `json:"id"`
	GatewayOrderID   string            `json:"gateway_order_id"`
	GatewayPaymentID string            `json:"gateway_payment_id,omitempty"`
	GatewaySignature string            `json:"gateway_signature,omitempty"`
	AmountCents      int64             `json:"amount_cents"`
	Currency         string            `json:"currency"`
	Status           PaymentStatus     `json:"status"`
	CustomerID       string            `json:"customer_id"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	VerifiedAt       *time.Time        `json:"verified_at,omitempty"`
}

type RefundStatus string

const (
	RefundStatusInitiated  RefundStatus = "INITIATED"
	RefundStatusInProgress RefundStatus = "IN_PROGRESS"
	RefundStatusCompleted  RefundStatus = "COMPLETED"
	RefundStatusFailed     RefundStatus = "FAILED"
)

// Refund is money returned against a verified payment. AmountCents never
// exceeds the payment's amount; deposit withholding reduces it.
type Refund struct {
	ID              string       `json:"id"`
	PaymentID       string       `json:"payment_id"`
	OrderID         string       `json:"order_id"`
	AmountCents     int64        `json:"amount_cents"`
	Reason          string       `json:"reason"`
	Status          RefundStatus `json:"status"`
	GatewayRefundID string       `json:"gateway_refund_id,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	ProcessedAt     *time.Time   `json:"processed_at,omitempty"`
}
