package domain

import "errors"

// Domain error taxonomy. Validation errors (ErrInvalidPeriod,
// ErrInventoryConflict) are expected outcomes surfaced to the caller.
// ErrInvalidTransition and ErrRefundExceedsPayment indicate a data-integrity
// fault and are logged with full context at the site that detects them.
var (
	ErrInvalidPeriod        = errors.New("invalid rental period")
	ErrInventoryConflict    = errors.New("inventory not available for requested period")
	ErrInvalidTransition    = errors.New("invalid order status transition")
	ErrRefundExceedsPayment = errors.New("refund amount exceeds payment amount")
	ErrPaymentNotVerified   = errors.New("payment is not verified")
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("unauthorized")
)
