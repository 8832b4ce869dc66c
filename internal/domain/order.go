package domain

import "time"

type OrderStatus string

const (
	OrderStatusPaymentSuccessful     OrderStatus = "PAYMENT_SUCCESSFUL"
	OrderStatusPendingVendorApproval OrderStatus = "PENDING_VENDOR_APPROVAL"
	OrderStatusAutoApproved          OrderStatus = "AUTO_APPROVED"
	OrderStatusActiveRental          OrderStatus = "ACTIVE_RENTAL"
	OrderStatusCompleted             OrderStatus = "COMPLETED"
	OrderStatusRejected              OrderStatus = "REJECTED"
	OrderStatusRefunded              OrderStatus = "REFUNDED"
	OrderStatusCancelled             OrderStatus = "CANCELLED"
)

// Terminal reports whether no further transitions are allowed out of s.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusRejected, OrderStatusRefunded, OrderStatusCancelled:
		return true
	}
	return false
}

type DepositStatus string

const (
	DepositStatusHeld              DepositStatus = "HELD"
	DepositStatusReleased          DepositStatus = "RELEASED"
	DepositStatusWithheld          DepositStatus = "WITHHELD"
	DepositStatusPartiallyWithheld DepositStatus = "PARTIALLY_WITHHELD"
)

// Order is one customer's rental transaction against one vendor.
// Status mutations go through the lifecycle service only; direct writes
// bypass the compare-and-swap guard and are not allowed.
type Order struct {
	ID                   string        `json:"id"`
	OrderNumber          string        `json:"order_number"`
	CustomerID           string        `json:"customer_id"`
	VendorID             string        `json:"vendor_id"`
	PaymentID            string        `json:"payment_id"`
	Status               OrderStatus   `json:"status"`
	TotalAmountCents     int64         `json:"total_amount_cents"`
	DepositAmountCents   int64         `json:"deposit_amount_cents"`
	DepositStatus        DepositStatus `json:"deposit_status"`
	DepositWithheldCents int64         `json:"deposit_withheld_cents"`
	DepositReleaseReason string        `json:"deposit_release_reason,omitempty"`
	LateFeeCents         int64         `json:"late_fee_cents"`
	RejectionReason      string        `json:"rejection_reason,omitempty"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// OrderItem is one line of an order: a variant rented for a period.
// UnitPriceCents is a snapshot of the variant's daily price at checkout time;
// cost calculations never read live catalog prices.
type OrderItem struct {
	ID             string `json:"id"`
	OrderID        string `json:"order_id"`
	ProductID      string `json:"product_id"`
	VariantID      string `json:"variant_id"`
	PeriodID       string `json:"period_id"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}
