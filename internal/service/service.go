package service

import (
	"context"
	"time"

	"renthub-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string, role domain.UserRole) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type CatalogService interface {
	AddProduct(ctx context.Context, vendorID string, product *domain.Product, variants []domain.Variant) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, []domain.Variant, error)
	UpdateVariant(ctx context.Context, vendorID string, variant *domain.Variant) error
	SearchProducts(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Product, int32, error)
	ListVendorProducts(ctx context.Context, vendorID string, page, pageSize int32) ([]domain.Product, int32, error)
}

// InventoryService answers availability questions and owns lock release.
// Reservation itself happens inside checkout confirmation via the atomic
// repository path.
type InventoryService interface {
	IsAvailable(ctx context.Context, variantID string, start, end time.Time, quantity int32) (bool, error)
	ReleaseByOrderID(ctx context.Context, orderID string) error
	ListLocks(ctx context.Context, orderID string) ([]domain.InventoryLock, error)
}

// CheckoutItem is one requested line of a checkout: a variant, a quantity
// and the rental window.
type CheckoutItem struct {
	VariantID    string
	Quantity     int32
	Start        time.Time
	End          time.Time
	DurationUnit domain.DurationUnit
}

// CheckoutResult carries what the storefront needs to hand the customer to
// the gateway's payment page.
type CheckoutResult struct {
	Payment        *domain.Payment
	GatewayOrderID string
	TotalCents     int64
	DepositCents   int64
}

type CheckoutService interface {
	// Checkout validates periods and availability, prices the items and
	// creates a CREATED payment backed by a gateway order. No inventory is
	// reserved yet; reservation happens on payment confirmation.
	Checkout(ctx context.Context, customerID string, items []CheckoutItem) (*CheckoutResult, error)
	// ConfirmPayment verifies the gateway callback, reserves inventory and
	// creates the order in PAYMENT_SUCCESSFUL, then routes it to
	// AUTO_APPROVED or PENDING_VENDOR_APPROVAL per policy.
	ConfirmPayment(ctx context.Context, gatewayOrderID, gatewayPaymentID, signature string) (*domain.Order, error)
}

// OrderLifecycleService is the only mutator of order status. Every transition
// follows the closed table; callers get domain.ErrInvalidTransition for
// anything else.
type OrderLifecycleService interface {
	ApproveOrder(ctx context.Context, vendorID, orderID string) (*domain.Order, error)
	RejectOrder(ctx context.Context, vendorID, orderID, reason string) (*domain.Order, error)
	CancelOrder(ctx context.Context, customerID, orderID, reason string) (*domain.Order, error)
	ActivateRental(ctx context.Context, orderID string) (*domain.Order, error)
	// CompleteRental settles the return: late fee when past the period end,
	// deposit release or withholding per the vendor's damage report.
	CompleteRental(ctx context.Context, vendorID, orderID string, withheldCents int64, withholdReason string) (*domain.Order, error)
	// ExpireApproval rejects an order whose vendor never acted within the
	// approval window. Invoked by the scheduler.
	ExpireApproval(ctx context.Context, orderID string) (*domain.Order, error)

	GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, []domain.OrderItem, error)
	ListCustomerOrders(ctx context.Context, customerID string, status domain.OrderStatus, page, pageSize int32) ([]domain.Order, int32, error)
	ListVendorOrders(ctx context.Context, vendorID string, status domain.OrderStatus, page, pageSize int32) ([]domain.Order, int32, error)
}

type PaymentService interface {
	GetPayment(ctx context.Context, id string) (*domain.Payment, error)
	// CreateRefund records a refund bounded by the payment's verified
	// amount and initiates it with the gateway. A gateway failure leaves
	// the refund FAILED and files an admin intervention instead of
	// retrying.
	CreateRefund(ctx context.Context, orderID, paymentID string, amountCents int64, reason string) (*domain.Refund, error)
	GetRefundForOrder(ctx context.Context, orderID string) (*domain.Refund, error)
	// ProcessRefundCallback advances a refund to COMPLETED or FAILED from
	// the gateway's asynchronous confirmation. A failure files an admin
	// intervention.
	ProcessRefundCallback(ctx context.Context, gatewayRefundID string, succeeded bool) error
	ListInterventions(ctx context.Context, page, pageSize int32) ([]domain.AdminIntervention, int32, error)
	ResolveIntervention(ctx context.Context, adminID, interventionID, note string) error
}

type NotificationService interface {
	// Dispatch is fire-and-forget from the caller's perspective: lifecycle
	// transitions log dispatch failures and move on.
	Dispatch(ctx context.Context, eventType, userID, title, message string, attrs map[string]string) error
	// AlreadySent reports whether a notification of eventType was already
	// dispatched for the order, so recurring jobs notify at most once.
	AlreadySent(ctx context.Context, eventType, orderID string) (bool, error)
	List(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
}

type EmailService interface {
	SendOrderPlacedNotification(ctx context.Context, vendorEmail, customerName, orderNumber string) error
	SendOrderApprovedNotification(ctx context.Context, customerEmail, orderNumber string) error
	SendOrderRejectedNotification(ctx context.Context, customerEmail, orderNumber, reason string) error
	SendRefundInitiatedNotification(ctx context.Context, customerEmail, orderNumber string, amountCents int64) error
	SendApprovalReminderNotification(ctx context.Context, vendorEmail, orderNumber string, hoursLeft int) error
	SendLateReturnNotification(ctx context.Context, email, orderNumber string, lateFeeCents int64) error
	SendAdminAlert(ctx context.Context, adminEmail, subject, message string) error
}
