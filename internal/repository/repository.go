package repository

import (
	"context"
	"time"

	"renthub-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	ListByVendor(ctx context.Context, vendorID string, page, pageSize int32) ([]domain.Product, int32, error)
	Search(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Product, int32, error)

	// Variants
	CreateVariant(ctx context.Context, variant *domain.Variant) error
	GetVariantByID(ctx context.Context, id string) (*domain.Variant, error)
	UpdateVariant(ctx context.Context, variant *domain.Variant) error
	ListVariants(ctx context.Context, productID string) ([]domain.Variant, error)
}

type PeriodRepository interface {
	Create(ctx context.Context, period *domain.RentalPeriod) error
	GetByID(ctx context.Context, id string) (*domain.RentalPeriod, error)
}

// InventoryLockRepository owns the only multi-writer shared table. Reserve is
// the single entry point for creating locks: it holds a row lock on the
// variant while it re-checks availability, so two concurrent checkouts for
// the last unit cannot both succeed.
type InventoryLockRepository interface {
	// Reserve atomically checks availability of variantID over [start, end)
	// and inserts quantity ACTIVE locks for orderID. Returns
	// domain.ErrInventoryConflict when stock is insufficient.
	Reserve(ctx context.Context, variantID, orderID string, start, end time.Time, quantity int32) ([]domain.InventoryLock, error)
	// CountOverlapping counts ACTIVE locks on variantID intersecting
	// [start, end) using the half-open overlap test.
	CountOverlapping(ctx context.Context, variantID string, start, end time.Time) (int32, error)
	// ReleaseByOrderID releases every ACTIVE lock held by orderID.
	// Idempotent: already-released locks keep their released_at.
	ReleaseByOrderID(ctx context.Context, orderID string) (int32, error)
	ListByOrderID(ctx context.Context, orderID string) ([]domain.InventoryLock, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order, items []domain.OrderItem) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*domain.Order, error)
	GetItems(ctx context.Context, orderID string) ([]domain.OrderItem, error)
	// UpdateStatus performs a compare-and-swap on the order status. It
	// returns domain.ErrInvalidTransition when the row is no longer in the
	// expected status, so concurrent transition attempts cannot silently
	// overwrite each other.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) error
	UpdateDeposit(ctx context.Context, id string, status domain.DepositStatus, withheldCents int64, reason string) error
	UpdateLateFee(ctx context.Context, id string, lateFeeCents int64) error
	UpdateRejectionReason(ctx context.Context, id string, reason string) error
	ListByCustomer(ctx context.Context, customerID string, status domain.OrderStatus, page, pageSize int32) ([]domain.Order, int32, error)
	ListByVendor(ctx context.Context, vendorID string, status domain.OrderStatus, page, pageSize int32) ([]domain.Order, int32, error)
	// ListStale returns orders in the given status created before cutoff.
	// Used by the approval-timeout and reminder jobs.
	ListStale(ctx context.Context, status domain.OrderStatus, cutoff time.Time) ([]domain.Order, error)
	// ListDueForActivation returns AUTO_APPROVED orders whose earliest
	// rental period start is at or before now.
	ListDueForActivation(ctx context.Context, now time.Time) ([]domain.Order, error)
	// ListOverdue returns ACTIVE_RENTAL orders whose latest rental period
	// end is before now.
	ListOverdue(ctx context.Context, now time.Time) ([]domain.Order, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Payment, error)
	// MarkVerified stamps the gateway payment id, signature and verified_at
	// on a CREATED payment.
	MarkVerified(ctx context.Context, id, gatewayPaymentID, signature string, verifiedAt time.Time) error
	MarkFailed(ctx context.Context, id string) error
}

type RefundRepository interface {
	Create(ctx context.Context, refund *domain.Refund) error
	GetByID(ctx context.Context, id string) (*domain.Refund, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Refund, error)
	GetByGatewayRefundID(ctx context.Context, gatewayRefundID string) (*domain.Refund, error)
	UpdateStatus(ctx context.Context, id string, status domain.RefundStatus, gatewayRefundID string, processedAt *time.Time) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID string) error
	// ExistsByTypeAndOrder reports whether a notification with the given
	// type and order_id attributes was already created. Used by recurring
	// jobs to avoid re-notifying on every run.
	ExistsByTypeAndOrder(ctx context.Context, eventType, orderID string) (bool, error)
}

type InterventionRepository interface {
	Create(ctx context.Context, item *domain.AdminIntervention) error
	GetByID(ctx context.Context, id string) (*domain.AdminIntervention, error)
	ListPending(ctx context.Context, page, pageSize int32) ([]domain.AdminIntervention, int32, error)
	// Resolve requires a non-empty resolution note.
	Resolve(ctx context.Context, id, note string, resolvedAt time.Time) error
}
