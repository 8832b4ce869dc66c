package service

import (
	"context"
	"time"

	"renthub-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	args := m.Called(ctx, order, items)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Order, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) GetItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]domain.OrderItem), args.Error(1)
}
func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockOrderRepo) UpdateDeposit(ctx context.Context, id string, status domain.DepositStatus, withheldCents int64, reason string) error {
	args := m.Called(ctx, id, status, withheldCents, reason)
	return args.Error(0)
}
func (m *MockOrderRepo) UpdateLateFee(ctx context.Context, id string, lateFeeCents int64) error {
	args := m.Called(ctx, id, lateFeeCents)
	return args.Error(0)
}
func (m *MockOrderRepo) UpdateRejectionReason(ctx context.Context, id string, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}
func (m *MockOrderRepo) ListByCustomer(ctx context.Context, customerID string, status domain.OrderStatus, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) ListByVendor(ctx context.Context, vendorID string, status domain.OrderStatus, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, vendorID, status, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) ListStale(ctx context.Context, status domain.OrderStatus, cutoff time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, status, cutoff)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListDueForActivation(ctx context.Context, now time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListOverdue(ctx context.Context, now time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Order), args.Error(1)
}

// MockLockRepo
type MockLockRepo struct {
	mock.Mock
}

func (m *MockLockRepo) Reserve(ctx context.Context, variantID, orderID string, start, end time.Time, quantity int32) ([]domain.InventoryLock, error) {
	args := m.Called(ctx, variantID, orderID, start, end, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryLock), args.Error(1)
}
func (m *MockLockRepo) CountOverlapping(ctx context.Context, variantID string, start, end time.Time) (int32, error) {
	args := m.Called(ctx, variantID, start, end)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockLockRepo) ReleaseByOrderID(ctx context.Context, orderID string) (int32, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockLockRepo) ListByOrderID(ctx context.Context, orderID string) ([]domain.InventoryLock, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]domain.InventoryLock), args.Error(1)
}

// MockPeriodRepo
type MockPeriodRepo struct {
	mock.Mock
}

func (m *MockPeriodRepo) Create(ctx context.Context, period *domain.RentalPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}
func (m *MockPeriodRepo) GetByID(ctx context.Context, id string) (*domain.RentalPeriod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalPeriod), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Payment, error) {
	args := m.Called(ctx, gatewayOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) MarkVerified(ctx context.Context, id, gatewayPaymentID, signature string, verifiedAt time.Time) error {
	args := m.Called(ctx, id, gatewayPaymentID, signature, verifiedAt)
	return args.Error(0)
}
func (m *MockPaymentRepo) MarkFailed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRefundRepo
type MockRefundRepo struct {
	mock.Mock
}

func (m *MockRefundRepo) Create(ctx context.Context, refund *domain.Refund) error {
	args := m.Called(ctx, refund)
	return args.Error(0)
}
func (m *MockRefundRepo) GetByID(ctx context.Context, id string) (*domain.Refund, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}
func (m *MockRefundRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Refund, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}
func (m *MockRefundRepo) GetByGatewayRefundID(ctx context.Context, gatewayRefundID string) (*domain.Refund, error) {
	args := m.Called(ctx, gatewayRefundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}
func (m *MockRefundRepo) UpdateStatus(ctx context.Context, id string, status domain.RefundStatus, gatewayRefundID string, processedAt *time.Time) error {
	args := m.Called(ctx, id, status, gatewayRefundID, processedAt)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) ListByVendor(ctx context.Context, vendorID string, page, pageSize int32) ([]domain.Product, int32, error) {
	args := m.Called(ctx, vendorID, page, pageSize)
	return args.Get(0).([]domain.Product), args.Get(1).(int32), args.Error(2)
}
func (m *MockProductRepo) Search(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Product, int32, error) {
	args := m.Called(ctx, query, category, page, pageSize)
	return args.Get(0).([]domain.Product), args.Get(1).(int32), args.Error(2)
}
func (m *MockProductRepo) CreateVariant(ctx context.Context, variant *domain.Variant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}
func (m *MockProductRepo) GetVariantByID(ctx context.Context, id string) (*domain.Variant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Variant), args.Error(1)
}
func (m *MockProductRepo) UpdateVariant(ctx context.Context, variant *domain.Variant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}
func (m *MockProductRepo) ListVariants(ctx context.Context, productID string) ([]domain.Variant, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.Variant), args.Error(1)
}

// MockInterventionRepo
type MockInterventionRepo struct {
	mock.Mock
}

func (m *MockInterventionRepo) Create(ctx context.Context, item *domain.AdminIntervention) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockInterventionRepo) GetByID(ctx context.Context, id string) (*domain.AdminIntervention, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminIntervention), args.Error(1)
}
func (m *MockInterventionRepo) ListPending(ctx context.Context, page, pageSize int32) ([]domain.AdminIntervention, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.AdminIntervention), args.Get(1).(int32), args.Error(2)
}
func (m *MockInterventionRepo) Resolve(ctx context.Context, id, note string, resolvedAt time.Time) error {
	args := m.Called(ctx, id, note, resolvedAt)
	return args.Error(0)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amountCents int64, currency, receipt string) (string, error) {
	args := m.Called(ctx, amountCents, currency, receipt)
	return args.String(0), args.Error(1)
}
func (m *MockGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	args := m.Called(gatewayOrderID, gatewayPaymentID, signature)
	return args.Bool(0)
}
func (m *MockGateway) Refund(ctx context.Context, gatewayPaymentID string, amountCents int64) (string, error) {
	args := m.Called(ctx, gatewayPaymentID, amountCents)
	return args.String(0), args.Error(1)
}

// MockPaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) CreateRefund(ctx context.Context, orderID, paymentID string, amountCents int64, reason string) (*domain.Refund, error) {
	args := m.Called(ctx, orderID, paymentID, amountCents, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}
func (m *MockPaymentService) GetRefundForOrder(ctx context.Context, orderID string) (*domain.Refund, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}
func (m *MockPaymentService) ProcessRefundCallback(ctx context.Context, gatewayRefundID string, succeeded bool) error {
	args := m.Called(ctx, gatewayRefundID, succeeded)
	return args.Error(0)
}
func (m *MockPaymentService) ListInterventions(ctx context.Context, page, pageSize int32) ([]domain.AdminIntervention, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.AdminIntervention), args.Get(1).(int32), args.Error(2)
}
func (m *MockPaymentService) ResolveIntervention(ctx context.Context, adminID, interventionID, note string) error {
	args := m.Called(ctx, adminID, interventionID, note)
	return args.Error(0)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Dispatch(ctx context.Context, eventType, userID, title, message string, attrs map[string]string) error {
	args := m.Called(ctx, eventType, userID, title, message, attrs)
	return args.Error(0)
}
func (m *MockNotificationService) AlreadySent(ctx context.Context, eventType, orderID string) (bool, error) {
	args := m.Called(ctx, eventType, orderID)
	return args.Bool(0), args.Error(1)
}
func (m *MockNotificationService) List(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOrderPlacedNotification(ctx context.Context, vendorEmail, customerName, orderNumber string) error {
	args := m.Called(ctx, vendorEmail, customerName, orderNumber)
	return args.Error(0)
}
func (m *MockEmailService) SendOrderApprovedNotification(ctx context.Context, customerEmail, orderNumber string) error {
	args := m.Called(ctx, customerEmail, orderNumber)
	return args.Error(0)
}
func (m *MockEmailService) SendOrderRejectedNotification(ctx context.Context, customerEmail, orderNumber, reason string) error {
	args := m.Called(ctx, customerEmail, orderNumber, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendRefundInitiatedNotification(ctx context.Context, customerEmail, orderNumber string, amountCents int64) error {
	args := m.Called(ctx, customerEmail, orderNumber, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendApprovalReminderNotification(ctx context.Context, vendorEmail, orderNumber string, hoursLeft int) error {
	args := m.Called(ctx, vendorEmail, orderNumber, hoursLeft)
	return args.Error(0)
}
func (m *MockEmailService) SendLateReturnNotification(ctx context.Context, email, orderNumber string, lateFeeCents int64) error {
	args := m.Called(ctx, email, orderNumber, lateFeeCents)
	return args.Error(0)
}
func (m *MockEmailService) SendAdminAlert(ctx context.Context, adminEmail, subject, message string) error {
	args := m.Called(ctx, adminEmail, subject, message)
	return args.Error(0)
}
