package jobs

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

// MockLifecycleService
type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) ApproveOrder(ctx context.Context, vendorID, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, vendorID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockLifecycleService) RejectOrder(ctx context.Context, vendorID, orderID, reason string) (*domain.Order, error) {
	args := m.Called(ctx, vendorID, orderID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockLifecycleService) CancelOrder(ctx context.Context, customerID, orderID, reason string) (*domain.Order, error) {
	args := m.Called(ctx, customerID, orderID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockLifecycleService) ActivateRental(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockLifecycleService) CompleteRental(ctx context.Context, vendorID, orderID string, withheldCents int64, withholdReason string) (*domain.Order, error) {
	args := m.Called(ctx, vendorID, orderID, withheldCents, withholdReason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockLifecycleService) ExpireApproval(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockLifecycleService) GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, []domain.OrderItem, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Order), args.Get(1).([]domain.OrderItem), args.Error(2)
}
func (m *MockLifecycleService) ListCustomerOrders(ctx context.Context, customerID string, status domain.OrderStatus, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}
func (m *MockLifecycleService) ListVendorOrders(ctx context.Context, vendorID string, status domain.OrderStatus, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, vendorID, status, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
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
