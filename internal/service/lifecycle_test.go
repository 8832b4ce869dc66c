package service

import (
	"context"
	"testing"
	"time"

	"renthub-backend/internal/clock"
	"renthub-backend/internal/config"
	"renthub-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testRentalConfig() config.RentalConfig {
	return config.RentalConfig{
		ApprovalTimeoutHours:      24,
		ApprovalReminderHours:     6,
		LateFeeGraceMinutes:       30,
		LateFeePctBps:             15000,
		CancelFullRefundHours:     48,
		CancelPartialRefundPctBps: 5000,
		Currency:                  "INR",
	}
}

type lifecycleFixture struct {
	orderRepo   *MockOrderRepo
	lockRepo    *MockLockRepo
	periodRepo  *MockPeriodRepo
	paymentRepo *MockPaymentRepo
	userRepo    *MockUserRepo
	paymentSvc  *MockPaymentService
	noteSvc     *MockNotificationService
	emailSvc    *MockEmailService
	svc         OrderLifecycleService
}

func newLifecycleFixture(now time.Time) *lifecycleFixture {
	f := &lifecycleFixture{
		orderRepo:   new(MockOrderRepo),
		lockRepo:    new(MockLockRepo),
		periodRepo:  new(MockPeriodRepo),
		paymentRepo: new(MockPaymentRepo),
		userRepo:    new(MockUserRepo),
		paymentSvc:  new(MockPaymentService),
		noteSvc:     new(MockNotificationService),
		emailSvc:    new(MockEmailService),
	}
	f.svc = NewOrderLifecycleService(
		f.orderRepo, f.lockRepo, f.periodRepo, f.paymentRepo, f.userRepo,
		f.paymentSvc, f.noteSvc, f.emailSvc,
		clock.Fixed(now), testRentalConfig(),
	)
	return f
}

func TestTransitionTable(t *testing.T) {
	all := []domain.OrderStatus{
		domain.OrderStatusPaymentSuccessful,
		domain.OrderStatusPendingVendorApproval,
		domain.OrderStatusAutoApproved,
		domain.OrderStatusActiveRental,
		domain.OrderStatusCompleted,
		domain.OrderStatusRejected,
		domain.OrderStatusRefunded,
		domain.OrderStatusCancelled,
	}
	allowed := map[domain.OrderStatus]map[domain.OrderStatus]bool{
		domain.OrderStatusPaymentSuccessful: {
			domain.OrderStatusAutoApproved:          true,
			domain.OrderStatusPendingVendorApproval: true,
		},
		domain.OrderStatusPendingVendorApproval: {
			domain.OrderStatusAutoApproved: true,
			domain.OrderStatusRejected:     true,
			domain.OrderStatusCancelled:    true,
		},
		domain.OrderStatusAutoApproved: {
			domain.OrderStatusActiveRental: true,
			domain.OrderStatusCancelled:    true,
		},
		domain.OrderStatusActiveRental: {
			domain.OrderStatusCompleted: true,
			domain.OrderStatusRefunded:  true,
		},
	}
	for _, from := range all {
		for _, to := range all {
			got := canTransition(from, to)
			assert.Equal(t, allowed[from][to], got, "%s -> %s", from, to)
		}
	}

	t.Run("Terminal states have no exits", func(t *testing.T) {
		for _, from := range all {
			if !from.Terminal() {
				continue
			}
			for _, to := range all {
				assert.False(t, canTransition(from, to), "%s -> %s", from, to)
			}
		}
	})
}

func TestApproveOrder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	order := func(status domain.OrderStatus) *domain.Order {
		return &domain.Order{
			ID: "ord-1", OrderNumber: "RNT-20260310-ABCDEF01",
			CustomerID: "cust-1", VendorID: "vend-1", PaymentID: "pay-1",
			Status: status, TotalAmountCents: 10000, DepositAmountCents: 2000,
		}
	}

	t.Run("Success", func(t *testing.T) {
		f := newLifecycleFixture(now)
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(order(domain.OrderStatusPendingVendorApproval), nil)
		f.orderRepo.On("UpdateStatus", ctx, "ord-1", domain.OrderStatusPendingVendorApproval, domain.OrderStatusAutoApproved).Return(nil)
		f.noteSvc.On("Dispatch", ctx, "ORDER_APPROVED", "cust-1", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.userRepo.On("GetByID", ctx, "cust-1").Return(&domain.User{ID: "cust-1", Email: "c@test.com"}, nil)
		f.emailSvc.On("SendOrderApprovedNotification", ctx, "c@test.com", mock.Anything).Return(nil)

		res, err := f.svc.ApproveOrder(ctx, "vend-1", "ord-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusAutoApproved, res.Status)
	})

	t.Run("Wrong vendor", func(t *testing.T) {
		f := newLifecycleFixture(now)
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(order(domain.OrderStatusPendingVendorApproval), nil)

		_, err := f.svc.ApproveOrder(ctx, "someone-else", "ord-1")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		f.orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Terminal order cannot be approved", func(t *testing.T) {
		f := newLifecycleFixture(now)
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(order(domain.OrderStatusCancelled), nil)

		_, err := f.svc.ApproveOrder(ctx, "vend-1", "ord-1")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		f.orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Lost status race surfaces as invalid transition", func(t *testing.T) {
		f := newLifecycleFixture(now)
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(order(domain.OrderStatusPendingVendorApproval), nil)
		f.orderRepo.On("UpdateStatus", ctx, "ord-1", domain.OrderStatusPendingVendorApproval, domain.OrderStatusAutoApproved).
			Return(domain.ErrInvalidTransition)

		_, err := f.svc.ApproveOrder(ctx, "vend-1", "ord-1")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestRejectOrder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Releases inventory and refunds the full payment", func(t *testing.T) {
		f := newLifecycleFixture(now)
		order := &domain.Order{
			ID: "ord-1", OrderNumber: "RNT-1", CustomerID: "cust-1", VendorID: "vend-1",
			PaymentID: "pay-1", Status: domain.OrderStatusPendingVendorApproval,
			TotalAmountCents: 12000, DepositAmountCents: 2000,
		}
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(order, nil)
		f.orderRepo.On("UpdateStatus", ctx, "ord-1", domain.OrderStatusPendingVendorApproval, domain.OrderStatusRejected).Return(nil)
		f.orderRepo.On("UpdateRejectionReason", ctx, "ord-1", "out of stock").Return(nil)
		f.lockRepo.On("ReleaseByOrderID", ctx, "ord-1").Return(int32(2), nil)
		f.paymentRepo.On("GetByID", ctx, "pay-1").Return(&domain.Payment{
			ID: "pay-1", AmountCents: 12000, Status: domain.PaymentStatusVerified,
		}, nil)
		f.paymentSvc.On("CreateRefund", ctx, "ord-1", "pay-1", int64(12000), "out of stock").
			Return(&domain.Refund{ID: "ref-1", AmountCents: 12000, Status: domain.RefundStatusInProgress}, nil)
		f.noteSvc.On("Dispatch", ctx, "ORDER_REJECTED", "cust-1", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.userRepo.On("GetByID", ctx, "cust-1").Return(&domain.User{Email: "c@test.com"}, nil)
		f.emailSvc.On("SendOrderRejectedNotification", ctx, "c@test.com", "RNT-1", "out of stock").Return(nil)
		f.emailSvc.On("SendRefundInitiatedNotification", ctx, "c@test.com", "RNT-1", int64(12000)).Return(nil)

		res, err := f.svc.RejectOrder(ctx, "vend-1", "ord-1", "out of stock")
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusRejected, res.Status)
		f.lockRepo.AssertNumberOfCalls(t, "ReleaseByOrderID", 1)
		f.paymentSvc.AssertNumberOfCalls(t, "CreateRefund", 1)
	})

	t.Run("Cannot reject an active rental", func(t *testing.T) {
		f := newLifecycleFixture(now)
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(&domain.Order{
			ID: "ord-1", VendorID: "vend-1", Status: domain.OrderStatusActiveRental,
		}, nil)

		_, err := f.svc.RejectOrder(ctx, "vend-1", "ord-1", "changed my mind")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		f.paymentSvc.AssertNotCalled(t, "CreateRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	order := func(status domain.OrderStatus) *domain.Order {
		return &domain.Order{
			ID: "ord-1", OrderNumber: "RNT-1", CustomerID: "cust-1", VendorID: "vend-1",
			PaymentID: "pay-1", Status: status,
			TotalAmountCents: 10000, DepositAmountCents: 2000,
		}
	}
	payment := &domain.Payment{ID: "pay-1", AmountCents: 10000, Status: domain.PaymentStatusVerified}
	items := []domain.OrderItem{{ID: "item-1", PeriodID: "per-1", Quantity: 1, UnitPriceCents: 1000}}

	t.Run("Full refund outside the cancellation window", func(t *testing.T) {
		f := newLifecycleFixture(now)
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(order(domain.OrderStatusAutoApproved), nil)
		f.paymentRepo.On("GetByID", ctx, "pay-1").Return(payment, nil)
		f.orderRepo.On("GetItems", ctx, "ord-1").Return(items, nil)
		f.periodRepo.On("GetByID", ctx, "per-1").Return(&domain.RentalPeriod{
			ID: "per-1", Start: now.Add(72 * time.Hour), End: now.Add(96 * time.Hour),
		}, nil)
		f.orderRepo.On("UpdateStatus", ctx, "ord-1", domain.OrderStatusAutoApproved, domain.OrderStatusCancelled).Return(nil)
		f.lockRepo.On("ReleaseByOrderID", ctx, "ord-1").Return(int32(1), nil)
		f.paymentSvc.On("CreateRefund", ctx, "ord-1", "pay-1", int64(10000), mock.Anything).
			Return(&domain.Refund{AmountCents: 10000}, nil)
		f.userRepo.On("GetByID", ctx, "cust-1").Return(&domain.User{Email: "c@test.com"}, nil)
		f.emailSvc.On("SendRefundInitiatedNotification", ctx, "c@test.com", "RNT-1", int64(10000)).Return(nil)
		f.noteSvc.On("Dispatch", ctx, "ORDER_CANCELLED", "vend-1", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		res, err := f.svc.CancelOrder(ctx, "cust-1", "ord-1", "plans changed")
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusCancelled, res.Status)
	})

	t.Run("Partial refund inside the window", func(t *testing.T) {
		f := newLifecycleFixture(now)
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(order(domain.OrderStatusAutoApproved), nil)
		f.paymentRepo.On("GetByID", ctx, "pay-1").Return(payment, nil)
		f.orderRepo.On("GetItems", ctx, "ord-1").Return(items, nil)
		f.periodRepo.On("GetByID", ctx, "per-1").Return(&domain.RentalPeriod{
			ID: "per-1", Start: now.Add(24 * time.Hour), End: now.Add(48 * time.Hour),
		}, nil)
		f.orderRepo.On("UpdateStatus", ctx, "ord-1", domain.OrderStatusAutoApproved, domain.OrderStatusCancelled).Return(nil)
		f.lockRepo.On("ReleaseByOrderID", ctx, "ord-1").Return(int32(1), nil)
		f.paymentSvc.On("CreateRefund", ctx, "ord-1", "pay-1", int64(5000), mock.Anything).
			Return(&domain.Refund{AmountCents: 5000}, nil)
		f.userRepo.On("GetByID", ctx, "cust-1").Return(&domain.User{Email: "c@test.com"}, nil)
		f.emailSvc.On("SendRefundInitiatedNotification", ctx, "c@test.com", "RNT-1", int64(5000)).Return(nil)
		f.noteSvc.On("Dispatch", ctx, "ORDER_CANCELLED", "vend-1", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, err := f.svc.CancelOrder(ctx, "cust-1", "ord-1", "plans changed")
		assert.NoError(t, err)
		f.paymentSvc.AssertCalled(t, "CreateRefund", ctx, "ord-1", "pay-1", int64(5000), mock.Anything)
	})

	t.Run("Active rental refunds the deposit only", func(t *testing.T) {
		f := newLifecycleFixture(now)
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(order(domain.OrderStatusActiveRental), nil)
		f.paymentRepo.On("GetByID", ctx, "pay-1").Return(payment, nil)
		f.orderRepo.On("UpdateStatus", ctx, "ord-1", domain.OrderStatusActiveRental, domain.OrderStatusRefunded).Return(nil)
		f.lockRepo.On("ReleaseByOrderID", ctx, "ord-1").Return(int32(1), nil)
		f.paymentSvc.On("CreateRefund", ctx, "ord-1", "pay-1", int64(2000), mock.Anything).
			Return(&domain.Refund{AmountCents: 2000}, nil)
		f.userRepo.On("GetByID", ctx, "cust-1").Return(&domain.User{Email: "c@test.com"}, nil)
		f.emailSvc.On("SendRefundInitiatedNotification", ctx, "c@test.com", "RNT-1", int64(2000)).Return(nil)
		f.noteSvc.On("Dispatch", ctx, "ORDER_CANCELLED", "vend-1", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		res, err := f.svc.CancelOrder(ctx, "cust-1", "ord-1", "emergency")
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusRefunded, res.Status)
	})

	t.Run("Not the customer's order", func(t *testing.T) {
		f := newLifecycleFixture(now)
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(order(domain.OrderStatusAutoApproved), nil)

		_, err := f.svc.CancelOrder(ctx, "intruder", "ord-1", "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Completed order cannot be cancelled", func(t *testing.T) {
		f := newLifecycleFixture(now)
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(order(domain.OrderStatusCompleted), nil)
		f.paymentRepo.On("GetByID", ctx, "pay-1").Return(payment, nil)

		_, err := f.svc.CancelOrder(ctx, "cust-1", "ord-1", "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestCompleteRental(t *testing.T) {
	ctx := context.Background()
	periodEnd := time.Date(2026, 3, 12, 18, 0, 0, 0, time.UTC)

	order := func() *domain.Order {
		return &domain.Order{
			ID: "ord-1", OrderNumber: "RNT-1", CustomerID: "cust-1", VendorID: "vend-1",
			PaymentID: "pay-1", Status: domain.OrderStatusActiveRental,
			TotalAmountCents: 10000, DepositAmountCents: 2000,
			DepositStatus: domain.DepositStatusHeld,
		}
	}
	items := []domain.OrderItem{{ID: "item-1", PeriodID: "per-1", Quantity: 1, UnitPriceCents: 1000}}
	period := &domain.RentalPeriod{ID: "per-1", Start: periodEnd.Add(-48 * time.Hour), End: periodEnd}

	t.Run("On-time return releases the full deposit", func(t *testing.T) {
		f := newLifecycleFixture(periodEnd) // returned exactly at the period end
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(order(), nil)
		f.orderRepo.On("GetItems", ctx, "ord-1").Return(items, nil)
		f.periodRepo.On("GetByID", ctx, "per-1").Return(period, nil)
		f.orderRepo.On("UpdateStatus", ctx, "ord-1", domain.OrderStatusActiveRental, domain.OrderStatusCompleted).Return(nil)
		f.lockRepo.On("ReleaseByOrderID", ctx, "ord-1").Return(int32(1), nil)
		f.orderRepo.On("UpdateDeposit", ctx, "ord-1", domain.DepositStatusReleased, int64(0), "").Return(nil)
		f.paymentSvc.On("CreateRefund", ctx, "ord-1", "pay-1", int64(2000), mock.Anything).
			Return(&domain.Refund{AmountCents: 2000}, nil)
		f.noteSvc.On("Dispatch", ctx, "ORDER_COMPLETED", "cust-1", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		res, err := f.svc.CompleteRental(ctx, "vend-1", "ord-1", 0, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusCompleted, res.Status)
		assert.Equal(t, domain.DepositStatusReleased, res.DepositStatus)
		assert.Equal(t, int64(0), res.LateFeeCents)
	})

	t.Run("Late return charges the fee and notifies both parties", func(t *testing.T) {
		// Returned 26h past the end: grace is 30m, so two started days at
		// 150% of the 1000-cent daily rate.
		f := newLifecycleFixture(periodEnd.Add(26 * time.Hour))
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(order(), nil)
		f.orderRepo.On("GetItems", ctx, "ord-1").Return(items, nil)
		f.periodRepo.On("GetByID", ctx, "per-1").Return(period, nil)
		f.orderRepo.On("UpdateStatus", ctx, "ord-1", domain.OrderStatusActiveRental, domain.OrderStatusCompleted).Return(nil)
		f.lockRepo.On("ReleaseByOrderID", ctx, "ord-1").Return(int32(1), nil)
		f.orderRepo.On("UpdateLateFee", ctx, "ord-1", int64(3000)).Return(nil)
		f.userRepo.On("GetByID", ctx, "cust-1").Return(&domain.User{Email: "c@test.com"}, nil)
		f.userRepo.On("GetByID", ctx, "vend-1").Return(&domain.User{Email: "v@test.com"}, nil)
		f.emailSvc.On("SendLateReturnNotification", ctx, "c@test.com", "RNT-1", int64(3000)).Return(nil)
		f.emailSvc.On("SendLateReturnNotification", ctx, "v@test.com", "RNT-1", int64(3000)).Return(nil)
		f.noteSvc.On("Dispatch", ctx, "LATE_RETURN", "cust-1", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.orderRepo.On("UpdateDeposit", ctx, "ord-1", domain.DepositStatusReleased, int64(0), "").Return(nil)
		f.paymentSvc.On("CreateRefund", ctx, "ord-1", "pay-1", int64(2000), mock.Anything).
			Return(&domain.Refund{AmountCents: 2000}, nil)
		f.noteSvc.On("Dispatch", ctx, "ORDER_COMPLETED", "cust-1", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		res, err := f.svc.CompleteRental(ctx, "vend-1", "ord-1", 0, "")
		assert.NoError(t, err)
		assert.Equal(t, int64(3000), res.LateFeeCents)
	})

	t.Run("Partial withholding refunds the remainder", func(t *testing.T) {
		f := newLifecycleFixture(periodEnd)
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(order(), nil)
		f.orderRepo.On("GetItems", ctx, "ord-1").Return(items, nil)
		f.periodRepo.On("GetByID", ctx, "per-1").Return(period, nil)
		f.orderRepo.On("UpdateStatus", ctx, "ord-1", domain.OrderStatusActiveRental, domain.OrderStatusCompleted).Return(nil)
		f.lockRepo.On("ReleaseByOrderID", ctx, "ord-1").Return(int32(1), nil)
		f.orderRepo.On("UpdateDeposit", ctx, "ord-1", domain.DepositStatusPartiallyWithheld, int64(500), "scratched panel").Return(nil)
		f.paymentSvc.On("CreateRefund", ctx, "ord-1", "pay-1", int64(1500), mock.Anything).
			Return(&domain.Refund{AmountCents: 1500}, nil)
		f.noteSvc.On("Dispatch", ctx, "ORDER_COMPLETED", "cust-1", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		res, err := f.svc.CompleteRental(ctx, "vend-1", "ord-1", 500, "scratched panel")
		assert.NoError(t, err)
		assert.Equal(t, domain.DepositStatusPartiallyWithheld, res.DepositStatus)
		assert.Equal(t, int64(500), res.DepositWithheldCents)
	})

	t.Run("Withholding the whole deposit skips the refund", func(t *testing.T) {
		f := newLifecycleFixture(periodEnd)
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(order(), nil)
		f.orderRepo.On("GetItems", ctx, "ord-1").Return(items, nil)
		f.periodRepo.On("GetByID", ctx, "per-1").Return(period, nil)
		f.orderRepo.On("UpdateStatus", ctx, "ord-1", domain.OrderStatusActiveRental, domain.OrderStatusCompleted).Return(nil)
		f.lockRepo.On("ReleaseByOrderID", ctx, "ord-1").Return(int32(1), nil)
		f.orderRepo.On("UpdateDeposit", ctx, "ord-1", domain.DepositStatusWithheld, int64(2000), "item destroyed").Return(nil)
		f.noteSvc.On("Dispatch", ctx, "ORDER_COMPLETED", "cust-1", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		res, err := f.svc.CompleteRental(ctx, "vend-1", "ord-1", 2000, "item destroyed")
		assert.NoError(t, err)
		assert.Equal(t, domain.DepositStatusWithheld, res.DepositStatus)
		f.paymentSvc.AssertNotCalled(t, "CreateRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Withholding beyond the deposit is rejected", func(t *testing.T) {
		f := newLifecycleFixture(periodEnd)
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(order(), nil)

		_, err := f.svc.CompleteRental(ctx, "vend-1", "ord-1", 5000, "gold plating")
		assert.Error(t, err)
		f.orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestExpireApproval(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

	t.Run("Times out like a rejection and alerts the vendor", func(t *testing.T) {
		f := newLifecycleFixture(now)
		order := &domain.Order{
			ID: "ord-1", OrderNumber: "RNT-1", CustomerID: "cust-1", VendorID: "vend-1",
			PaymentID: "pay-1", Status: domain.OrderStatusPendingVendorApproval,
			TotalAmountCents: 8000,
		}
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(order, nil)
		f.orderRepo.On("UpdateStatus", ctx, "ord-1", domain.OrderStatusPendingVendorApproval, domain.OrderStatusRejected).Return(nil)
		f.orderRepo.On("UpdateRejectionReason", ctx, "ord-1", mock.Anything).Return(nil)
		f.lockRepo.On("ReleaseByOrderID", ctx, "ord-1").Return(int32(1), nil)
		f.paymentRepo.On("GetByID", ctx, "pay-1").Return(&domain.Payment{
			ID: "pay-1", AmountCents: 8000, Status: domain.PaymentStatusVerified,
		}, nil)
		f.paymentSvc.On("CreateRefund", ctx, "ord-1", "pay-1", int64(8000), mock.Anything).
			Return(&domain.Refund{AmountCents: 8000}, nil)
		f.noteSvc.On("Dispatch", ctx, "ORDER_REJECTED", "cust-1", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.noteSvc.On("Dispatch", ctx, "APPROVAL_TIMEOUT", "vend-1", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.userRepo.On("GetByID", ctx, "cust-1").Return(&domain.User{Email: "c@test.com"}, nil)
		f.emailSvc.On("SendOrderRejectedNotification", ctx, "c@test.com", "RNT-1", mock.Anything).Return(nil)
		f.emailSvc.On("SendRefundInitiatedNotification", ctx, "c@test.com", "RNT-1", int64(8000)).Return(nil)

		res, err := f.svc.ExpireApproval(ctx, "ord-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusRejected, res.Status)
		f.noteSvc.AssertCalled(t, "Dispatch", ctx, "APPROVAL_TIMEOUT", "vend-1", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already-handled order loses the race cleanly", func(t *testing.T) {
		f := newLifecycleFixture(now)
		f.orderRepo.On("GetByID", ctx, "ord-1").Return(&domain.Order{
			ID: "ord-1", Status: domain.OrderStatusAutoApproved,
		}, nil)

		_, err := f.svc.ExpireApproval(ctx, "ord-1")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}
