package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"renthub-backend/internal/clock"
	"renthub-backend/internal/config"
	"renthub-backend/internal/domain"
	"renthub-backend/internal/logger"
	"renthub-backend/internal/policy"
	"renthub-backend/internal/repository"
)

// allowedTransitions is the closed lifecycle table. Terminal states have no
// outgoing edges; every status write additionally goes through the
// repository's compare-and-swap, so a stale in-memory order cannot slip an
// illegal transition past a concurrent one.
var allowedTransitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderStatusPaymentSuccessful: {
		domain.OrderStatusAutoApproved,
		domain.OrderStatusPendingVendorApproval,
	},
	domain.OrderStatusPendingVendorApproval: {
		domain.OrderStatusAutoApproved,
		domain.OrderStatusRejected,
		domain.OrderStatusCancelled,
	},
	domain.OrderStatusAutoApproved: {
		domain.OrderStatusActiveRental,
		domain.OrderStatusCancelled,
	},
	domain.OrderStatusActiveRental: {
		domain.OrderStatusCompleted,
		domain.OrderStatusRefunded,
	},
}

func canTransition(from, to domain.OrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type lifecycleService struct {
	orderRepo   repository.OrderRepository
	lockRepo    repository.InventoryLockRepository
	periodRepo  repository.PeriodRepository
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	paymentSvc  PaymentService
	noteSvc     NotificationService
	emailSvc    EmailService
	clk         clock.Clock
	cfg         config.RentalConfig
}

func NewOrderLifecycleService(
	orderRepo repository.OrderRepository,
	lockRepo repository.InventoryLockRepository,
	periodRepo repository.PeriodRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	paymentSvc PaymentService,
	noteSvc NotificationService,
	emailSvc EmailService,
	clk clock.Clock,
	cfg config.RentalConfig,
) OrderLifecycleService {
	return &lifecycleService{
		orderRepo:   orderRepo,
		lockRepo:    lockRepo,
		periodRepo:  periodRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		paymentSvc:  paymentSvc,
		noteSvc:     noteSvc,
		emailSvc:    emailSvc,
		clk:         clk,
		cfg:         cfg,
	}
}

// transition validates the move against the table and applies it with the
// CAS guard. Violations are integrity faults, not user errors, so they get
// logged with full context before being returned.
func (s *lifecycleService) transition(ctx context.Context, o *domain.Order, to domain.OrderStatus) error {
	if !canTransition(o.Status, to) {
		logger.ErrorContext(ctx, "Illegal order transition attempted",
			"order_id", o.ID, "order_number", o.OrderNumber,
			"current_status", o.Status, "attempted_status", to)
		return fmt.Errorf("order %s: %s -> %s: %w", o.ID, o.Status, to, domain.ErrInvalidTransition)
	}
	if err := s.orderRepo.UpdateStatus(ctx, o.ID, o.Status, to); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			logger.ErrorContext(ctx, "Order transition lost the status race",
				"order_id", o.ID, "expected_status", o.Status, "attempted_status", to)
		}
		return err
	}
	o.Status = to
	return nil
}

// releaseInventory is safe to call on every terminal path: the repository
// only flips ACTIVE locks, so repeats are no-ops.
func (s *lifecycleService) releaseInventory(ctx context.Context, orderID string) {
	released, err := s.lockRepo.ReleaseByOrderID(ctx, orderID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to release inventory locks", "order_id", orderID, "error", err)
		return
	}
	logger.InfoContext(ctx, "Inventory locks released", "order_id", orderID, "count", released)
}

func (s *lifecycleService) notify(ctx context.Context, eventType, userID, title, message, orderID string) {
	err := s.noteSvc.Dispatch(ctx, eventType, userID, title, message, map[string]string{
		"type":     eventType,
		"order_id": orderID,
	})
	if err != nil {
		logger.Warn("Notification dispatch failed", "event", eventType, "user_id", userID, "error", err)
	}
}

func (s *lifecycleService) ApproveOrder(ctx context.Context, vendorID, orderID string) (*domain.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.VendorID != vendorID {
		return nil, domain.ErrUnauthorized
	}
	if err := s.transition(ctx, o, domain.OrderStatusAutoApproved); err != nil {
		return nil, err
	}

	s.notify(ctx, "ORDER_APPROVED", o.CustomerID, "Order Approved",
		fmt.Sprintf("Your order %s was approved by the vendor", o.OrderNumber), o.ID)
	if customer, err := s.userRepo.GetByID(ctx, o.CustomerID); err == nil {
		_ = s.emailSvc.SendOrderApprovedNotification(ctx, customer.Email, o.OrderNumber)
	}
	return o, nil
}

func (s *lifecycleService) RejectOrder(ctx context.Context, vendorID, orderID, reason string) (*domain.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.VendorID != vendorID {
		return nil, domain.ErrUnauthorized
	}
	return s.reject(ctx, o, reason, false)
}

// ExpireApproval is the timeout branch of the rejection path. It is invoked
// by the scheduler, so no vendor check applies, and the platform admin is
// alerted in addition to the customer.
func (s *lifecycleService) ExpireApproval(ctx context.Context, orderID string) (*domain.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.reject(ctx, o, "vendor approval timeout exceeded", true)
}

func (s *lifecycleService) reject(ctx context.Context, o *domain.Order, reason string, timedOut bool) (*domain.Order, error) {
	if err := s.transition(ctx, o, domain.OrderStatusRejected); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateRejectionReason(ctx, o.ID, reason); err != nil {
		logger.ErrorContext(ctx, "Failed to record rejection reason", "order_id", o.ID, "error", err)
	}

	s.releaseInventory(ctx, o.ID)

	// Full refund: the customer paid and never received the rental.
	payment, err := s.paymentRepo.GetByID(ctx, o.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("load payment for rejected order %s: %w", o.ID, err)
	}
	refund, err := s.paymentSvc.CreateRefund(ctx, o.ID, payment.ID, payment.AmountCents, reason)
	if err != nil {
		return nil, fmt.Errorf("create refund for rejected order %s: %w", o.ID, err)
	}

	s.notify(ctx, "ORDER_REJECTED", o.CustomerID, "Order Rejected",
		fmt.Sprintf("Your order %s was rejected: %s", o.OrderNumber, reason), o.ID)
	if customer, err := s.userRepo.GetByID(ctx, o.CustomerID); err == nil {
		_ = s.emailSvc.SendOrderRejectedNotification(ctx, customer.Email, o.OrderNumber, reason)
		_ = s.emailSvc.SendRefundInitiatedNotification(ctx, customer.Email, o.OrderNumber, refund.AmountCents)
	}
	if timedOut {
		s.notify(ctx, "APPROVAL_TIMEOUT", o.VendorID, "Order Auto-Rejected",
			fmt.Sprintf("Order %s was rejected automatically after the approval window lapsed", o.OrderNumber), o.ID)
	}
	return o, nil
}

func (s *lifecycleService) CancelOrder(ctx context.Context, customerID, orderID, reason string) (*domain.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.CustomerID != customerID {
		return nil, domain.ErrUnauthorized
	}

	payment, err := s.paymentRepo.GetByID(ctx, o.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("load payment for cancelled order %s: %w", o.ID, err)
	}

	now := s.clk.Now()
	var refundCents int64
	var target domain.OrderStatus
	switch o.Status {
	case domain.OrderStatusPendingVendorApproval, domain.OrderStatusAutoApproved:
		start, err := s.earliestStart(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		refundCents = policy.CancellationRefund(payment.AmountCents, start, now,
			time.Duration(s.cfg.CancelFullRefundHours)*time.Hour, s.cfg.CancelPartialRefundPctBps)
		target = domain.OrderStatusCancelled
	case domain.OrderStatusActiveRental:
		// Once the rental started the fee is forfeit; the held deposit
		// comes back.
		refundCents = o.DepositAmountCents
		target = domain.OrderStatusRefunded
	default:
		return nil, fmt.Errorf("order %s cannot be cancelled from %s: %w", o.ID, o.Status, domain.ErrInvalidTransition)
	}

	if err := s.transition(ctx, o, target); err != nil {
		return nil, err
	}

	s.releaseInventory(ctx, o.ID)

	if refundCents > 0 {
		refund, err := s.paymentSvc.CreateRefund(ctx, o.ID, payment.ID, refundCents, "customer cancellation: "+reason)
		if err != nil {
			return nil, fmt.Errorf("create cancellation refund for order %s: %w", o.ID, err)
		}
		if customer, err := s.userRepo.GetByID(ctx, o.CustomerID); err == nil {
			_ = s.emailSvc.SendRefundInitiatedNotification(ctx, customer.Email, o.OrderNumber, refund.AmountCents)
		}
	}

	s.notify(ctx, "ORDER_CANCELLED", o.VendorID, "Order Cancelled",
		fmt.Sprintf("Order %s was cancelled by the customer", o.OrderNumber), o.ID)
	return o, nil
}

func (s *lifecycleService) ActivateRental(ctx context.Context, orderID string) (*domain.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, o, domain.OrderStatusActiveRental); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *lifecycleService) CompleteRental(ctx context.Context, vendorID, orderID string, withheldCents int64, withholdReason string) (*domain.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.VendorID != vendorID {
		return nil, domain.ErrUnauthorized
	}
	if withheldCents < 0 || withheldCents > o.DepositAmountCents {
		return nil, fmt.Errorf("withheld amount %d outside [0, %d]", withheldCents, o.DepositAmountCents)
	}

	now := s.clk.Now()
	lateFee, err := s.computeLateFee(ctx, o, now)
	if err != nil {
		return nil, err
	}

	if err := s.transition(ctx, o, domain.OrderStatusCompleted); err != nil {
		return nil, err
	}

	s.releaseInventory(ctx, o.ID)

	if lateFee > 0 {
		o.LateFeeCents = lateFee
		if err := s.orderRepo.UpdateLateFee(ctx, o.ID, lateFee); err != nil {
			logger.ErrorContext(ctx, "Failed to record late fee", "order_id", o.ID, "error", err)
		}
		if customer, err := s.userRepo.GetByID(ctx, o.CustomerID); err == nil {
			_ = s.emailSvc.SendLateReturnNotification(ctx, customer.Email, o.OrderNumber, lateFee)
		}
		if vendor, err := s.userRepo.GetByID(ctx, o.VendorID); err == nil {
			_ = s.emailSvc.SendLateReturnNotification(ctx, vendor.Email, o.OrderNumber, lateFee)
		}
		s.notify(ctx, "LATE_RETURN", o.CustomerID, "Late Return",
			fmt.Sprintf("Order %s was returned late; a late fee applies", o.OrderNumber), o.ID)
	}

	// Deposit settlement. Whatever is not withheld goes back as a refund
	// against the original payment.
	depositStatus := domain.DepositStatusReleased
	switch {
	case withheldCents == 0:
	case withheldCents == o.DepositAmountCents:
		depositStatus = domain.DepositStatusWithheld
	default:
		depositStatus = domain.DepositStatusPartiallyWithheld
	}
	o.DepositStatus = depositStatus
	o.DepositWithheldCents = withheldCents
	o.DepositReleaseReason = withholdReason
	if err := s.orderRepo.UpdateDeposit(ctx, o.ID, depositStatus, withheldCents, withholdReason); err != nil {
		logger.ErrorContext(ctx, "Failed to record deposit settlement", "order_id", o.ID, "error", err)
	}

	if returned := o.DepositAmountCents - withheldCents; returned > 0 {
		if _, err := s.paymentSvc.CreateRefund(ctx, o.ID, o.PaymentID, returned, "deposit release on completion"); err != nil {
			return nil, fmt.Errorf("create deposit refund for order %s: %w", o.ID, err)
		}
	}

	s.notify(ctx, "ORDER_COMPLETED", o.CustomerID, "Rental Completed",
		fmt.Sprintf("Order %s is complete", o.OrderNumber), o.ID)
	return o, nil
}

// computeLateFee charges against the latest period end across the order's
// items, using each item's snapshot daily rate.
func (s *lifecycleService) computeLateFee(ctx context.Context, o *domain.Order, returnedAt time.Time) (int64, error) {
	items, err := s.orderRepo.GetItems(ctx, o.ID)
	if err != nil {
		return 0, err
	}
	grace := time.Duration(s.cfg.LateFeeGraceMinutes) * time.Minute
	var total int64
	for _, item := range items {
		period, err := s.periodRepo.GetByID(ctx, item.PeriodID)
		if err != nil {
			return 0, fmt.Errorf("load period %s: %w", item.PeriodID, err)
		}
		fee := policy.LateFee(item.UnitPriceCents*int64(item.Quantity), period.End, returnedAt, grace, s.cfg.LateFeePctBps)
		total += fee
	}
	return total, nil
}

func (s *lifecycleService) earliestStart(ctx context.Context, orderID string) (time.Time, error) {
	items, err := s.orderRepo.GetItems(ctx, orderID)
	if err != nil {
		return time.Time{}, err
	}
	var earliest time.Time
	for _, item := range items {
		period, err := s.periodRepo.GetByID(ctx, item.PeriodID)
		if err != nil {
			return time.Time{}, err
		}
		if earliest.IsZero() || period.Start.Before(earliest) {
			earliest = period.Start
		}
	}
	if earliest.IsZero() {
		return time.Time{}, fmt.Errorf("order %s has no rental periods", orderID)
	}
	return earliest, nil
}

func (s *lifecycleService) GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, []domain.OrderItem, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if o.CustomerID != userID && o.VendorID != userID {
		return nil, nil, domain.ErrUnauthorized
	}
	items, err := s.orderRepo.GetItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return o, items, nil
}

func (s *lifecycleService) ListCustomerOrders(ctx context.Context, customerID string, status domain.OrderStatus, page, pageSize int32) ([]domain.Order, int32, error) {
	return s.orderRepo.ListByCustomer(ctx, customerID, status, page, pageSize)
}

func (s *lifecycleService) ListVendorOrders(ctx context.Context, vendorID string, status domain.OrderStatus, page, pageSize int32) ([]domain.Order, int32, error) {
	return s.orderRepo.ListByVendor(ctx, vendorID, status, page, pageSize)
}
