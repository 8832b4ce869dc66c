package service

import (
	"context"
	"fmt"

	"renthub-backend/internal/clock"
	"renthub-backend/internal/domain"
	"renthub-backend/internal/gateway"
	"renthub-backend/internal/logger"
	"renthub-backend/internal/repository"

	"github.com/google/uuid"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	refundRepo  repository.RefundRepository
	intRepo     repository.InterventionRepository
	userRepo    repository.UserRepository
	gw          gateway.Client
	clk         clock.Clock
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	refundRepo repository.RefundRepository,
	intRepo repository.InterventionRepository,
	userRepo repository.UserRepository,
	gw gateway.Client,
	clk clock.Clock,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		refundRepo:  refundRepo,
		intRepo:     intRepo,
		userRepo:    userRepo,
		gw:          gw,
		clk:         clk,
	}
}

func (s *paymentService) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

// CreateRefund records the refund first and only then talks to the gateway,
// so a gateway failure leaves an auditable FAILED row plus an admin work
// item. Money movement is never retried automatically.
func (s *paymentService) CreateRefund(ctx context.Context, orderID, paymentID string, amountCents int64, reason string) (*domain.Refund, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentStatusVerified {
		return nil, fmt.Errorf("payment %s is %s: %w", paymentID, payment.Status, domain.ErrPaymentNotVerified)
	}
	if amountCents <= 0 {
		return nil, fmt.Errorf("refund amount must be positive, got %d", amountCents)
	}
	if amountCents > payment.AmountCents {
		logger.ErrorContext(ctx, "Refund exceeds payment",
			"order_id", orderID, "payment_id", paymentID,
			"refund_cents", amountCents, "payment_cents", payment.AmountCents)
		return nil, fmt.Errorf("refund of %d against payment of %d: %w",
			amountCents, payment.AmountCents, domain.ErrRefundExceedsPayment)
	}

	refund := &domain.Refund{
		ID:          uuid.NewString(),
		PaymentID:   paymentID,
		OrderID:     orderID,
		AmountCents: amountCents,
		Reason:      reason,
		Status:      domain.RefundStatusInitiated,
	}
	if err := s.refundRepo.Create(ctx, refund); err != nil {
		return nil, fmt.Errorf("create refund record: %w", err)
	}

	gatewayRefundID, err := s.gw.Refund(ctx, payment.GatewayPaymentID, amountCents)
	if err != nil {
		if uerr := s.refundRepo.UpdateStatus(ctx, refund.ID, domain.RefundStatusFailed, "", nil); uerr != nil {
			logger.ErrorContext(ctx, "Failed to mark refund failed", "refund_id", refund.ID, "error", uerr)
		}
		refund.Status = domain.RefundStatusFailed
		s.fileRefundIntervention(ctx, refund, err)
		// The refund row survives for the admin queue; the caller's
		// transition is not rolled back.
		return refund, nil
	}

	if err := s.refundRepo.UpdateStatus(ctx, refund.ID, domain.RefundStatusInProgress, gatewayRefundID, nil); err != nil {
		logger.ErrorContext(ctx, "Failed to record gateway refund id", "refund_id", refund.ID, "error", err)
	}
	refund.Status = domain.RefundStatusInProgress
	refund.GatewayRefundID = gatewayRefundID
	logger.InfoContext(ctx, "Refund initiated with gateway",
		"refund_id", refund.ID, "order_id", orderID, "amount_cents", amountCents)
	return refund, nil
}

func (s *paymentService) fileRefundIntervention(ctx context.Context, refund *domain.Refund, cause error) {
	item := &domain.AdminIntervention{
		ID:     uuid.NewString(),
		Kind:   domain.InterventionKindRefundFailed,
		RefID:  refund.ID,
		Detail: fmt.Sprintf("gateway refund of %d cents for order %s failed: %v", refund.AmountCents, refund.OrderID, cause),
		Status: domain.InterventionStatusPending,
	}
	if err := s.intRepo.Create(ctx, item); err != nil {
		logger.ErrorContext(ctx, "Failed to file refund intervention",
			"refund_id", refund.ID, "error", err)
		return
	}
	logger.Warn("Refund failed, admin intervention filed",
		"refund_id", refund.ID, "intervention_id", item.ID)
}

func (s *paymentService) GetRefundForOrder(ctx context.Context, orderID string) (*domain.Refund, error) {
	return s.refundRepo.GetByOrderID(ctx, orderID)
}

func (s *paymentService) ProcessRefundCallback(ctx context.Context, gatewayRefundID string, succeeded bool) error {
	refund, err := s.refundRepo.GetByGatewayRefundID(ctx, gatewayRefundID)
	if err != nil {
		return err
	}
	now := s.clk.Now()
	if succeeded {
		return s.refundRepo.UpdateStatus(ctx, refund.ID, domain.RefundStatusCompleted, gatewayRefundID, &now)
	}
	if err := s.refundRepo.UpdateStatus(ctx, refund.ID, domain.RefundStatusFailed, gatewayRefundID, &now); err != nil {
		return err
	}
	refund.Status = domain.RefundStatusFailed
	s.fileRefundIntervention(ctx, refund, fmt.Errorf("gateway reported refund %s failed", gatewayRefundID))
	return nil
}

func (s *paymentService) ListInterventions(ctx context.Context, page, pageSize int32) ([]domain.AdminIntervention, int32, error) {
	return s.intRepo.ListPending(ctx, page, pageSize)
}

func (s *paymentService) ResolveIntervention(ctx context.Context, adminID, interventionID, note string) error {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if admin.Role != domain.UserRoleAdmin {
		return domain.ErrUnauthorized
	}
	if note == "" {
		return fmt.Errorf("a resolution note is required")
	}
	if err := s.intRepo.Resolve(ctx, interventionID, note, s.clk.Now()); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Admin intervention resolved",
		"intervention_id", interventionID, "admin_id", adminID)
	return nil
}
