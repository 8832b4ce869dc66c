package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"renthub-backend/internal/clock"
	"renthub-backend/internal/config"
	"renthub-backend/internal/domain"
	"renthub-backend/internal/gateway"
	"renthub-backend/internal/logger"
	"renthub-backend/internal/policy"
	"renthub-backend/internal/repository"

	"github.com/google/uuid"
)

type checkoutService struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	lockRepo    repository.InventoryLockRepository
	periodRepo  repository.PeriodRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	intRepo     repository.InterventionRepository
	gw          gateway.Client
	noteSvc     NotificationService
	emailSvc    EmailService
	clk         clock.Clock
	cfg         config.RentalConfig
}

func NewCheckoutService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	lockRepo repository.InventoryLockRepository,
	periodRepo repository.PeriodRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	intRepo repository.InterventionRepository,
	gw gateway.Client,
	noteSvc NotificationService,
	emailSvc EmailService,
	clk clock.Clock,
	cfg config.RentalConfig,
) CheckoutService {
	return &checkoutService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		lockRepo:    lockRepo,
		periodRepo:  periodRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		intRepo:     intRepo,
		gw:          gw,
		noteSvc:     noteSvc,
		emailSvc:    emailSvc,
		clk:         clk,
		cfg:         cfg,
	}
}

// checkoutLine is the priced form of a CheckoutItem, carried in the payment
// metadata between Checkout and ConfirmPayment so confirmation does not
// depend on a cart table.
type checkoutLine struct {
	ProductID      string              `json:"product_id"`
	VariantID      string              `json:"variant_id"`
	Quantity       int32               `json:"quantity"`
	Start          time.Time           `json:"start"`
	End            time.Time           `json:"end"`
	DurationUnit   domain.DurationUnit `json:"duration_unit"`
	UnitPriceCents int64               `json:"unit_price_cents"`
}

func (s *checkoutService) Checkout(ctx context.Context, customerID string, items []CheckoutItem) (*CheckoutResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("checkout requires at least one item")
	}

	now := s.clk.Now()
	vendorID := ""
	var lines []checkoutLine
	var rentalCents, depositCents int64

	for _, item := range items {
		period, err := domain.NewRentalPeriod(item.Start, item.End, item.DurationUnit)
		if err != nil {
			return nil, err
		}
		// Past-start check happens here, against the wall clock at
		// validation time, so queued requests with a recent start are
		// tolerated until they are actually validated.
		if period.Start.Before(now) {
			return nil, fmt.Errorf("%w: start %s is in the past", domain.ErrInvalidPeriod, period.Start.Format(time.RFC3339))
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidPeriod)
		}

		variant, err := s.productRepo.GetVariantByID(ctx, item.VariantID)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", item.VariantID, err)
		}
		product, err := s.productRepo.GetByID(ctx, variant.ProductID)
		if err != nil {
			return nil, err
		}
		if vendorID == "" {
			vendorID = product.VendorID
		} else if vendorID != product.VendorID {
			return nil, fmt.Errorf("an order can only contain items from one vendor")
		}

		// Availability precheck so the customer sees a conflict before any
		// charge is attempted. The authoritative check re-runs under the
		// variant row lock at confirmation time.
		overlapping, err := s.lockRepo.CountOverlapping(ctx, item.VariantID, item.Start, item.End)
		if err != nil {
			return nil, err
		}
		if variant.StockQuantity-overlapping < item.Quantity {
			return nil, fmt.Errorf("variant %s for [%s, %s): %w",
				item.VariantID, item.Start.Format(time.RFC3339), item.End.Format(time.RFC3339),
				domain.ErrInventoryConflict)
		}

		days := billableDays(item.Start, item.End)
		lineRental := variant.DailyPriceCents * days * int64(item.Quantity)
		rentalCents += lineRental
		depositCents += lineRental * int64(variant.DepositPctBps) / 10000

		lines = append(lines, checkoutLine{
			ProductID:      product.ID,
			VariantID:      variant.ID,
			Quantity:       item.Quantity,
			Start:          item.Start,
			End:            item.End,
			DurationUnit:   item.DurationUnit,
			UnitPriceCents: variant.DailyPriceCents,
		})
	}

	totalCents := rentalCents + depositCents
	receipt := newOrderNumber(now)
	gatewayOrderID, err := s.gw.CreateOrder(ctx, totalCents, s.cfg.Currency, receipt)
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	encoded, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("encode checkout lines: %w", err)
	}
	payment := &domain.Payment{
		ID:             uuid.NewString(),
		GatewayOrderID: gatewayOrderID,
		AmountCents:    totalCents,
		Currency:       s.cfg.Currency,
		Status:         domain.PaymentStatusCreated,
		CustomerID:     customerID,
		Metadata: map[string]string{
			"order_number":  receipt,
			"vendor_id":     vendorID,
			"deposit_cents": strconv.FormatInt(depositCents, 10),
			"lines":         string(encoded),
		},
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment record: %w", err)
	}

	logger.InfoContext(ctx, "Checkout priced and gateway order created",
		"customer_id", customerID, "gateway_order_id", gatewayOrderID,
		"total_cents", totalCents, "deposit_cents", depositCents)

	return &CheckoutResult{
		Payment:        payment,
		GatewayOrderID: gatewayOrderID,
		TotalCents:     totalCents,
		DepositCents:   depositCents,
	}, nil
}

func (s *checkoutService) ConfirmPayment(ctx context.Context, gatewayOrderID, gatewayPaymentID, signature string) (*domain.Order, error) {
	payment, err := s.paymentRepo.GetByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return nil, err
	}

	// Replayed confirmation of an already-verified payment returns the
	// existing order instead of reserving twice.
	if payment.Status == domain.PaymentStatusVerified {
		return s.orderRepo.GetByPaymentID(ctx, payment.ID)
	}
	if payment.Status != domain.PaymentStatusCreated {
		return nil, fmt.Errorf("payment %s is %s: %w", payment.ID, payment.Status, domain.ErrPaymentNotVerified)
	}

	if !s.gw.VerifySignature(gatewayOrderID, gatewayPaymentID, signature) {
		if err := s.paymentRepo.MarkFailed(ctx, payment.ID); err != nil {
			logger.ErrorContext(ctx, "Failed to mark payment failed", "payment_id", payment.ID, "error", err)
		}
		logger.Warn("Payment signature mismatch", "payment_id", payment.ID, "gateway_order_id", gatewayOrderID)
		return nil, fmt.Errorf("signature mismatch for gateway order %s: %w", gatewayOrderID, domain.ErrPaymentNotVerified)
	}
	if err := s.paymentRepo.MarkVerified(ctx, payment.ID, gatewayPaymentID, signature, s.clk.Now()); err != nil {
		return nil, err
	}

	var lines []checkoutLine
	if err := json.Unmarshal([]byte(payment.Metadata["lines"]), &lines); err != nil {
		return nil, fmt.Errorf("decode checkout lines for payment %s: %w", payment.ID, err)
	}
	depositCents, _ := strconv.ParseInt(payment.Metadata["deposit_cents"], 10, 64)
	vendorID := payment.Metadata["vendor_id"]
	orderID := uuid.NewString()

	// Reserve under the variant row lock. A conflict here means the window
	// was taken between checkout and confirmation: the customer was already
	// charged, so the payment goes to the admin queue for refunding.
	for _, line := range lines {
		if _, err := s.lockRepo.Reserve(ctx, line.VariantID, orderID, line.Start, line.End, line.Quantity); err != nil {
			s.abandonReservation(ctx, orderID, payment, err)
			return nil, err
		}
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		period, err := domain.NewRentalPeriod(line.Start, line.End, line.DurationUnit)
		if err != nil {
			s.abandonReservation(ctx, orderID, payment, err)
			return nil, err
		}
		period.ID = uuid.NewString()
		if err := s.periodRepo.Create(ctx, period); err != nil {
			s.abandonReservation(ctx, orderID, payment, err)
			return nil, fmt.Errorf("persist rental period: %w", err)
		}
		items = append(items, domain.OrderItem{
			ID:             uuid.NewString(),
			ProductID:      line.ProductID,
			VariantID:      line.VariantID,
			PeriodID:       period.ID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
		})
	}

	order := &domain.Order{
		ID:                 orderID,
		OrderNumber:        payment.Metadata["order_number"],
		CustomerID:         payment.CustomerID,
		VendorID:           vendorID,
		PaymentID:          payment.ID,
		Status:             domain.OrderStatusPaymentSuccessful,
		TotalAmountCents:   payment.AmountCents,
		DepositAmountCents: depositCents,
		DepositStatus:      domain.DepositStatusHeld,
	}
	if err := s.orderRepo.Create(ctx, order, items); err != nil {
		s.abandonReservation(ctx, orderID, payment, err)
		return nil, fmt.Errorf("create order: %w", err)
	}

	// Route past the transient PAYMENT_SUCCESSFUL state.
	vendor, err := s.userRepo.GetByID(ctx, vendorID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load vendor for approval routing", "vendor_id", vendorID, "error", err)
		vendor = nil
	}
	next := domain.OrderStatusPendingVendorApproval
	if policy.AutoApprove(vendor, order.TotalAmountCents, s.cfg.AutoApproveMaxCents) {
		next = domain.OrderStatusAutoApproved
	}
	if err := s.orderRepo.UpdateStatus(ctx, order.ID, domain.OrderStatusPaymentSuccessful, next); err != nil {
		// The order row exists and owns its locks, so nothing is released;
		// the stuck transient state goes to the admin queue.
		s.fileOrphanIntervention(ctx, payment,
			fmt.Sprintf("payment %s verified, order %s created but approval routing failed: %v", payment.ID, order.ID, err))
		return nil, err
	}
	order.Status = next

	if customer, err := s.userRepo.GetByID(ctx, order.CustomerID); err == nil && vendor != nil {
		_ = s.emailSvc.SendOrderPlacedNotification(ctx, vendor.Email, customer.Name, order.OrderNumber)
	}
	title := "New Order"
	message := fmt.Sprintf("Order %s is paid", order.OrderNumber)
	if next == domain.OrderStatusPendingVendorApproval {
		message += " and awaits your approval"
	}
	if err := s.noteSvc.Dispatch(ctx, "ORDER_PLACED", vendorID, title, message, map[string]string{
		"type":     "ORDER_PLACED",
		"order_id": order.ID,
	}); err != nil {
		logger.Warn("Notification dispatch failed", "event", "ORDER_PLACED", "user_id", vendorID, "error", err)
	}

	logger.InfoContext(ctx, "Order created from verified payment",
		"order_id", order.ID, "order_number", order.OrderNumber, "status", order.Status)
	return order, nil
}

// abandonReservation cleans up any locks taken for an order that will never
// be persisted and files the charged-but-unfulfillable payment for manual
// refunding. It runs for every post-verification failure, whatever the
// cause: the customer's money moved, so the payment must surface in the
// admin queue.
func (s *checkoutService) abandonReservation(ctx context.Context, orderID string, payment *domain.Payment, cause error) {
	if _, err := s.lockRepo.ReleaseByOrderID(ctx, orderID); err != nil {
		logger.ErrorContext(ctx, "Failed to release abandoned reservation", "order_id", orderID, "error", err)
	}
	s.fileOrphanIntervention(ctx, payment,
		fmt.Sprintf("payment %s verified but no order could be created: %v", payment.ID, cause))
}

func (s *checkoutService) fileOrphanIntervention(ctx context.Context, payment *domain.Payment, detail string) {
	item := &domain.AdminIntervention{
		ID:     uuid.NewString(),
		Kind:   domain.InterventionKindPaymentOrphan,
		RefID:  payment.ID,
		Detail: detail,
		Status: domain.InterventionStatusPending,
	}
	if err := s.intRepo.Create(ctx, item); err != nil {
		logger.ErrorContext(ctx, "Failed to file admin intervention for orphaned payment",
			"payment_id", payment.ID, "error", err)
	}
}

// billableDays is the number of started 24h blocks in [start, end).
func billableDays(start, end time.Time) int64 {
	d := end.Sub(start)
	days := int64((d + 24*time.Hour - 1) / (24 * time.Hour))
	if days < 1 {
		days = 1
	}
	return days
}

func newOrderNumber(now time.Time) string {
	frag := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("RNT-%s-%s", now.Format("20060102"), frag)
}
