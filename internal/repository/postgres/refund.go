package postgres

import (
	"context"
	"database/sql"
	"time"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"
)

type refundRepository struct {
	db *sql.DB
}

func NewRefundRepository(db *sql.DB) repository.RefundRepository {
	return &refundRepository{db: db}
}

func (r *refundRepository) Create(ctx context.Context, rf *domain.Refund) error {
	rf.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refunds (id, payment_id, order_id, amount_cents, reason, status, gateway_refund_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rf.ID, rf.PaymentID, rf.OrderID, rf.AmountCents, rf.Reason, rf.Status, rf.GatewayRefundID, rf.CreatedAt)
	return err
}

func (r *refundRepository) GetByID(ctx context.Context, id string) (*domain.Refund, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *refundRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Refund, error) {
	return r.getOne(ctx, `WHERE order_id = $1`, orderID)
}

func (r *refundRepository) GetByGatewayRefundID(ctx context.Context, gatewayRefundID string) (*domain.Refund, error) {
	return r.getOne(ctx, `WHERE gateway_refund_id = $1`, gatewayRefundID)
}

func (r *refundRepository) getOne(ctx context.Context, where string, arg any) (*domain.Refund, error) {
	rf := &domain.Refund{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, payment_id, order_id, amount_cents, reason, status, gateway_refund_id, created_at, processed_at
		 FROM refunds `+where, arg).Scan(
		&rf.ID, &rf.PaymentID, &rf.OrderID, &rf.AmountCents, &rf.Reason, &rf.Status,
		&rf.GatewayRefundID, &rf.CreatedAt, &rf.ProcessedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rf, nil
}

func (r *refundRepository) UpdateStatus(ctx context.Context, id string, status domain.RefundStatus, gatewayRefundID string, processedAt *time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refunds SET status = $1, gateway_refund_id = $2, processed_at = $3 WHERE id = $4`,
		status, gatewayRefundID, processedAt, id)
	return err
}
