package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	meta, err := json.Marshal(p.Metadata)
	if err != nil {
		return fmt.Errorf("marshal payment metadata: %w", err)
	}
	p.CreatedAt = time.Now()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO payments (id, gateway_order_id, gateway_payment_id, gateway_signature,
		   amount_cents, currency, status, customer_id, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.GatewayOrderID, p.GatewayPaymentID, p.GatewaySignature,
		p.AmountCents, p.Currency, p.Status, p.CustomerID, meta, p.CreatedAt)
	return err
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *paymentRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Payment, error) {
	return r.getOne(ctx, `WHERE gateway_order_id = $1`, gatewayOrderID)
}

func (r *paymentRepository) getOne(ctx context.Context, where string, arg any) (*domain.Payment, error) {
	p := &domain.Payment{}
	var meta []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT id, gateway_order_id, gateway_payment_id, gateway_signature,
		   amount_cents, currency, status, customer_id, metadata, created_at, verified_at
		 FROM payments `+where, arg).Scan(
		&p.ID, &p.GatewayOrderID, &p.GatewayPaymentID, &p.GatewaySignature,
		&p.AmountCents, &p.Currency, &p.Status, &p.CustomerID, &meta, &p.CreatedAt, &p.VerifiedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &p.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal payment metadata: %w", err)
		}
	}
	return p, nil
}

// MarkVerified only moves CREATED payments; re-verifying an already verified
// or failed payment affects no rows and is reported as not verified.
func (r *paymentRepository) MarkVerified(ctx context.Context, id, gatewayPaymentID, signature string, verifiedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payments SET status = $1, gateway_payment_id = $2, gateway_signature = $3, verified_at = $4
		 WHERE id = $5 AND status = $6`,
		domain.PaymentStatusVerified, gatewayPaymentID, signature, verifiedAt, id, domain.PaymentStatusCreated)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("payment %s is not in CREATED status: %w", id, domain.ErrPaymentNotVerified)
	}
	return nil
}

func (r *paymentRepository) MarkFailed(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE payments SET status = $1 WHERE id = $2`,
		domain.PaymentStatusFailed, id)
	return err
}
