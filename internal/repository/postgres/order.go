package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"

	"github.com/google/uuid"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, order_number, customer_id, vendor_id, payment_id, status,
	total_amount_cents, deposit_amount_cents, deposit_status, deposit_withheld_cents,
	deposit_release_reason, late_fee_cents, rejection_reason, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, o *domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, order_number, customer_id, vendor_id, payment_id, status,
		   total_amount_cents, deposit_amount_cents, deposit_status, deposit_withheld_cents,
		   deposit_release_reason, late_fee_cents, rejection_reason, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		o.ID, o.OrderNumber, o.CustomerID, o.VendorID, o.PaymentID, o.Status,
		o.TotalAmountCents, o.DepositAmountCents, o.DepositStatus, o.DepositWithheldCents,
		o.DepositReleaseReason, o.LateFeeCents, o.RejectionReason, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		items[i].OrderID = o.ID
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, product_id, variant_id, period_id, quantity, unit_price_cents)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			items[i].ID, items[i].OrderID, items[i].ProductID, items[i].VariantID,
			items[i].PeriodID, items[i].Quantity, items[i].UnitPriceCents)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *orderRepository) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE payment_id = $1`, paymentID)
}

func (r *orderRepository) getOne(ctx context.Context, query string, arg any) (*domain.Order, error) {
	o := &domain.Order{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.VendorID, &o.PaymentID, &o.Status,
		&o.TotalAmountCents, &o.DepositAmountCents, &o.DepositStatus, &o.DepositWithheldCents,
		&o.DepositReleaseReason, &o.LateFeeCents, &o.RejectionReason, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) GetItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, variant_id, period_id, quantity, unit_price_cents
		 FROM order_items WHERE order_id = $1`,
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.VariantID, &it.PeriodID, &it.Quantity, &it.UnitPriceCents); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateStatus is a compare-and-swap: zero rows affected means the order was
// not in the expected status, which the lifecycle service reports as an
// invalid transition.
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, time.Now(), id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("order %s is not in status %s: %w", id, from, domain.ErrInvalidTransition)
	}
	return nil
}

func (r *orderRepository) UpdateDeposit(ctx context.Context, id string, status domain.DepositStatus, withheldCents int64, reason string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET deposit_status = $1, deposit_withheld_cents = $2, deposit_release_reason = $3, updated_at = $4 WHERE id = $5`,
		status, withheldCents, reason, time.Now(), id)
	return err
}

func (r *orderRepository) UpdateLateFee(ctx context.Context, id string, lateFeeCents int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET late_fee_cents = $1, updated_at = $2 WHERE id = $3`,
		lateFeeCents, time.Now(), id)
	return err
}

func (r *orderRepository) UpdateRejectionReason(ctx context.Context, id string, reason string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET rejection_reason = $1, updated_at = $2 WHERE id = $3`,
		reason, time.Now(), id)
	return err
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID string, status domain.OrderStatus, page, pageSize int32) ([]domain.Order, int32, error) {
	return r.list(ctx, "customer_id", customerID, status, page, pageSize)
}

func (r *orderRepository) ListByVendor(ctx context.Context, vendorID string, status domain.OrderStatus, page, pageSize int32) ([]domain.Order, int32, error) {
	return r.list(ctx, "vendor_id", vendorID, status, page, pageSize)
}

func (r *orderRepository) list(ctx context.Context, ownerCol, ownerID string, status domain.OrderStatus, page, pageSize int32) ([]domain.Order, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + ownerCol + ` = $1`

	args := []any{ownerID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

func (r *orderRepository) ListStale(ctx context.Context, status domain.OrderStatus, cutoff time.Time) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status = $1 AND created_at < $2 ORDER BY created_at`,
		status, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *orderRepository) ListDueForActivation(ctx context.Context, now time.Time) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders o
		 WHERE o.status = $1 AND EXISTS (
		   SELECT 1 FROM order_items i
		   JOIN rental_periods p ON p.id = i.period_id
		   WHERE i.order_id = o.id AND p.start_at <= $2
		 ) ORDER BY o.created_at`,
		domain.OrderStatusAutoApproved, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *orderRepository) ListOverdue(ctx context.Context, now time.Time) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders o
		 WHERE o.status = $1 AND NOT EXISTS (
		   SELECT 1 FROM order_items i
		   JOIN rental_periods p ON p.id = i.period_id
		   WHERE i.order_id = o.id AND p.end_at >= $2
		 ) ORDER BY o.created_at`,
		domain.OrderStatusActiveRental, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.CustomerID, &o.VendorID, &o.PaymentID, &o.Status,
			&o.TotalAmountCents, &o.DepositAmountCents, &o.DepositStatus, &o.DepositWithheldCents,
			&o.DepositReleaseReason, &o.LateFeeCents, &o.RejectionReason, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
