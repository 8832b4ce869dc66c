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

type inventoryLockRepository struct {
	db *sql.DB
}

func NewInventoryLockRepository(db *sql.DB) repository.InventoryLockRepository {
	return &inventoryLockRepository{db: db}
}

// Reserve locks the variant row with FOR UPDATE, re-checks availability
// inside the same transaction and inserts the lock rows. Holding the row
// lock across the check-then-insert is what prevents two concurrent
// checkouts from both claiming the last unit.
func (r *inventoryLockRepository) Reserve(ctx context.Context, variantID, orderID string, start, end time.Time, quantity int32) ([]domain.InventoryLock, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin reserve tx: %w", err)
	}
	defer tx.Rollback()

	var stock int32
	err = tx.QueryRowContext(ctx,
		`SELECT stock_quantity FROM variants WHERE id = $1 FOR UPDATE`,
		variantID).Scan(&stock)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("variant %s: %w", variantID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lock variant row: %w", err)
	}

	var overlapping int32
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM inventory_locks
		 WHERE variant_id = $1 AND status = $2 AND start_at < $3 AND end_at > $4`,
		variantID, domain.LockStatusActive, end, start).Scan(&overlapping)
	if err != nil {
		return nil, fmt.Errorf("count overlapping locks: %w", err)
	}

	if stock-overlapping < quantity {
		return nil, fmt.Errorf("variant %s has %d of %d units free for [%s, %s): %w",
			variantID, stock-overlapping, quantity,
			start.Format(time.RFC3339), end.Format(time.RFC3339),
			domain.ErrInventoryConflict)
	}

	now := time.Now()
	locks := make([]domain.InventoryLock, 0, quantity)
	for i := int32(0); i < quantity; i++ {
		lock := domain.InventoryLock{
			ID:        uuid.NewString(),
			VariantID: variantID,
			OrderID:   orderID,
			Start:     start,
			End:       end,
			Status:    domain.LockStatusActive,
			CreatedAt: now,
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO inventory_locks (id, variant_id, order_id, start_at, end_at, status, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			lock.ID, lock.VariantID, lock.OrderID, lock.Start, lock.End, lock.Status, lock.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert inventory lock: %w", err)
		}
		locks = append(locks, lock)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reserve tx: %w", err)
	}
	return locks, nil
}

func (r *inventoryLockRepository) CountOverlapping(ctx context.Context, variantID string, start, end time.Time) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM inventory_locks
		 WHERE variant_id = $1 AND status = $2 AND start_at < $3 AND end_at > $4`,
		variantID, domain.LockStatusActive, end, start).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ReleaseByOrderID only touches ACTIVE rows, so a second release is a no-op
// and released_at keeps its original stamp.
func (r *inventoryLockRepository) ReleaseByOrderID(ctx context.Context, orderID string) (int32, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE inventory_locks SET status = $1, released_at = $2
		 WHERE order_id = $3 AND status = $4`,
		domain.LockStatusReleased, time.Now(), orderID, domain.LockStatusActive)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

func (r *inventoryLockRepository) ListByOrderID(ctx context.Context, orderID string) ([]domain.InventoryLock, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, variant_id, order_id, start_at, end_at, status, created_at, released_at
		 FROM inventory_locks WHERE order_id = $1 ORDER BY created_at`,
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locks []domain.InventoryLock
	for rows.Next() {
		var l domain.InventoryLock
		if err := rows.Scan(&l.ID, &l.VariantID, &l.OrderID, &l.Start, &l.End, &l.Status, &l.CreatedAt, &l.ReleasedAt); err != nil {
			return nil, err
		}
		locks = append(locks, l)
	}
	return locks, rows.Err()
}
