package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"
)

type interventionRepository struct {
	db *sql.DB
}

func NewInterventionRepository(db *sql.DB) repository.InterventionRepository {
	return &interventionRepository{db: db}
}

func (r *interventionRepository) Create(ctx context.Context, item *domain.AdminIntervention) error {
	item.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admin_interventions (id, kind, ref_id, detail, status, resolution_note, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.Kind, item.RefID, item.Detail, item.Status, item.ResolutionNote, item.CreatedAt)
	return err
}

func (r *interventionRepository) GetByID(ctx context.Context, id string) (*domain.AdminIntervention, error) {
	item := &domain.AdminIntervention{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, kind, ref_id, detail, status, resolution_note, created_at, resolved_at
		 FROM admin_interventions WHERE id = $1`,
		id).Scan(&item.ID, &item.Kind, &item.RefID, &item.Detail, &item.Status, &item.ResolutionNote, &item.CreatedAt, &item.ResolvedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *interventionRepository) ListPending(ctx context.Context, page, pageSize int32) ([]domain.AdminIntervention, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM admin_interventions WHERE status = $1`,
		domain.InterventionStatusPending).Scan(&count); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, kind, ref_id, detail, status, resolution_note, created_at, resolved_at
		 FROM admin_interventions WHERE status = $1 ORDER BY created_at LIMIT $2 OFFSET $3`,
		domain.InterventionStatusPending, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.AdminIntervention
	for rows.Next() {
		var item domain.AdminIntervention
		if err := rows.Scan(&item.ID, &item.Kind, &item.RefID, &item.Detail, &item.Status, &item.ResolutionNote, &item.CreatedAt, &item.ResolvedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, count, rows.Err()
}

func (r *interventionRepository) Resolve(ctx context.Context, id, note string, resolvedAt time.Time) error {
	if note == "" {
		return fmt.Errorf("resolution note is required")
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE admin_interventions SET status = $1, resolution_note = $2, resolved_at = $3
		 WHERE id = $4 AND status = $5`,
		domain.InterventionStatusResolved, note, resolvedAt, id, domain.InterventionStatusPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
