package postgres

import (
	"context"
	"database/sql"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"
)

type periodRepository struct {
	db *sql.DB
}

func NewPeriodRepository(db *sql.DB) repository.PeriodRepository {
	return &periodRepository{db: db}
}

func (r *periodRepository) Create(ctx context.Context, p *domain.RentalPeriod) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rental_periods (id, start_at, end_at, duration_value, duration_unit)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Start, p.End, p.DurationValue, p.DurationUnit)
	return err
}

func (r *periodRepository) GetByID(ctx context.Context, id string) (*domain.RentalPeriod, error) {
	p := &domain.RentalPeriod{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, start_at, end_at, duration_value, duration_unit FROM rental_periods WHERE id = $1`,
		id).Scan(&p.ID, &p.Start, &p.End, &p.DurationValue, &p.DurationUnit)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
