package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, vendor_id, name, description, category, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.VendorID, p.Name, p.Description, p.Category, p.Status, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p := &domain.Product{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, vendor_id, name, description, category, status, created_at, updated_at
		 FROM products WHERE id = $1`,
		id).Scan(&p.ID, &p.VendorID, &p.Name, &p.Description, &p.Category, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET name=$1, description=$2, category=$3, status=$4, updated_at=$5 WHERE id=$6`,
		p.Name, p.Description, p.Category, p.Status, time.Now(), p.ID)
	return err
}

func (r *productRepository) ListByVendor(ctx context.Context, vendorID string, page, pageSize int32) ([]domain.Product, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM products WHERE vendor_id = $1`, vendorID).Scan(&count); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, vendor_id, name, description, category, status, created_at, updated_at
		 FROM products WHERE vendor_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		vendorID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *productRepository) Search(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Product, int32, error) {
	offset := (page - 1) * pageSize
	sqlQuery := `SELECT id, vendor_id, name, description, category, status, created_at, updated_at
	             FROM products WHERE status = $1`

	args := []any{domain.ProductStatusActive}
	argIdx := 2
	if query != "" {
		sqlQuery += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+query+"%")
		argIdx++
	}
	if category != "" {
		sqlQuery += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + sqlQuery + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sqlQuery += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.VendorID, &p.Name, &p.Description, &p.Category, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepository) CreateVariant(ctx context.Context, v *domain.Variant) error {
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO variants (id, product_id, sku, attributes, stock_quantity, daily_price_cents, deposit_pct_bps, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		v.ID, v.ProductID, v.SKU, v.Attributes, v.StockQuantity, v.DailyPriceCents, v.DepositPctBps, v.CreatedAt, v.UpdatedAt)
	return err
}

func (r *productRepository) GetVariantByID(ctx context.Context, id string) (*domain.Variant, error) {
	v := &domain.Variant{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, product_id, sku, attributes, stock_quantity, daily_price_cents, deposit_pct_bps, created_at, updated_at
		 FROM variants WHERE id = $1`,
		id).Scan(&v.ID, &v.ProductID, &v.SKU, &v.Attributes, &v.StockQuantity, &v.DailyPriceCents, &v.DepositPctBps, &v.CreatedAt, &v.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *productRepository) UpdateVariant(ctx context.Context, v *domain.Variant) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE variants SET sku=$1, attributes=$2, stock_quantity=$3, daily_price_cents=$4, deposit_pct_bps=$5, updated_at=$6 WHERE id=$7`,
		v.SKU, v.Attributes, v.StockQuantity, v.DailyPriceCents, v.DepositPctBps, time.Now(), v.ID)
	return err
}

func (r *productRepository) ListVariants(ctx context.Context, productID string) ([]domain.Variant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, sku, attributes, stock_quantity, daily_price_cents, deposit_pct_bps, created_at, updated_at
		 FROM variants WHERE product_id = $1 ORDER BY sku`,
		productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []domain.Variant
	for rows.Next() {
		var v domain.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Attributes, &v.StockQuantity, &v.DailyPriceCents, &v.DepositPctBps, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}
