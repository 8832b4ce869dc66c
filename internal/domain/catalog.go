package domain

import "time"

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
)

type Product struct {
	ID          string        `json:"id"`
	VendorID    string        `json:"vendor_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Status      ProductStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Variant is a rentable SKU of a product with its own stock count and price.
// DepositPctBps is the deposit as basis points of the rental total
// (e.g. 2000 = 20%).
type Variant struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	SKU             string    `json:"sku"`
	Attributes      string    `json:"attributes,omitempty"`
	StockQuantity   int32     `json:"stock_quantity"`
	DailyPriceCents int64     `json:"daily_price_cents"`
	DepositPctBps   int32     `json:"deposit_pct_bps"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
