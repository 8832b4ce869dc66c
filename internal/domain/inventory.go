package domain

import "time"

type LockStatus string

const (
	LockStatusActive   LockStatus = "ACTIVE"
	LockStatusReleased LockStatus = "RELEASED"
)

// InventoryLock is an exclusive claim on one unit of a variant's stock for a
// date range. Created when the order is confirmed, released exactly once on
// cancellation, rejection, refund or completion.
type InventoryLock struct {
	ID         string     `json:"id"`
	VariantID  string     `json:"variant_id"`
	OrderID    string     `json:"order_id"`
	Start      time.Time  `json:"start"`
	End        time.Time  `json:"end"`
	Status     LockStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`
}
