package domain

import "time"

type InterventionStatus string

const (
	InterventionStatusPending  InterventionStatus = "PENDING"
	InterventionStatusResolved InterventionStatus = "RESOLVED"
)

type InterventionKind string

const (
	InterventionKindRefundFailed  InterventionKind = "REFUND_FAILED"
	InterventionKindPaymentOrphan InterventionKind = "PAYMENT_ORPHANED"
)

// AdminIntervention flags a failed financial operation for manual resolution.
// Money movement is never retried automatically; an administrator resolves
// the item with a note instead.
type AdminIntervention struct {
	ID             string             `json:"id"`
	Kind           InterventionKind   `json:"kind"`
	RefID          string             `json:"ref_id"`
	Detail         string             `json:"detail"`
	Status         InterventionStatus `json:"status"`
	ResolutionNote string             `json:"resolution_note,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	ResolvedAt     *time.Time         `json:"resolved_at,omitempty"`
}
