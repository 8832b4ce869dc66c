package domain

import (
	"fmt"
	"time"
)

type DurationUnit string

const (
	DurationUnitHour  DurationUnit = "HOUR"
	DurationUnitDay   DurationUnit = "DAY"
	DurationUnitWeek  DurationUnit = "WEEK"
	DurationUnitMonth DurationUnit = "MONTH"
)

// unitLength is the nominal length of one duration unit. Months are billed
// as 30-day blocks.
func (u DurationUnit) unitLength() time.Duration {
	switch u {
	case DurationUnitHour:
		return time.Hour
	case DurationUnitWeek:
		return 7 * 24 * time.Hour
	case DurationUnitMonth:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

func (u DurationUnit) Valid() bool {
	switch u {
	case DurationUnitHour, DurationUnitDay, DurationUnitWeek, DurationUnitMonth:
		return true
	}
	return false
}

// RentalPeriod is the [Start, End) window a variant is rented for.
// Immutable once attached to a confirmed order.
type RentalPeriod struct {
	ID            string       `json:"id"`
	Start         time.Time    `json:"start"`
	End           time.Time    `json:"end"`
	DurationValue int32        `json:"duration_value"`
	DurationUnit  DurationUnit `json:"duration_unit"`
}

// NewRentalPeriod builds a period and derives DurationValue from the
// start/end gap, rounding partial units up. A gap shorter than one unit
// still counts as one.
func NewRentalPeriod(start, end time.Time, unit DurationUnit) (*RentalPeriod, error) {
	if !unit.Valid() {
		return nil, fmt.Errorf("%w: unknown duration unit %q", ErrInvalidPeriod, unit)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end %s is not after start %s", ErrInvalidPeriod, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	gap := end.Sub(start)
	unitLen := unit.unitLength()
	value := int32((gap + unitLen - 1) / unitLen)
	if value < 1 {
		value = 1
	}
	return &RentalPeriod{
		Start:         start,
		End:           end,
		DurationValue: value,
		DurationUnit:  unit,
	}, nil
}

func (p *RentalPeriod) IsValid() bool {
	return p.End.After(p.Start)
}

// Overlaps reports whether two half-open intervals intersect.
func (p *RentalPeriod) Overlaps(start, end time.Time) bool {
	return p.Start.Before(end) && p.End.After(start)
}
