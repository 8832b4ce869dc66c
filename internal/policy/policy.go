// Package policy holds the configuration-driven business rules the order
// lifecycle consults: late fees, cancellation refunds and vendor
// auto-approval. Keeping them as small pure functions makes the boundary
// cases testable without a database.
package policy

import (
	"time"

	"renthub-backend/internal/domain"
)

// LateFee returns the charge for returning after the period end. Returns at
// or before end plus the grace window cost nothing. Past that, every started
// 24h block is charged at pctBps of the item's daily rate.
func LateFee(dailyRateCents int64, end, returnedAt time.Time, grace time.Duration, pctBps int) int64 {
	deadline := end.Add(grace)
	if !returnedAt.After(deadline) {
		return 0
	}
	late := returnedAt.Sub(deadline)
	startedDays := int64((late + 24*time.Hour - 1) / (24 * time.Hour))
	return startedDays * dailyRateCents * int64(pctBps) / 10000
}

// CancellationRefund returns how many cents of totalCents come back when the
// customer cancels at cancelledAt. Full refund outside fullWindow before the
// start, partialPctBps inside the window, nothing once the rental started.
func CancellationRefund(totalCents int64, start, cancelledAt time.Time, fullWindow time.Duration, partialPctBps int) int64 {
	if !cancelledAt.Before(start) {
		return 0
	}
	if start.Sub(cancelledAt) >= fullWindow {
		return totalCents
	}
	return totalCents * int64(partialPctBps) / 10000
}

// AutoApprove decides whether an order skips the vendor approval step:
// trusted vendors always do, and small orders under maxCents do regardless.
// maxCents of 0 disables the amount rule.
func AutoApprove(vendor *domain.User, orderTotalCents, maxCents int64) bool {
	if vendor != nil && vendor.Trusted {
		return true
	}
	return maxCents > 0 && orderTotalCents <= maxCents
}
