package ledger

import (
	"math"

	"github.com/shopspring/decimal"
)

// Job payment statuses.
const (
	StatusPending = "Pending"
	StatusPartial = "Partial"
	StatusPaid    = "Paid"
)

// PaidTolerance is the rounding slack, in currency units, under which a
// job counts as fully paid. A job with total 999 and payments of 998 is
// Paid.
const PaidTolerance = 1.0

// Sum adds up payment amounts. NaN and infinite values count as 0.
// Arithmetic runs in decimal so the result does not depend on the order
// of the ledger rows.
func Sum(amounts []float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(a))
	}
	f, _ := total.Float64()
	return f
}

// PendingBalance returns totalAmount - paidSum. A negative result means
// overpayment and is surfaced as-is, never clamped.
func PendingBalance(totalAmount, paidSum float64) float64 {
	f, _ := decimal.NewFromFloat(totalAmount).Sub(decimal.NewFromFloat(paidSum)).Float64()
	return f
}

// ResolveStatus derives the job status from its total and the ledger sum:
// Paid when the total is non-positive or payments reach the total within
// PaidTolerance, Partial when anything has been paid, otherwise Pending.
// Every call site (job creation, payment recording, job edits) goes
// through this one rule.
func ResolveStatus(totalAmount, paidSum float64) string {
	total := decimal.NewFromFloat(totalAmount)
	paid := decimal.NewFromFloat(paidSum)

	if total.LessThanOrEqual(decimal.Zero) {
		return StatusPaid
	}
	if paid.GreaterThanOrEqual(total.Sub(decimal.NewFromFloat(PaidTolerance))) {
		return StatusPaid
	}
	if paid.GreaterThan(decimal.Zero) {
		return StatusPartial
	}
	return StatusPending
}

// IsSettled reports whether the computed balance leaves nothing owed.
func IsSettled(totalAmount, paidSum float64) bool {
	return ResolveStatus(totalAmount, paidSum) == StatusPaid
}
