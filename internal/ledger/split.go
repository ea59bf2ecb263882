// Package ledger implements the expense-split and balance math for
// SplitSmart. Everything here is a pure function over models values: no
// I/O, no shared state, safe to call concurrently for different inputs.
package ledger

import (
	"math"

	"github.com/splitsmart-dev/splitsmart/internal/models"
)

// Epsilon is the tolerance used when comparing monetary sums. It models
// floating-point/decimal input precision (one cent), not business intent:
// any mismatch larger than this is rejected.
const Epsilon = 0.01

// EqualSplit divides amount evenly across the given member IDs.
// Each share is amount / len(memberIDs).
//
// Known limitation: no rounding correction is applied across members, so
// the shares may drift from the amount by a fraction of a cent (e.g.
// 10.00 / 3). The drift is accepted rather than silently redistributed.
func EqualSplit(amount float64, memberIDs []string) (map[string]float64, error) {
	if len(memberIDs) == 0 {
		return nil, InvalidInputError{Reason: "must have at least one member"}
	}
	if amount < 0 {
		return nil, InvalidInputError{Reason: "amount cannot be negative"}
	}

	share := amount / float64(len(memberIDs))
	split := make(map[string]float64, len(memberIDs))
	for _, id := range memberIDs {
		split[id] = share
	}
	return split, nil
}

// ValidateManualSplit checks that the shares of a manual split sum to the
// expense total within Epsilon. Shares must be non-negative. On mismatch
// it returns a SplitMismatchError carrying both the computed sum and the
// expected total.
func ValidateManualSplit(split map[string]float64, total float64) error {
	sum := 0.0
	for id, share := range split {
		if share < 0 {
			return InvalidInputError{Reason: "share for member " + id + " cannot be negative"}
		}
		sum += share
	}
	if math.Abs(sum-total) > Epsilon {
		return SplitMismatchError{Sum: sum, Total: total}
	}
	return nil
}

// IsFullyPaid reports whether every member's owed amount has been covered.
// Without a per-member payment ledger the recorded contract is the settled
// flag: a settled expense is fully paid, an unsettled one is not.
// See models.Payment for the richer model this could grow into.
func IsFullyPaid(e models.Expense) bool {
	return e.Settled
}

// Settle returns a copy of the expense marked settled.
// Settlement is a one-way transition; settling an already-settled expense
// fails with AlreadySettledError.
func Settle(e models.Expense) (models.Expense, error) {
	if e.Settled {
		return e, AlreadySettledError{ExpenseID: e.ID}
	}
	e.Settled = true
	return e, nil
}
