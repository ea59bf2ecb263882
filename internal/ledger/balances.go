package ledger

import "github.com/splitsmart-dev/splitsmart/internal/models"

// GroupBalances computes the signed net position of every member across a
// group's expenses. Positive means the member is owed money, negative
// means the member owes money.
//
// Algorithm:
//   - For each unsettled expense, every (member, share) entry with
//     member != payer accrues +share to the payer and -share to the ower.
//     The payer's own share nets to zero and is skipped.
//   - Settled expenses contribute nothing; they stay in history for audit
//     display only.
//
// The result is a pure function of the expense set: invariant under
// permutation of the input, recomputed from scratch on every call, with
// no incremental state. Callers are responsible for supplying a
// consistent snapshot of the expenses.
func GroupBalances(expenses []models.Expense) map[string]float64 {
	balances := make(map[string]float64)

	for _, e := range expenses {
		if e.Settled {
			continue
		}
		for memberID, share := range e.Split {
			if memberID == e.PayerID {
				continue
			}
			balances[e.PayerID] += share
			balances[memberID] -= share
		}
	}

	return balances
}

// PendingAmount returns how much the given member still owes across the
// group's unsettled expenses. This is the query the reminder scheduler
// issues ("does member X have a pending balance?"); a member who is owed
// money or is square has nothing pending.
func PendingAmount(expenses []models.Expense, memberID string) float64 {
	net := GroupBalances(expenses)[memberID]
	if net >= 0 {
		return 0
	}
	return -net
}
