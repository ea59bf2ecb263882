package models

// Payment represents an incremental payment made against an expense's split.
//
// NOTE: This model is for FUTURE use. Balance computation currently treats
// settlement as all-or-nothing via Expense.Settled; per-member partial
// payments are not tracked, and no math in the ledger reads this type.
//
// Future features:
//   - Record partial payments per member per expense
//   - Derive IsFullyPaid from accumulated payments instead of the
//     Settled flag
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// Amount is the payment amount.
	Amount float64

	// PaidBy is the member ID of the person making the payment.
	PaidBy string

	// Date is the Unix timestamp when the payment was made.
	Date int64

	// Note is an optional description for the payment.
	Note string
}
