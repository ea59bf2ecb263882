package models

// Expense represents a shared expense paid by one member and owed by many.
//
// Lifecycle: an expense is created once, may be marked settled (a one-way
// transition), and may be deleted. It is never otherwise edited.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Title is the human-readable name for the expense.
	Title string

	// Amount is the full expense amount. Always positive.
	Amount float64

	// Date is the Unix timestamp of the transaction.
	Date int64

	// PayerID is the member ID of whoever paid the full amount.
	PayerID string

	// Split maps member ID to the share of Amount that member owes.
	// The shares sum to Amount within 0.01 at creation time.
	Split map[string]float64

	// Description is free-form detail, often pre-filled from a receipt scan.
	Description string

	// Category is an optional label (e.g. "Food", "Travel").
	Category string

	// ReceiptURL points at an uploaded receipt image, if any.
	// Only the URL is ever stored; image bytes live in the blob store.
	ReceiptURL string

	// Settled reports whether the expense has been resolved. Once true it
	// never goes back to false, and the expense stops contributing to
	// group balances while remaining in history.
	Settled bool
}
