package ledger

import "fmt"

// InvalidInputError reports a malformed or out-of-range argument, such as
// an empty member set, a non-positive amount, or a payer who is not a
// member of the group.
type InvalidInputError struct {
	Reason string
}

func (e InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// SplitMismatchError reports a manual split whose shares do not sum to the
// expense total. It carries both values so callers can surface them to the
// user.
type SplitMismatchError struct {
	Sum   float64
	Total float64
}

func (e SplitMismatchError) Error() string {
	return fmt.Sprintf("split shares sum to %.2f, expected %.2f", e.Sum, e.Total)
}

// AlreadySettledError reports an attempt to settle an expense that is
// already settled. Settlement is a one-way transition; re-settling is
// rejected explicitly to surface logic bugs early.
type AlreadySettledError struct {
	ExpenseID string
}

func (e AlreadySettledError) Error() string {
	return fmt.Sprintf("expense %s is already settled", e.ExpenseID)
}

// NotFoundError reports an operation on an expense or member ID that is
// not present in the group.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
