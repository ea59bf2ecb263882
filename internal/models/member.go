package models

// Member represents one participant in a group.
// A member is immutable once created; everything else (splits, balances)
// refers to it by ID only.
type Member struct {
	// ID is the opaque stable identifier, unique within a group.
	ID string

	// Name is the display name of the member.
	Name string

	// Email is the member's email address.
	Email string
}
