package models

// Group represents a set of members who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g. "Roommates", "Goa Trip").
	Name string

	// Members maps member ID to the member record.
	Members map[string]Member

	// TotalExpense is the running sum of all current (non-deleted) expense
	// amounts. Incremented when an expense is recorded, decremented when
	// one is deleted.
	TotalExpense float64

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64

	// CreatedBy is the user ID that created the group.
	CreatedBy string
}

// HasMember reports whether the given member ID belongs to the group.
func (g *Group) HasMember(memberID string) bool {
	_, ok := g.Members[memberID]
	return ok
}

// MemberIDs returns the IDs of all members in the group.
func (g *Group) MemberIDs() []string {
	ids := make([]string, 0, len(g.Members))
	for id := range g.Members {
		ids = append(ids, id)
	}
	return ids
}
