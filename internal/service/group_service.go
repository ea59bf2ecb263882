package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/splitsmart-dev/splitsmart/internal/ledger"
	"github.com/splitsmart-dev/splitsmart/internal/models"
	"github.com/splitsmart-dev/splitsmart/internal/storage"
)

// GroupService implements group management over a storage backend.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group with the given members.
// Member records come from a schemaless frontend payload, so required
// fields are validated here and missing ones rejected rather than
// defaulted.
func (s *GroupService) CreateGroup(ctx context.Context, name, createdBy string, members []models.Member) (*models.Group, error) {
	if name == "" {
		return nil, ledger.InvalidInputError{Reason: "group name is required"}
	}
	if len(members) == 0 {
		return nil, ledger.InvalidInputError{Reason: "group must have at least one member"}
	}

	memberMap := make(map[string]models.Member, len(members))
	for _, member := range members {
		if member.Name == "" {
			return nil, ledger.InvalidInputError{Reason: "member name is required"}
		}
		// Member IDs are opaque; a fresh one is fine when the frontend
		// did not supply one.
		if member.ID == "" {
			member.ID = uuid.New().String()
		}
		if _, exists := memberMap[member.ID]; exists {
			return nil, ledger.InvalidInputError{Reason: fmt.Sprintf("duplicate member id %s", member.ID)}
		}
		memberMap[member.ID] = member
	}

	group := &models.Group{
		Name:      name,
		Members:   memberMap,
		CreatedBy: createdBy,
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	slog.Info("Group created", "group_id", group.ID, "name", group.Name, "members_count", len(memberMap))
	return group, nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, ledger.NotFoundError{Kind: "group", ID: groupID}
	}
	return group, nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// DeleteGroup removes a group and all its expenses.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID string) error {
	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		return ledger.NotFoundError{Kind: "group", ID: groupID}
	}
	slog.Info("Group deleted", "group_id", groupID)
	return nil
}

// AddMembers adds new members to an existing group. Existing member IDs
// are rejected.
func (s *GroupService) AddMembers(ctx context.Context, groupID string, members []models.Member) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, ledger.NotFoundError{Kind: "group", ID: groupID}
	}

	toAdd := make([]models.Member, 0, len(members))
	for _, member := range members {
		if member.Name == "" {
			return nil, ledger.InvalidInputError{Reason: "member name is required"}
		}
		if member.ID == "" {
			member.ID = uuid.New().String()
		}
		if group.HasMember(member.ID) {
			return nil, ledger.InvalidInputError{Reason: fmt.Sprintf("member %s already in group", member.ID)}
		}
		toAdd = append(toAdd, member)
	}

	if err := s.store.AddGroupMembers(ctx, groupID, toAdd); err != nil {
		return nil, fmt.Errorf("failed to add members: %w", err)
	}

	updated, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated group: %w", err)
	}

	slog.Info("Members added", "group_id", groupID, "added_count", len(toAdd))
	return updated, nil
}
