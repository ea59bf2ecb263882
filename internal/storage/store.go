// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/splitsmart-dev/splitsmart/internal/models"
)

// Store defines the interface for group and expense storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// The service layer hands the store fully-formed next-state values; the
// store is responsible for persisting them atomically. Reads return
// consistent snapshots suitable for balance recomputation.
type Store interface {
	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	// Returns nil without error if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns nil without error if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateGroup persists a new group with its members.
	// The group.ID field will be populated by the store if empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID, including its members.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// DeleteGroup removes a group and everything belonging to it.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddGroupMembers adds members to an existing group.
	AddGroupMembers(ctx context.Context, groupID string, members []models.Member) error

	// CreateExpense persists a new expense and increments the group's
	// running total by the expense amount in the same transaction.
	CreateExpense(ctx context.Context, groupID string, expense *models.Expense) error

	// GetExpense retrieves an expense by ID, including its split.
	GetExpense(ctx context.Context, groupID, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup retrieves all expenses of a group.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// MarkExpenseSettled flips the expense's settled flag to true.
	// The flag never transitions back.
	MarkExpenseSettled(ctx context.Context, groupID, expenseID string) error

	// DeleteExpense removes an expense and decrements the group's running
	// total by the expense amount in the same transaction.
	DeleteExpense(ctx context.Context, groupID, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
