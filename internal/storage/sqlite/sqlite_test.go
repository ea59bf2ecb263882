package sqlite

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/splitsmart-dev/splitsmart/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testGroup() *models.Group {
	return &models.Group{
		Name: "Goa Trip",
		Members: map[string]models.Member{
			"m1": {ID: "m1", Name: "Alice", Email: "alice@example.com"},
			"m2": {ID: "m2", Name: "Bob", Email: "bob@example.com"},
		},
		CreatedBy: "u1",
	}
}

func TestSQLiteStoreGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup generates ID and timestamp", func(t *testing.T) {
		group := testGroup()
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetGroup retrieves members", func(t *testing.T) {
		group := testGroup()
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		retrieved, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if retrieved.Name != group.Name {
			t.Errorf("Name mismatch: got %s, want %s", retrieved.Name, group.Name)
		}
		if len(retrieved.Members) != 2 {
			t.Fatalf("Members count: got %d, want 2", len(retrieved.Members))
		}
		if retrieved.Members["m1"].Email != "alice@example.com" {
			t.Errorf("Member email mismatch: got %s", retrieved.Members["m1"].Email)
		}
	})

	t.Run("GetGroup returns error for nonexistent group", func(t *testing.T) {
		if _, err := store.GetGroup(ctx, "nonexistent-id"); err == nil {
			t.Error("Expected error for nonexistent group, got nil")
		}
	})

	t.Run("AddGroupMembers extends the member set", func(t *testing.T) {
		group := testGroup()
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		err := store.AddGroupMembers(ctx, group.ID, []models.Member{
			{ID: "m3", Name: "Charlie", Email: "charlie@example.com"},
		})
		if err != nil {
			t.Fatalf("AddGroupMembers failed: %v", err)
		}

		retrieved, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(retrieved.Members) != 3 {
			t.Errorf("Members count: got %d, want 3", len(retrieved.Members))
		}
	})

	t.Run("DeleteGroup removes the group", func(t *testing.T) {
		group := testGroup()
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if _, err := store.GetGroup(ctx, group.ID); err == nil {
			t.Error("Expected deleted group to be gone")
		}
	})

	t.Run("DeleteGroup errors for nonexistent group", func(t *testing.T) {
		if err := store.DeleteGroup(ctx, "nonexistent-id"); err == nil {
			t.Error("Expected error for nonexistent group, got nil")
		}
	})
}

func TestSQLiteStoreExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := testGroup()
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	newExpense := func(amount float64) *models.Expense {
		return &models.Expense{
			Title:   "Dinner",
			Amount:  amount,
			PayerID: "m1",
			Split:   map[string]float64{"m1": amount / 2, "m2": amount / 2},
		}
	}

	t.Run("CreateExpense bumps group total", func(t *testing.T) {
		before, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}

		expense := newExpense(30.0)
		if err := store.CreateExpense(ctx, group.ID, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Error("Expected expense ID to be generated")
		}

		after, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if math.Abs(after.TotalExpense-before.TotalExpense-30.0) > 0.001 {
			t.Errorf("TotalExpense = %v, want %v", after.TotalExpense, before.TotalExpense+30.0)
		}
	})

	t.Run("GetExpense retrieves the split", func(t *testing.T) {
		expense := newExpense(20.0)
		if err := store.CreateExpense(ctx, group.ID, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		retrieved, err := store.GetExpense(ctx, group.ID, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if len(retrieved.Split) != 2 {
			t.Fatalf("Split entries: got %d, want 2", len(retrieved.Split))
		}
		if math.Abs(retrieved.Split["m2"]-10.0) > 0.001 {
			t.Errorf("Split share = %v, want 10.0", retrieved.Split["m2"])
		}
		if retrieved.Settled {
			t.Error("New expense should not be settled")
		}
	})

	t.Run("MarkExpenseSettled persists the flag", func(t *testing.T) {
		expense := newExpense(10.0)
		if err := store.CreateExpense(ctx, group.ID, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		if err := store.MarkExpenseSettled(ctx, group.ID, expense.ID); err != nil {
			t.Fatalf("MarkExpenseSettled failed: %v", err)
		}

		retrieved, err := store.GetExpense(ctx, group.ID, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if !retrieved.Settled {
			t.Error("Expected expense to be settled")
		}
	})

	t.Run("DeleteExpense decrements group total", func(t *testing.T) {
		expense := newExpense(25.0)
		if err := store.CreateExpense(ctx, group.ID, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		before, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}

		if err := store.DeleteExpense(ctx, group.ID, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}

		after, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if math.Abs(before.TotalExpense-after.TotalExpense-25.0) > 0.001 {
			t.Errorf("TotalExpense = %v, want %v", after.TotalExpense, before.TotalExpense-25.0)
		}

		if _, err := store.GetExpense(ctx, group.ID, expense.ID); err == nil {
			t.Error("Expected deleted expense to be gone")
		}
	})

	t.Run("DeleteExpense errors for nonexistent expense", func(t *testing.T) {
		if err := store.DeleteExpense(ctx, group.ID, "nonexistent-id"); err == nil {
			t.Error("Expected error for nonexistent expense, got nil")
		}
	})

	t.Run("ListExpensesByGroup returns all expenses", func(t *testing.T) {
		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		// Created 4, deleted 1 above.
		if len(expenses) != 3 {
			t.Errorf("Expenses count: got %d, want 3", len(expenses))
		}
		for _, e := range expenses {
			if len(e.Split) == 0 {
				t.Errorf("Expense %s has no split loaded", e.ID)
			}
		}
	})
}

func TestSQLiteStoreUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("alice@example.com", "Alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("GetUserByEmail", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got == nil || got.ID != user.ID {
			t.Errorf("Got user %+v, want ID %s", got, user.ID)
		}
	})

	t.Run("GetUserByEmail for unknown email returns nil", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil, got %+v", got)
		}
	})

	t.Run("GetUserByID", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got == nil || got.Email != user.Email {
			t.Errorf("Got user %+v, want email %s", got, user.Email)
		}
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		dup := models.NewUser("alice@example.com", "Imposter", "hash")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("Expected duplicate email to fail")
		}
	})
}
