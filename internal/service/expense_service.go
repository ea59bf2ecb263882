package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/splitsmart-dev/splitsmart/internal/blob"
	"github.com/splitsmart-dev/splitsmart/internal/ledger"
	"github.com/splitsmart-dev/splitsmart/internal/models"
	"github.com/splitsmart-dev/splitsmart/internal/storage"
)

// SplitMode selects how an expense draft's split map is resolved.
type SplitMode string

const (
	// SplitEqual divides the amount evenly among the participants.
	SplitEqual SplitMode = "equal"
	// SplitManual takes the user-entered shares as-is, after validation.
	SplitManual SplitMode = "manual"
)

// Draft is user-entered expense data prior to split resolution and ID
// assignment.
type Draft struct {
	Title   string
	Amount  float64
	Date    int64
	PayerID string

	// SplitMode is "equal" or "manual".
	SplitMode SplitMode

	// Participants limits an equal split to a subset of the group.
	// Empty means the whole group.
	Participants []string

	// Shares holds the manual per-member amounts. Ignored for equal splits.
	Shares map[string]float64

	Description string
	Category    string
	ReceiptURL  string
}

// ExpenseService implements the expense operations over a storage backend.
// All split and balance math is delegated to the ledger package; this
// layer adds validation, ID assignment, and persistence.
type ExpenseService struct {
	store storage.Store
	blobs blob.Store
}

// NewExpenseService creates a new ExpenseService with the given storage
// and blob backends.
func NewExpenseService(store storage.Store, blobs blob.Store) *ExpenseService {
	return &ExpenseService{store: store, blobs: blobs}
}

// RecordExpense finalizes a draft into an expense: it validates the payer
// and amount, resolves the split map, assigns an ID, and persists the
// expense while bumping the group's running total.
//
// If the expense cannot be persisted and the draft carried an uploaded
// receipt image, the image is deleted best-effort so it does not leak in
// the blob store; a failure of that compensation is logged without
// masking the original error.
func (s *ExpenseService) RecordExpense(ctx context.Context, groupID string, draft Draft) (*models.Expense, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, ledger.NotFoundError{Kind: "group", ID: groupID}
	}

	if draft.Amount <= 0 {
		return nil, ledger.InvalidInputError{Reason: "amount must be positive"}
	}
	if draft.PayerID == "" {
		return nil, ledger.InvalidInputError{Reason: "payer is required"}
	}
	if !group.HasMember(draft.PayerID) {
		return nil, ledger.InvalidInputError{Reason: fmt.Sprintf("payer %s is not a member of group %s", draft.PayerID, groupID)}
	}

	split, err := s.resolveSplit(group, draft)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Title:       draft.Title,
		Amount:      draft.Amount,
		Date:        draft.Date,
		PayerID:     draft.PayerID,
		Split:       split,
		Description: draft.Description,
		Category:    draft.Category,
		ReceiptURL:  draft.ReceiptURL,
		Settled:     false,
	}

	if err := s.store.CreateExpense(ctx, groupID, expense); err != nil {
		s.compensateReceipt(ctx, draft.ReceiptURL)
		return nil, fmt.Errorf("failed to record expense: %w", err)
	}

	slog.Info("Expense recorded",
		"group_id", groupID,
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"payer_id", expense.PayerID,
		"split_mode", draft.SplitMode,
	)

	return expense, nil
}

// resolveSplit turns the draft's split mode into a concrete split map.
func (s *ExpenseService) resolveSplit(group *models.Group, draft Draft) (map[string]float64, error) {
	switch draft.SplitMode {
	case SplitEqual, "":
		participants := draft.Participants
		if len(participants) == 0 {
			participants = group.MemberIDs()
		}
		for _, id := range participants {
			if !group.HasMember(id) {
				return nil, ledger.InvalidInputError{Reason: fmt.Sprintf("participant %s is not a member of group %s", id, group.ID)}
			}
		}
		return ledger.EqualSplit(draft.Amount, participants)

	case SplitManual:
		for id := range draft.Shares {
			if !group.HasMember(id) {
				return nil, ledger.InvalidInputError{Reason: fmt.Sprintf("share member %s is not a member of group %s", id, group.ID)}
			}
		}
		if err := ledger.ValidateManualSplit(draft.Shares, draft.Amount); err != nil {
			return nil, err
		}
		return draft.Shares, nil

	default:
		return nil, ledger.InvalidInputError{Reason: fmt.Sprintf("unknown split mode %q", draft.SplitMode)}
	}
}

// compensateReceipt best-effort deletes an uploaded receipt image after a
// failed expense write. The original error is what the caller sees; a
// compensation failure is only logged.
func (s *ExpenseService) compensateReceipt(ctx context.Context, receiptURL string) {
	if receiptURL == "" || s.blobs == nil {
		return
	}
	if err := s.blobs.Delete(ctx, receiptURL); err != nil {
		slog.Error("Failed to delete orphaned receipt image",
			"receipt_url", receiptURL,
			"error", err,
		)
		return
	}
	slog.Info("Deleted orphaned receipt image", "receipt_url", receiptURL)
}

// GetExpense retrieves a single expense.
func (s *ExpenseService) GetExpense(ctx context.Context, groupID, expenseID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, groupID, expenseID)
	if err != nil {
		return nil, ledger.NotFoundError{Kind: "expense", ID: expenseID}
	}
	return expense, nil
}

// ListExpenses retrieves all expenses of a group, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, groupID string) ([]*models.Expense, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, ledger.NotFoundError{Kind: "group", ID: groupID}
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// SettleExpense marks an expense settled. Settling twice fails with
// AlreadySettledError; the flag never goes back to false.
func (s *ExpenseService) SettleExpense(ctx context.Context, groupID, expenseID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, groupID, expenseID)
	if err != nil {
		return nil, ledger.NotFoundError{Kind: "expense", ID: expenseID}
	}

	settled, err := ledger.Settle(*expense)
	if err != nil {
		return nil, err
	}

	if err := s.store.MarkExpenseSettled(ctx, groupID, expenseID); err != nil {
		return nil, fmt.Errorf("failed to settle expense: %w", err)
	}

	slog.Info("Expense settled", "group_id", groupID, "expense_id", expenseID)
	return &settled, nil
}

// DeleteExpense removes an expense, reversing its effect on the group's
// running total. Settled expenses may be deleted too.
func (s *ExpenseService) DeleteExpense(ctx context.Context, groupID, expenseID string) error {
	if _, err := s.store.GetExpense(ctx, groupID, expenseID); err != nil {
		return ledger.NotFoundError{Kind: "expense", ID: expenseID}
	}
	if err := s.store.DeleteExpense(ctx, groupID, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	slog.Info("Expense deleted", "group_id", groupID, "expense_id", expenseID)
	return nil
}

// GroupBalances recomputes every member's net position from a snapshot of
// the group's expenses. No incremental state is kept between calls.
func (s *ExpenseService) GroupBalances(ctx context.Context, groupID string) (map[string]float64, error) {
	expenses, err := s.snapshot(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return ledger.GroupBalances(expenses), nil
}

// PendingAmount answers the reminder scheduler's query: how much does the
// given member still owe in this group.
func (s *ExpenseService) PendingAmount(ctx context.Context, groupID, memberID string) (float64, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return 0, ledger.NotFoundError{Kind: "group", ID: groupID}
	}
	if !group.HasMember(memberID) {
		return 0, ledger.NotFoundError{Kind: "member", ID: memberID}
	}

	expenses, err := s.snapshot(ctx, groupID)
	if err != nil {
		return 0, err
	}
	return ledger.PendingAmount(expenses, memberID), nil
}

// snapshot loads the group's expenses as values for the pure ledger
// functions.
func (s *ExpenseService) snapshot(ctx context.Context, groupID string) ([]models.Expense, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, ledger.NotFoundError{Kind: "group", ID: groupID}
	}
	stored, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	expenses := make([]models.Expense, len(stored))
	for i, e := range stored {
		expenses[i] = *e
	}
	return expenses, nil
}
