package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/splitsmart-dev/splitsmart/internal/models"
)

// CreateExpense persists a new expense with its split and increments the
// group's running total by the expense amount in the same transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, groupID string, expense *models.Expense) error {
	// Generate ID if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.Date == 0 {
		expense.Date = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, title, amount, date, payer_id, description, category, receipt_url, settled)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, groupID, expense.Title, expense.Amount, expense.Date,
		expense.PayerID, expense.Description, expense.Category, expense.ReceiptURL, boolToInt(expense.Settled),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for memberID, share := range expense.Split {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, member_id, share) VALUES (?, ?, ?)",
			expense.ID, memberID, share,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	// Keep the group's running total in step with its expenses.
	_, err = tx.ExecContext(ctx,
		"UPDATE groups SET total_expense = total_expense + ? WHERE id = ?",
		expense.Amount, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including its split.
func (s *SQLiteStore) GetExpense(ctx context.Context, groupID, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var settled int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, amount, date, payer_id, description, category, receipt_url, settled
		 FROM expenses WHERE id = ? AND group_id = ?`,
		expenseID, groupID,
	).Scan(&expense.ID, &expense.Title, &expense.Amount, &expense.Date,
		&expense.PayerID, &expense.Description, &expense.Category, &expense.ReceiptURL, &settled)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense not found: %s", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.Settled = settled != 0

	split, err := s.expenseSplit(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	expense.Split = split

	return expense, nil
}

// ListExpensesByGroup retrieves all expenses of a group with their splits,
// newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, amount, date, payer_id, description, category, receipt_url, settled
		 FROM expenses WHERE group_id = ? ORDER BY date DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var settled int
		if err := rows.Scan(&expense.ID, &expense.Title, &expense.Amount, &expense.Date,
			&expense.PayerID, &expense.Description, &expense.Category, &expense.ReceiptURL, &settled); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Settled = settled != 0
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		split, err := s.expenseSplit(ctx, expense.ID)
		if err != nil {
			return nil, err
		}
		expense.Split = split
	}

	return expenses, nil
}

// MarkExpenseSettled flips the settled flag to true. The update is one-way:
// there is no path back to unsettled.
func (s *SQLiteStore) MarkExpenseSettled(ctx context.Context, groupID, expenseID string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET settled = 1 WHERE id = ? AND group_id = ?",
		expenseID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to settle expense: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check settle result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense not found: %s", expenseID)
	}
	return nil
}

// DeleteExpense removes an expense and decrements the group's running
// total by the expense amount in the same transaction.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, groupID, expenseID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var amount float64
	err = tx.QueryRowContext(ctx,
		"SELECT amount FROM expenses WHERE id = ? AND group_id = ?",
		expenseID, groupID,
	).Scan(&amount)
	if err == sql.ErrNoRows {
		return fmt.Errorf("expense not found: %s", expenseID)
	}
	if err != nil {
		return fmt.Errorf("failed to get expense amount: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE groups SET total_expense = total_expense - ? WHERE id = ?",
		amount, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) expenseSplit(ctx context.Context, expenseID string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id, share FROM expense_splits WHERE expense_id = ?",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	split := make(map[string]float64)
	for rows.Next() {
		var memberID string
		var share float64
		if err := rows.Scan(&memberID, &share); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		split[memberID] = share
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return split, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
