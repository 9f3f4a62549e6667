package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shariqwaseem/sw-clone/internal/models"
	"github.com/shariqwaseem/sw-clone/internal/storage"
)

// CreateExpense persists a new expense with its payer and split lines in one
// transaction. ID and timestamps are assigned if unset.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	expense.UpdatedAt = now

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO expenses (id, group_id, description, total_amount, currency, date, notes,
		                      created_by, created_at, updated_at, is_deleted)
		VALUES (:id, :group_id, :description, :total_amount, :currency, :date, :notes,
		        :created_by, :created_at, :updated_at, :is_deleted)`,
		expense,
	); err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertLines(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateExpense replaces an expense's row and lines. The created_by and
// created_at fields are left untouched.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	expense.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.NamedExecContext(ctx, `
		UPDATE expenses SET description = :description, total_amount = :total_amount,
		       currency = :currency, date = :date, notes = :notes,
		       updated_at = :updated_at, is_deleted = :is_deleted
		WHERE id = :id`,
		expense,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_payers WHERE expense_id = ?`, expense.ID); err != nil {
		return fmt.Errorf("failed to clear payer lines: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_splits WHERE expense_id = ?`, expense.ID); err != nil {
		return fmt.Errorf("failed to clear split lines: %w", err)
	}
	if err := insertLines(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SoftDeleteExpense tombstones an expense. The record and its lines stay in
// place; balance computation skips it.
func (s *SQLiteStore) SoftDeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET is_deleted = 1, updated_at = ? WHERE id = ?`,
		time.Now().Unix(), expenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to soft delete expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// GetExpense retrieves an expense with its lines, tombstoned or not.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.GetContext(ctx, &expense,
		`SELECT * FROM expenses WHERE id = ?`, expenseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.loadLines(ctx, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// ListExpensesByGroup retrieves a group's expenses, newest first. Tombstoned
// records are included only when includeDeleted is set.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string, includeDeleted bool) ([]models.Expense, error) {
	query := `SELECT * FROM expenses WHERE group_id = ?`
	if !includeDeleted {
		query += ` AND is_deleted = 0`
	}
	query += ` ORDER BY date DESC, created_at DESC`

	var expenses []models.Expense
	if err := s.db.SelectContext(ctx, &expenses, query, groupID); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	for i := range expenses {
		if err := s.loadLines(ctx, &expenses[i]); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

func insertLines(ctx context.Context, tx *sqlx.Tx, expense *models.Expense) error {
	for _, payer := range expense.Payers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO expense_payers (expense_id, uid, amount) VALUES (?, ?, ?)`,
			expense.ID, payer.UID, payer.Amount,
		); err != nil {
			return fmt.Errorf("failed to insert payer line: %w", err)
		}
	}
	for _, split := range expense.Splits {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO expense_splits (expense_id, uid, amount) VALUES (?, ?, ?)`,
			expense.ID, split.UID, split.Amount,
		); err != nil {
			return fmt.Errorf("failed to insert split line: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) loadLines(ctx context.Context, expense *models.Expense) error {
	if err := s.db.SelectContext(ctx, &expense.Payers,
		`SELECT uid, amount FROM expense_payers WHERE expense_id = ? ORDER BY uid`,
		expense.ID,
	); err != nil {
		return fmt.Errorf("failed to load payer lines: %w", err)
	}
	if err := s.db.SelectContext(ctx, &expense.Splits,
		`SELECT uid, amount FROM expense_splits WHERE expense_id = ? ORDER BY uid`,
		expense.ID,
	); err != nil {
		return fmt.Errorf("failed to load split lines: %w", err)
	}
	return nil
}
