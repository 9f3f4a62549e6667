package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shariqwaseem/sw-clone/internal/models"
	"github.com/shariqwaseem/sw-clone/internal/storage"
)

// CreatePayment persists a new payment. ID and CreatedAt are assigned if
// unset.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO payments (id, group_id, from_uid, to_uid, amount, date, note,
		                      created_by, created_at, is_deleted)
		VALUES (:id, :group_id, :from_uid, :to_uid, :amount, :date, :note,
		        :created_by, :created_at, :is_deleted)`,
		payment,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// GetPayment retrieves a payment by ID, tombstoned or not.
func (s *SQLiteStore) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.GetContext(ctx, &payment,
		`SELECT * FROM payments WHERE id = ?`, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

// SoftDeletePayment tombstones a payment.
func (s *SQLiteStore) SoftDeletePayment(ctx context.Context, paymentID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE payments SET is_deleted = 1 WHERE id = ?`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to soft delete payment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	return nil
}

// ListPaymentsByGroup retrieves a group's payments, newest first.
func (s *SQLiteStore) ListPaymentsByGroup(ctx context.Context, groupID string, includeDeleted bool) ([]models.Payment, error) {
	query := `SELECT * FROM payments WHERE group_id = ?`
	if !includeDeleted {
		query += ` AND is_deleted = 0`
	}
	query += ` ORDER BY date DESC, created_at DESC`

	var payments []models.Payment
	if err := s.db.SelectContext(ctx, &payments, query, groupID); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
