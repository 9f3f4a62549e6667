package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shariqwaseem/sw-clone/internal/ledger"
	"github.com/shariqwaseem/sw-clone/internal/models"
	"github.com/shariqwaseem/sw-clone/internal/storage"
)

// LedgerService owns the expense and payment history of groups and the
// derived views over it. Balances and settlement suggestions are recomputed
// from the full non-deleted history on every call; nothing derived is ever
// written back.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

func (s *LedgerService) requireActiveMember(ctx context.Context, groupID, uid string) error {
	member, err := s.store.GetGroupMember(ctx, groupID, uid)
	if err != nil {
		return err
	}
	if member == nil || !member.IsActive() {
		return ErrNotMember
	}
	return nil
}

// checkParticipants verifies every payer and split uid has a membership row
// in the group. Removed members are allowed: editing an old expense that
// references them must keep working.
func (s *LedgerService) checkParticipants(ctx context.Context, groupID string, expense *models.Expense) error {
	members, err := s.store.ListGroupMembers(ctx, groupID)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m.UID] = true
	}

	for _, p := range expense.Payers {
		if !known[p.UID] {
			return fmt.Errorf("payer %s: %w", p.UID, ErrUnknownParticipant)
		}
	}
	for _, sp := range expense.Splits {
		if !known[sp.UID] {
			return fmt.Errorf("split %s: %w", sp.UID, ErrUnknownParticipant)
		}
	}
	return nil
}

// CreateExpense validates and records a new expense. The acting user must be
// an active member; the expense inherits the group currency when none is
// given.
func (s *LedgerService) CreateExpense(ctx context.Context, userID string, expense *models.Expense) (*models.Expense, error) {
	if err := s.requireActiveMember(ctx, expense.GroupID, userID); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		return nil, err
	}
	if expense.Currency == "" {
		expense.Currency = group.Currency
	}
	expense.CreatedBy = userID
	expense.IsDeleted = false

	if err := ledger.ValidateExpense(*expense); err != nil {
		return nil, err
	}
	if err := s.checkParticipants(ctx, expense.GroupID, expense); err != nil {
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "group_id", expense.GroupID, "error", err)
		return nil, err
	}

	slog.Info("Expense recorded",
		"group_id", expense.GroupID,
		"expense_id", expense.ID,
		"total", expense.TotalAmount,
		"created_by", userID,
	)
	return expense, nil
}

// UpdateExpense validates and applies an edit to an existing expense.
func (s *LedgerService) UpdateExpense(ctx context.Context, userID, expenseID string, updated *models.Expense) (*models.Expense, error) {
	existing, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if err := s.requireActiveMember(ctx, existing.GroupID, userID); err != nil {
		return nil, err
	}

	updated.ID = existing.ID
	updated.GroupID = existing.GroupID
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt
	updated.IsDeleted = existing.IsDeleted
	if updated.Currency == "" {
		updated.Currency = existing.Currency
	}

	if err := ledger.ValidateExpense(*updated); err != nil {
		return nil, err
	}
	if err := s.checkParticipants(ctx, updated.GroupID, updated); err != nil {
		return nil, err
	}

	if err := s.store.UpdateExpense(ctx, updated); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expenseID, "error", err)
		return nil, err
	}

	slog.Info("Expense updated", "expense_id", expenseID, "updated_by", userID)
	return updated, nil
}

// DeleteExpense tombstones an expense. Every balance read from here on
// excludes it; the record stays for history.
func (s *LedgerService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if err := s.requireActiveMember(ctx, expense.GroupID, userID); err != nil {
		return err
	}

	if err := s.store.SoftDeleteExpense(ctx, expenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expenseID, "error", err)
		return err
	}

	slog.Info("Expense deleted", "expense_id", expenseID, "deleted_by", userID)
	return nil
}

// ListExpenses returns a group's expense history, newest first.
func (s *LedgerService) ListExpenses(ctx context.Context, userID, groupID string, includeDeleted bool) ([]models.Expense, error) {
	if err := s.requireActiveMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByGroup(ctx, groupID, includeDeleted)
}

// CreatePayment records a direct settling transfer between two members.
func (s *LedgerService) CreatePayment(ctx context.Context, userID string, payment *models.Payment) (*models.Payment, error) {
	if err := s.requireActiveMember(ctx, payment.GroupID, userID); err != nil {
		return nil, err
	}
	if payment.Amount <= 0 || payment.FromUID == payment.ToUID {
		return nil, ErrInvalidPayment
	}

	members, err := s.store.ListGroupMembers(ctx, payment.GroupID)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m.UID] = true
	}
	if !known[payment.FromUID] || !known[payment.ToUID] {
		return nil, ErrUnknownParticipant
	}

	payment.CreatedBy = userID
	payment.IsDeleted = false

	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("CreatePayment failed", "group_id", payment.GroupID, "error", err)
		return nil, err
	}

	slog.Info("Payment recorded",
		"group_id", payment.GroupID,
		"payment_id", payment.ID,
		"from", payment.FromUID,
		"to", payment.ToUID,
		"amount", payment.Amount,
	)
	return payment, nil
}

// DeletePayment tombstones a payment.
func (s *LedgerService) DeletePayment(ctx context.Context, userID, paymentID string) error {
	payment, err := s.store.GetPayment(ctx, paymentID)
	if err != nil {
		return err
	}
	if err := s.requireActiveMember(ctx, payment.GroupID, userID); err != nil {
		return err
	}

	if err := s.store.SoftDeletePayment(ctx, paymentID); err != nil {
		slog.Error("DeletePayment failed", "payment_id", paymentID, "error", err)
		return err
	}

	slog.Info("Payment deleted", "payment_id", paymentID, "deleted_by", userID)
	return nil
}

// ListPayments returns a group's payment history, newest first.
func (s *LedgerService) ListPayments(ctx context.Context, userID, groupID string, includeDeleted bool) ([]models.Payment, error) {
	if err := s.requireActiveMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.store.ListPaymentsByGroup(ctx, groupID, includeDeleted)
}

// GroupBalances recomputes every member's net balance from the full
// non-deleted history. Positive means the group owes the member.
func (s *LedgerService) GroupBalances(ctx context.Context, userID, groupID string) (map[string]float64, error) {
	if err := s.requireActiveMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	expenses, payments, members, err := s.loadHistory(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances := ledger.ComputeGroupNetBalances(expenses, payments, members)
	slog.Debug("Balances computed",
		"group_id", groupID,
		"expenses", len(expenses),
		"payments", len(payments),
		"members", len(members),
	)
	return balances, nil
}

// SuggestedSettlements recomputes balances and reduces them to a short list
// of settling transfers.
func (s *LedgerService) SuggestedSettlements(ctx context.Context, userID, groupID string) ([]ledger.Settlement, error) {
	if err := s.requireActiveMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	expenses, payments, members, err := s.loadHistory(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances := ledger.ComputeGroupNetBalances(expenses, payments, members)
	settlements := ledger.SimplifySettlements(balances)
	slog.Debug("Settlements computed", "group_id", groupID, "count", len(settlements))
	return settlements, nil
}

func (s *LedgerService) loadHistory(ctx context.Context, groupID string) ([]models.Expense, []models.Payment, []models.GroupMember, error) {
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID, false)
	if err != nil {
		return nil, nil, nil, err
	}
	payments, err := s.store.ListPaymentsByGroup(ctx, groupID, false)
	if err != nil {
		return nil, nil, nil, err
	}
	members, err := s.store.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, nil, nil, err
	}
	return expenses, payments, members, nil
}
