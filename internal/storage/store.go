// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/shariqwaseem/sw-clone/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations the services need. The
// abstraction allows swapping storage backends (SQLite today, PostgreSQL
// later) without changing the service layer.
//
// Balances and settlement suggestions are deliberately absent: they are
// derived by internal/ledger from the records below, never stored.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Groups. CreateGroup also inserts the creator as the admin member.
	// DeleteGroup is the only hard delete in the system and removes the
	// group's members, expenses and payments with it.
	CreateGroup(ctx context.Context, group *models.Group, creator *models.GroupMember) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroupsByMember(ctx context.Context, uid string) ([]models.Group, error)
	DeleteGroup(ctx context.Context, groupID string) error

	// Group members. UpsertGroupMember inserts or replaces a membership row;
	// removal is modeled by setting Status to models.StatusRemoved, keeping
	// the row for history.
	ListGroupMembers(ctx context.Context, groupID string) ([]models.GroupMember, error)
	GetGroupMember(ctx context.Context, groupID, uid string) (*models.GroupMember, error)
	UpsertGroupMember(ctx context.Context, member *models.GroupMember) error

	// Expenses. SoftDeleteExpense tombstones the record; it stays listable
	// with includeDeleted and is excluded from balance computation.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	SoftDeleteExpense(ctx context.Context, expenseID string) error
	ListExpensesByGroup(ctx context.Context, groupID string, includeDeleted bool) ([]models.Expense, error)

	// Payments. Same soft-delete semantics as expenses.
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)
	SoftDeletePayment(ctx context.Context, paymentID string) error
	ListPaymentsByGroup(ctx context.Context, groupID string, includeDeleted bool) ([]models.Payment, error)

	// Close releases any resources held by the store.
	Close() error
}
