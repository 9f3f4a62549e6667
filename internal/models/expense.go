package models

// PayerLine records a non-negative contribution by one member toward
// funding an expense.
type PayerLine struct {
	UID    string  `db:"uid" json:"uid"`
	Amount float64 `db:"amount" json:"amount"`
}

// SplitLine records a non-negative obligation assigned to one member
// for an expense.
type SplitLine struct {
	UID    string  `db:"uid" json:"uid"`
	Amount float64 `db:"amount" json:"amount"`
}

// Expense is a shared cost event. Invariants (enforced by
// ledger.ValidateExpense before any write):
//
//	sum(Payers.Amount) == TotalAmount within 0.01
//	sum(Splits.Amount) == TotalAmount within 0.01
//	every line amount >= 0, TotalAmount > 0
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `db:"id" json:"id"`

	// GroupID is the group this expense belongs to.
	GroupID string `db:"group_id" json:"groupId"`

	// Description is the human-readable label (e.g., "Groceries").
	Description string `db:"description" json:"description"`

	// TotalAmount is the full cost of the expense.
	TotalAmount float64 `db:"total_amount" json:"totalAmount"`

	// Currency is the ISO 4217 code; copied from the group on creation.
	Currency string `db:"currency" json:"currency"`

	// Date is the day the expense happened, ISO 8601 (YYYY-MM-DD).
	Date string `db:"date" json:"date"`

	// Notes is an optional free-form annotation.
	Notes string `db:"notes" json:"notes,omitempty"`

	// Payers lists who funded the expense and by how much.
	Payers []PayerLine `json:"payers"`

	// Splits lists who owes what share of the expense.
	Splits []SplitLine `json:"splits"`

	// CreatedBy is the uid of the member who recorded the expense.
	CreatedBy string `db:"created_by" json:"createdBy"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `db:"created_at" json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last edit.
	UpdatedAt int64 `db:"updated_at" json:"updatedAt"`

	// IsDeleted marks the expense as a tombstone. A deleted expense is
	// excluded from all balance computations but retained for history.
	IsDeleted bool `db:"is_deleted" json:"isDeleted"`
}
