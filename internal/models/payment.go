package models

// Payment is a direct settling transfer between two members, recorded
// outside the expense ledger. Amount must be positive and FromUID != ToUID.
//
// A Payment is typically the persisted effect of acting on a settlement
// suggestion (ledger.Settlement), but any direct transfer can be recorded.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string `db:"id" json:"id"`

	// GroupID is the group this payment belongs to.
	GroupID string `db:"group_id" json:"groupId"`

	// FromUID is the member who paid (debtor settling up).
	FromUID string `db:"from_uid" json:"fromUid"`

	// ToUID is the member who received the money.
	ToUID string `db:"to_uid" json:"toUid"`

	// Amount is the transferred amount, always > 0.
	Amount float64 `db:"amount" json:"amount"`

	// Date is the day of the transfer, ISO 8601 (YYYY-MM-DD).
	Date string `db:"date" json:"date"`

	// Note is an optional description.
	Note string `db:"note" json:"note,omitempty"`

	// CreatedBy is the uid of the member who recorded the payment.
	CreatedBy string `db:"created_by" json:"createdBy"`

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64 `db:"created_at" json:"createdAt"`

	// IsDeleted marks the payment as a tombstone, same semantics as
	// Expense.IsDeleted.
	IsDeleted bool `db:"is_deleted" json:"isDeleted"`
}
