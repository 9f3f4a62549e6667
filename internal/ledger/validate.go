package ledger

import (
	"errors"
	"math"

	"github.com/shariqwaseem/sw-clone/internal/models"
)

var (
	ErrNonPositiveTotal   = errors.New("total amount must be positive")
	ErrPayerSumMismatch   = errors.New("sum of payer amounts must match total")
	ErrSplitSumMismatch   = errors.New("sum of split amounts must match total")
	ErrNegativeLineAmount = errors.New("amounts must be non-negative")
)

// ValidateExpense checks the invariants every stored expense must satisfy:
// positive total, payer and split sums each matching the total within
// Epsilon, no negative line amounts. It is the gate every create and edit
// flow must pass before an expense enters the ledger.
func ValidateExpense(expense models.Expense) error {
	if expense.TotalAmount <= 0 {
		return ErrNonPositiveTotal
	}

	var totalPaid, totalOwed float64
	for _, p := range expense.Payers {
		totalPaid += p.Amount
	}
	for _, s := range expense.Splits {
		totalOwed += s.Amount
	}
	totalPaid = RoundCurrency(totalPaid)
	totalOwed = RoundCurrency(totalOwed)

	if math.Abs(totalPaid-expense.TotalAmount) > Epsilon {
		return ErrPayerSumMismatch
	}
	if math.Abs(totalOwed-expense.TotalAmount) > Epsilon {
		return ErrSplitSumMismatch
	}

	for _, p := range expense.Payers {
		if p.Amount < 0 {
			return ErrNegativeLineAmount
		}
	}
	for _, s := range expense.Splits {
		if s.Amount < 0 {
			return ErrNegativeLineAmount
		}
	}

	return nil
}
