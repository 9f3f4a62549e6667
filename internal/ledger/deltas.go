package ledger

import "github.com/shariqwaseem/sw-clone/internal/models"

// ComputeExpenseDeltas reduces one expense to a per-member net delta:
// amount paid minus amount owed, rounded to currency precision after each
// line. A member appearing in neither list has no entry (absence means
// zero). A soft-deleted expense contributes nothing and yields an empty map.
func ComputeExpenseDeltas(expense models.Expense) map[string]float64 {
	deltas := make(map[string]float64)
	if expense.IsDeleted {
		return deltas
	}

	for _, payer := range expense.Payers {
		deltas[payer.UID] = RoundCurrency(deltas[payer.UID] + payer.Amount)
	}

	for _, split := range expense.Splits {
		deltas[split.UID] = RoundCurrency(deltas[split.UID] - split.Amount)
	}

	return deltas
}
