package ledger

import "github.com/shariqwaseem/sw-clone/internal/models"

// ComputeGroupNetBalances folds the full expense and payment history of a
// group into one net balance per member. Positive means the group owes that
// member, negative means that member owes the group.
//
// Every roster member gets an entry even with no transactions. Uids that
// appear only in transaction data (e.g., a member removed after paying) are
// merged in rather than dropped. Soft-deleted records contribute nothing.
//
// Each accumulation step rounds to currency precision before the next. The
// per-step rounding matches how clients display running balances and is a
// deliberate invariant, not an accident; do not replace it with
// accumulate-then-round.
func ComputeGroupNetBalances(
	expenses []models.Expense,
	payments []models.Payment,
	members []models.GroupMember,
) map[string]float64 {
	balances := make(map[string]float64, len(members))
	for _, member := range members {
		balances[member.UID] = 0
	}

	for _, expense := range expenses {
		for uid, delta := range ComputeExpenseDeltas(expense) {
			balances[uid] = RoundCurrency(balances[uid] + delta)
		}
	}

	for _, payment := range payments {
		if payment.IsDeleted {
			continue
		}
		balances[payment.FromUID] = RoundCurrency(balances[payment.FromUID] + payment.Amount)
		balances[payment.ToUID] = RoundCurrency(balances[payment.ToUID] - payment.Amount)
	}

	return balances
}
