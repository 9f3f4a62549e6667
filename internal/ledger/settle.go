package ledger

import "sort"

// Settlement is a suggested transfer that reduces both parties' balances
// toward zero. Settlements are ephemeral: recomputed from balances on every
// read, never persisted. Recording a models.Payment is the durable effect of
// acting on one.
type Settlement struct {
	FromUID string  `json:"fromUid"`
	ToUID   string  `json:"toUid"`
	Amount  float64 `json:"amount"`
}

type party struct {
	uid    string
	amount float64
}

// SimplifySettlements returns a short list of point-to-point transfers that,
// if all executed, bring every balance to within Epsilon of zero.
//
// Greedy largest-vs-largest matching: creditors and debtors are each sorted
// descending by magnitude, then two cursors walk the lists settling
// min(debtor remaining, creditor remaining) at each step. Because balances
// sum to zero by construction, both lists exhaust together. The result is
// the practical minimum number of transfers, not a proven optimum (that is a
// hard combinatorial problem); for typical group sizes the greedy answer is
// as good and fully deterministic.
//
// Exact amount ties break by ascending uid: uids are collected in sorted
// order and the amount sort is stable.
func SimplifySettlements(balances map[string]float64) []Settlement {
	uids := make([]string, 0, len(balances))
	for uid := range balances {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	var creditors, debtors []party
	for _, uid := range uids {
		rounded := RoundCurrency(balances[uid])
		if rounded > Epsilon {
			creditors = append(creditors, party{uid: uid, amount: rounded})
		} else if rounded < -Epsilon {
			debtors = append(debtors, party{uid: uid, amount: -rounded})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].amount > creditors[j].amount })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].amount > debtors[j].amount })

	var settlements []Settlement
	i, j := 0, 0

	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := debtor.amount
		if creditor.amount < amount {
			amount = creditor.amount
		}

		if amount > Epsilon {
			settlements = append(settlements, Settlement{
				FromUID: debtor.uid,
				ToUID:   creditor.uid,
				Amount:  RoundCurrency(amount),
			})
		}

		debtor.amount = RoundCurrency(debtor.amount - amount)
		creditor.amount = RoundCurrency(creditor.amount - amount)

		// Both may advance in the same step when the match is exact.
		if debtor.amount <= Epsilon {
			i++
		}
		if creditor.amount <= Epsilon {
			j++
		}
	}

	return settlements
}
