// Package ledger is the pure balance engine: it reduces a group's expense
// and payment history to per-member net balances and a minimal set of
// settling transfers. Every function is a deterministic, side-effect-free
// function of its inputs; calling twice with the same input yields identical
// output. The package depends only on internal/models.
package ledger

import "math"

// Epsilon is the tolerance for currency comparisons. Amounts within Epsilon
// of zero are treated as settled.
const Epsilon = 0.01

// bias nudges exact halves off the representation boundary before rounding,
// compensating for binary float error in values like 1.005*100 = 100.49999...
const bias = 2.220446049250313e-16

// Round rounds value to the given number of decimal places. Ties round
// toward positive infinity: Round(0.125, 2) == 0.13, Round(-2.5, 0) == -2.
// Every amount in the engine passes through this after each arithmetic step;
// the half-up tie-break is part of the engine's contract and must not be
// swapped for half-away-from-zero rounding.
func Round(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Floor(value*factor+bias+0.5) / factor
}

// RoundCurrency rounds value to 2 decimal places, the precision used for all
// monetary amounts.
func RoundCurrency(value float64) float64 {
	return Round(value, 2)
}
