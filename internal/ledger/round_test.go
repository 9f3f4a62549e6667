package ledger

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		want     float64
	}{
		{name: "no-op on already rounded", value: 12.34, decimals: 2, want: 12.34},
		{name: "rounds down below half", value: 1.234, decimals: 2, want: 1.23},
		{name: "rounds up above half", value: 1.236, decimals: 2, want: 1.24},
		{name: "exact half rounds up", value: 0.125, decimals: 2, want: 0.13},
		{name: "positive half to integer", value: 2.5, decimals: 0, want: 3},
		// Ties go toward +inf, not away from zero: -2.5 becomes -2.
		{name: "negative half rounds toward positive", value: -2.5, decimals: 0, want: -2},
		{name: "negative half cents", value: -0.125, decimals: 2, want: -0.12},
		{name: "negative below half", value: -1.234, decimals: 2, want: -1.23},
		{name: "zero decimals", value: 41.4999, decimals: 0, want: 41},
		{name: "three decimals", value: 0.12345, decimals: 3, want: 0.123},
		{name: "zero", value: 0, decimals: 2, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(tt.value, tt.decimals)
			if got != tt.want {
				t.Errorf("Round(%v, %d) = %v, want %v", tt.value, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestRoundCurrency(t *testing.T) {
	if got := RoundCurrency(33.333333); got != 33.33 {
		t.Errorf("RoundCurrency(33.333333) = %v, want 33.33", got)
	}
	if got := RoundCurrency(66.665); math.Abs(got-66.67) > 1e-9 {
		t.Errorf("RoundCurrency(66.665) = %v, want 66.67", got)
	}
}

func TestRoundCurrencyIdempotent(t *testing.T) {
	values := []float64{0, 0.01, -0.01, 12.34, -56.78, 100.00, 33.33}
	for _, v := range values {
		if got := RoundCurrency(v); got != v {
			t.Errorf("RoundCurrency(%v) = %v, want unchanged", v, got)
		}
	}
}
