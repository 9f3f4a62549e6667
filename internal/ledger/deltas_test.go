package ledger

import (
	"math"
	"testing"

	"github.com/shariqwaseem/sw-clone/internal/models"
)

func TestComputeExpenseDeltas(t *testing.T) {
	tests := []struct {
		name    string
		expense models.Expense
		want    map[string]float64
	}{
		{
			name: "single payer equal three-way split",
			expense: models.Expense{
				TotalAmount: 120,
				Payers:      []models.PayerLine{{UID: "u1", Amount: 120}},
				Splits: []models.SplitLine{
					{UID: "u1", Amount: 40},
					{UID: "u2", Amount: 40},
					{UID: "u3", Amount: 40},
				},
			},
			want: map[string]float64{"u1": 80, "u2": -40, "u3": -40},
		},
		{
			name: "multi payer custom split",
			expense: models.Expense{
				TotalAmount: 10000,
				Payers: []models.PayerLine{
					{UID: "u1", Amount: 3000},
					{UID: "u2", Amount: 7000},
				},
				Splits: []models.SplitLine{
					{UID: "u1", Amount: 5000},
					{UID: "u2", Amount: 5000},
				},
			},
			want: map[string]float64{"u1": -2000, "u2": 2000},
		},
		{
			name: "member absent from both lists has no entry",
			expense: models.Expense{
				TotalAmount: 50,
				Payers:      []models.PayerLine{{UID: "u1", Amount: 50}},
				Splits:      []models.SplitLine{{UID: "u2", Amount: 50}},
			},
			want: map[string]float64{"u1": 50, "u2": -50},
		},
		{
			name: "deleted expense contributes nothing",
			expense: models.Expense{
				TotalAmount: 120,
				Payers:      []models.PayerLine{{UID: "u1", Amount: 120}},
				Splits:      []models.SplitLine{{UID: "u2", Amount: 120}},
				IsDeleted:   true,
			},
			want: map[string]float64{},
		},
		{
			name:    "empty expense yields empty map",
			expense: models.Expense{TotalAmount: 0},
			want:    map[string]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeExpenseDeltas(tt.expense)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries (%v), want %d (%v)", len(got), got, len(tt.want), tt.want)
			}
			for uid, want := range tt.want {
				if math.Abs(got[uid]-want) > 1e-9 {
					t.Errorf("delta[%s] = %v, want %v", uid, got[uid], want)
				}
			}
		})
	}
}

func TestComputeExpenseDeltasZeroSum(t *testing.T) {
	// Payer and split sums both equal the total, so deltas must sum to zero.
	expense := models.Expense{
		TotalAmount: 100,
		Payers: []models.PayerLine{
			{UID: "u1", Amount: 60},
			{UID: "u2", Amount: 40},
		},
		Splits: []models.SplitLine{
			{UID: "u1", Amount: 33.34},
			{UID: "u2", Amount: 33.33},
			{UID: "u3", Amount: 33.33},
		},
	}

	var sum float64
	for _, delta := range ComputeExpenseDeltas(expense) {
		sum += delta
	}
	if math.Abs(sum) > 1e-6 {
		t.Errorf("deltas sum to %v, want 0", sum)
	}
}
