package ledger

import (
	"math"
	"reflect"
	"testing"

	"github.com/shariqwaseem/sw-clone/internal/models"
)

func roster(uids ...string) []models.GroupMember {
	members := make([]models.GroupMember, len(uids))
	for i, uid := range uids {
		members[i] = models.GroupMember{
			UID:         uid,
			Email:       uid + "@example.com",
			DisplayName: uid,
			Role:        models.RoleMember,
			Status:      models.StatusActive,
		}
	}
	return members
}

func TestComputeGroupNetBalances(t *testing.T) {
	members := roster("u1", "u2", "u3")

	tests := []struct {
		name     string
		expenses []models.Expense
		payments []models.Payment
		want     map[string]float64
	}{
		{
			name:     "empty history yields all-zero balances",
			expenses: nil,
			payments: nil,
			want:     map[string]float64{"u1": 0, "u2": 0, "u3": 0},
		},
		{
			name: "two expenses folded",
			expenses: []models.Expense{
				{
					TotalAmount: 90,
					Payers:      []models.PayerLine{{UID: "u1", Amount: 90}},
					Splits: []models.SplitLine{
						{UID: "u1", Amount: 30}, {UID: "u2", Amount: 30}, {UID: "u3", Amount: 30},
					},
				},
				{
					TotalAmount: 60,
					Payers:      []models.PayerLine{{UID: "u2", Amount: 60}},
					Splits: []models.SplitLine{
						{UID: "u1", Amount: 20}, {UID: "u2", Amount: 20}, {UID: "u3", Amount: 20},
					},
				},
			},
			want: map[string]float64{"u1": 40, "u2": 10, "u3": -50},
		},
		{
			name: "percentage style split",
			expenses: []models.Expense{
				{
					TotalAmount: 500,
					Payers:      []models.PayerLine{{UID: "u1", Amount: 500}},
					Splits: []models.SplitLine{
						{UID: "u1", Amount: 100}, {UID: "u2", Amount: 200}, {UID: "u3", Amount: 200},
					},
				},
			},
			want: map[string]float64{"u1": 400, "u2": -200, "u3": -200},
		},
		{
			name: "rounding edge",
			expenses: []models.Expense{
				{
					TotalAmount: 100,
					Payers:      []models.PayerLine{{UID: "u1", Amount: 100}},
					Splits: []models.SplitLine{
						{UID: "u1", Amount: 33.34}, {UID: "u2", Amount: 33.33}, {UID: "u3", Amount: 33.33},
					},
				},
			},
			want: map[string]float64{"u1": 66.66, "u2": -33.33, "u3": -33.33},
		},
		{
			name: "payment folded in",
			expenses: []models.Expense{
				{
					TotalAmount: 120,
					Payers:      []models.PayerLine{{UID: "u1", Amount: 120}},
					Splits: []models.SplitLine{
						{UID: "u1", Amount: 40}, {UID: "u2", Amount: 40}, {UID: "u3", Amount: 40},
					},
				},
			},
			payments: []models.Payment{
				{FromUID: "u3", ToUID: "u1", Amount: 20},
			},
			want: map[string]float64{"u1": 60, "u2": -40, "u3": -20},
		},
		{
			name: "deleted records excluded",
			expenses: []models.Expense{
				{
					TotalAmount: 1000,
					Payers:      []models.PayerLine{{UID: "u1", Amount: 1000}},
					Splits:      []models.SplitLine{{UID: "u2", Amount: 1000}},
					IsDeleted:   true,
				},
			},
			payments: []models.Payment{
				{FromUID: "u2", ToUID: "u1", Amount: 500, IsDeleted: true},
			},
			want: map[string]float64{"u1": 0, "u2": 0, "u3": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeGroupNetBalances(tt.expenses, tt.payments, members)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries (%v), want %d", len(got), got, len(tt.want))
			}
			var sum float64
			for uid, want := range tt.want {
				if math.Abs(got[uid]-want) > 0.005 {
					t.Errorf("balance[%s] = %v, want %v", uid, got[uid], want)
				}
				sum += got[uid]
			}
			if math.Abs(sum) > 1e-6 {
				t.Errorf("balances sum to %v, want 0", sum)
			}
		})
	}
}

func TestComputeGroupNetBalancesStrayUID(t *testing.T) {
	// An expense referencing a uid missing from the roster (e.g., a removed
	// member) must still be merged into the result.
	expenses := []models.Expense{
		{
			TotalAmount: 30,
			Payers:      []models.PayerLine{{UID: "ghost", Amount: 30}},
			Splits: []models.SplitLine{
				{UID: "u1", Amount: 15}, {UID: "u2", Amount: 15},
			},
		},
	}

	balances := ComputeGroupNetBalances(expenses, nil, roster("u1", "u2"))
	if got := balances["ghost"]; got != 30 {
		t.Errorf("balance[ghost] = %v, want 30", got)
	}
	if got := balances["u1"]; got != -15 {
		t.Errorf("balance[u1] = %v, want -15", got)
	}
}

func TestComputeGroupNetBalancesIdempotent(t *testing.T) {
	expenses := []models.Expense{
		{
			TotalAmount: 77.31,
			Payers:      []models.PayerLine{{UID: "u1", Amount: 77.31}},
			Splits: []models.SplitLine{
				{UID: "u1", Amount: 25.77}, {UID: "u2", Amount: 25.77}, {UID: "u3", Amount: 25.77},
			},
		},
	}
	payments := []models.Payment{{FromUID: "u2", ToUID: "u1", Amount: 10.50}}
	members := roster("u1", "u2", "u3")

	first := ComputeGroupNetBalances(expenses, payments, members)
	second := ComputeGroupNetBalances(expenses, payments, members)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
}
