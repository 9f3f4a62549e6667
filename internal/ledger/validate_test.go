package ledger

import (
	"errors"
	"testing"

	"github.com/shariqwaseem/sw-clone/internal/models"
)

func TestValidateExpense(t *testing.T) {
	valid := models.Expense{
		TotalAmount: 120,
		Payers:      []models.PayerLine{{UID: "u1", Amount: 120}},
		Splits: []models.SplitLine{
			{UID: "u1", Amount: 40},
			{UID: "u2", Amount: 40},
			{UID: "u3", Amount: 40},
		},
	}

	tests := []struct {
		name    string
		mutate  func(e *models.Expense)
		wantErr error
	}{
		{
			name:    "valid expense passes",
			mutate:  func(e *models.Expense) {},
			wantErr: nil,
		},
		{
			name: "sums within epsilon pass",
			mutate: func(e *models.Expense) {
				e.TotalAmount = 100
				e.Payers = []models.PayerLine{{UID: "u1", Amount: 100}}
				e.Splits = []models.SplitLine{
					{UID: "u1", Amount: 33.34},
					{UID: "u2", Amount: 33.33},
					{UID: "u3", Amount: 33.33},
				}
			},
			wantErr: nil,
		},
		{
			name:    "zero total rejected",
			mutate:  func(e *models.Expense) { e.TotalAmount = 0 },
			wantErr: ErrNonPositiveTotal,
		},
		{
			name:    "negative total rejected",
			mutate:  func(e *models.Expense) { e.TotalAmount = -5 },
			wantErr: ErrNonPositiveTotal,
		},
		{
			name: "payer sum short of total rejected",
			mutate: func(e *models.Expense) {
				e.Payers = []models.PayerLine{{UID: "u1", Amount: 100}}
			},
			wantErr: ErrPayerSumMismatch,
		},
		{
			name: "split sum over total rejected",
			mutate: func(e *models.Expense) {
				e.Splits = append(e.Splits, models.SplitLine{UID: "u4", Amount: 10})
			},
			wantErr: ErrSplitSumMismatch,
		},
		{
			name: "negative payer line rejected",
			mutate: func(e *models.Expense) {
				e.Payers = []models.PayerLine{
					{UID: "u1", Amount: 160},
					{UID: "u2", Amount: -40},
				}
			},
			wantErr: ErrNegativeLineAmount,
		},
		{
			name: "negative split line rejected",
			mutate: func(e *models.Expense) {
				e.Splits = []models.SplitLine{
					{UID: "u1", Amount: 80},
					{UID: "u2", Amount: 80},
					{UID: "u3", Amount: -40},
				}
			},
			wantErr: ErrNegativeLineAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expense := valid
			expense.Payers = append([]models.PayerLine(nil), valid.Payers...)
			expense.Splits = append([]models.SplitLine(nil), valid.Splits...)
			tt.mutate(&expense)

			err := ValidateExpense(expense)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateExpense() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExpense() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
