package core

import "testing"

func tx(txType TxType, cents int64) Transaction {
	return Transaction{
		Description: "test",
		Amount:      Money{Cents: cents},
		Type:        txType,
		Date:        NewDate(2026, 1, 1),
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name        string
		records     []Transaction
		wantIncome  int64
		wantExpense int64
		wantBalance int64
	}{
		{
			name: "empty ledger",
		},
		{
			name:        "income only",
			records:     []Transaction{tx(Income, 1000), tx(Income, 250)},
			wantIncome:  1250,
			wantBalance: 1250,
		},
		{
			name:        "expense only",
			records:     []Transaction{tx(Expense, 300)},
			wantExpense: 300,
			wantBalance: -300,
		},
		{
			name:        "mixed",
			records:     []Transaction{tx(Income, 1000), tx(Expense, 300)},
			wantIncome:  1000,
			wantExpense: 300,
			wantBalance: 700,
		},
		{
			name:        "expenses exceed income",
			records:     []Transaction{tx(Income, 500), tx(Expense, 800), tx(Expense, 200)},
			wantIncome:  500,
			wantExpense: 1000,
			wantBalance: -500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.records)
			if got.Income.Cents != tt.wantIncome {
				t.Errorf("Income = %d, want %d", got.Income.Cents, tt.wantIncome)
			}
			if got.Expense.Cents != tt.wantExpense {
				t.Errorf("Expense = %d, want %d", got.Expense.Cents, tt.wantExpense)
			}
			if got.Balance.Cents != tt.wantBalance {
				t.Errorf("Balance = %d, want %d", got.Balance.Cents, tt.wantBalance)
			}
		})
	}
}
