package core

// Summary is the derived {income, expense, balance} triple for a ledger
// snapshot. No rounding is applied here; formatting is a presentation
// concern.
type Summary struct {
	Income  Money
	Expense Money
	Balance Money
}

// Summarize aggregates the records in a single pass. Each record
// contributes to exactly one of income or expense based on its type;
// balance is income minus expense. Empty input yields the zero Summary.
func Summarize(records []Transaction) Summary {
	var s Summary
	for _, t := range records {
		switch t.Type {
		case Income:
			s.Income.Cents += t.Amount.Cents
		case Expense:
			s.Expense.Cents += t.Amount.Cents
		}
	}
	s.Balance.Cents = s.Income.Cents - s.Expense.Cents
	return s
}
