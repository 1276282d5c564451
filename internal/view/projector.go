// Package view projects ledger data into display-ready view models.
//
// Everything here is a pure function of its input. Values in the
// ViewModel are formatted but NOT escaped: escaping free text for a
// markup context is the rendering boundary's responsibility
// (html/template in internal/http).
package view

import (
	"fmt"
	"strconv"

	"tally/internal/core"
)

// DatePlaceholder is rendered for a record with no date.
const DatePlaceholder = "—"

// Row is one renderable ledger line. Serial is a transient 1-based
// display number recomputed on every projection; ID is the stable
// identifier used for delete targeting.
type Row struct {
	Serial      int    `json:"serial"`
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Date        string `json:"date"`
}

// ViewModel is the data shape handed to a rendering layer.
type ViewModel struct {
	Rows       []Row  `json:"rows"`
	Empty      bool   `json:"empty"`
	CountLabel string `json:"count_label"`
	Income     string `json:"income"`
	Expense    string `json:"expense"`
	Balance    string `json:"balance"`
}

// Project maps records and their aggregates to a ViewModel. Rows come
// out newest-first, the exact reverse of the store's insertion order.
// An empty record set produces the empty-state marker instead of rows.
func Project(records []core.Transaction, sum core.Summary) ViewModel {
	vm := ViewModel{
		CountLabel: CountLabel(len(records)),
		Income:     FormatUSD(sum.Income.Cents),
		Expense:    FormatUSD(sum.Expense.Cents),
		Balance:    FormatUSD(sum.Balance.Cents),
	}
	if len(records) == 0 {
		vm.Empty = true
		return vm
	}
	vm.Rows = make([]Row, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		t := records[i]
		vm.Rows = append(vm.Rows, Row{
			Serial:      len(records) - i,
			ID:          t.ID,
			Description: t.Description,
			Amount:      FormatUSD(t.Amount.Cents),
			Type:        string(t.Type),
			Date:        FormatDate(t.Date),
		})
	}
	return vm
}

// CountLabel distinguishes singular from plural, including zero.
func CountLabel(n int) string {
	if n == 1 {
		return "1 record"
	}
	return strconv.Itoa(n) + " records"
}

// FormatUSD formats cents as a dollar string with two decimals,
// thousands separators and a leading minus sign. Zero formats as a
// non-negative amount.
//
//	123450 -> "$1,234.50"
//	-25000 -> "-$250.00"
//	0      -> "$0.00"
func FormatUSD(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := groupThousands(strconv.FormatInt(cents/100, 10))
	s := fmt.Sprintf("$%s.%02d", whole, cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// FormatDate renders a calendar date as "Feb 23, 2026". An absent date
// renders the placeholder, never an empty string.
func FormatDate(d core.Date) string {
	if d.IsEmpty() {
		return DatePlaceholder
	}
	return d.Format("Jan 2, 2006")
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
