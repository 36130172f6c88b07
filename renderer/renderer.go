// Package renderer renders ledger analyses as markdown reports.
package renderer

import (
	"strings"

	"github.com/etnz/ledgerview"
	"github.com/shopspring/decimal"
)

// Options of the reports.
type Options struct {
	// Currency is the ISO code used to format amounts. Empty formats plain
	// numbers.
	Currency string
	// Top limits the account and vendor tables; 0 shows every row.
	Top int
}

func (o Options) amount(v decimal.Decimal) string {
	return ledgerview.FormatAmount(v, o.Currency)
}

func (o Options) signed(v decimal.Decimal) string {
	return ledgerview.FormatSignedAmount(v, o.Currency)
}

func (o Options) top(rows []ledgerview.DimensionRow) []ledgerview.DimensionRow {
	if o.Top > 0 && len(rows) > o.Top {
		return rows[:o.Top]
	}
	return rows
}

// cell escapes text for a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
