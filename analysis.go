package ledgerview

import (
	"slices"

	"github.com/shopspring/decimal"
)

// AnalyzeOptions tunes Analyze.
type AnalyzeOptions struct {
	// Totals selects what the account and vendor rollups sum.
	Totals TotalMode
	// UnfilteredRollups computes the rollups over every fetched line rather
	// than over the filtered rows, so the sidebars keep listing choices the
	// current filters hide.
	UnfilteredRollups bool
}

// Row is a ledger line as displayed: with its running balance and whether
// the filter state asks for it to be anchored or highlighted.
type Row struct {
	Line        LedgerLine
	Balance     decimal.Decimal
	Anchor      bool
	Highlighted bool
}

// MarshalJSON writes the line fields followed by the row fields.
func (r Row) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(r.Line)
	w.Amount("balance", r.Balance)
	w.Optional("anchor", r.Anchor)
	w.Optional("highlighted", r.Highlighted)
	return w.MarshalJSON()
}

// Analysis is everything a ledger view displays for one filter state.
type Analysis struct {
	Filters  FilterState
	Rows     []Row
	Summary  LedgerSummary
	Accounts []DimensionRow
	Vendors  []DimensionRow
	Months   []MonthBucket
}

// MarshalJSON writes the analysis with a fixed field order.
func (a Analysis) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("filters", a.Filters)
	w.Append("query", a.Filters.Encode())
	w.Append("summary", a.Summary)
	w.Append("rows", nonNil(a.Rows))
	w.Append("accounts", nonNil(a.Accounts))
	w.Append("vendors", nonNil(a.Vendors))
	w.Append("months", nonNil(a.Months))
	return w.MarshalJSON()
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Analyze runs the whole pipeline over lines fetched for the resolved range
// of state: filter, canonical sort, summary, running balances, rollups and
// monthly series.
//
// Lines are not checked against the date range; the fetch bounds them.
func Analyze(lines []LedgerLine, state FilterState, opts AnalyzeOptions) Analysis {
	state = state.Canonical()
	visible := SortLines(FilterLines(lines, state))

	rows := make([]Row, len(visible))
	for i, b := range RunningBalances(visible) {
		id := visible[i].SourceEventID
		rows[i] = Row{
			Line:        visible[i],
			Balance:     b.Balance,
			Anchor:      id != "" && id == state.AnchorSourceEventID,
			Highlighted: id != "" && slices.Contains(state.HighlightSourceEventIDs, id),
		}
	}

	rolled := visible
	if opts.UnfilteredRollups {
		rolled = lines
	}
	return Analysis{
		Filters:  state,
		Rows:     rows,
		Summary:  ComputeLedgerSummary(visible),
		Accounts: RollupByAccount(rolled, opts.Totals),
		Vendors:  RollupByVendor(rolled, opts.Totals),
		Months:   MonthlySeries(visible),
	}
}

// AnchorIndex returns the index of the anchored row, or -1.
func (a Analysis) AnchorIndex() int {
	return slices.IndexFunc(a.Rows, func(r Row) bool { return r.Anchor })
}
