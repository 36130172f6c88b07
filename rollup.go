package ledgerview

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TotalMode selects what a rollup total sums.
type TotalMode int

const (
	// SpendTotals sums the magnitude of outflows only.
	SpendTotals TotalMode = iota
	// NetTotals sums signed amounts.
	NetTotals
)

func (m TotalMode) String() string {
	switch m {
	case SpendTotals:
		return "spend"
	case NetTotals:
		return "net"
	default:
		return "unknown"
	}
}

// Labels of the groups holding unclassified lines.
const (
	UnassignedAccount = "Unassigned"
	UnknownVendor     = "Unknown"
)

// UnclassifiedKey is the key of the Unassigned and Unknown groups. As an
// account or vendor filter member it selects the lines without one.
const UnclassifiedKey = "-"

// DimensionRow is one group of a dimension rollup. Key is the value to put
// in the matching FilterState field to drill into the group.
type DimensionRow struct {
	Key   string
	Label string
	Count int
	Total decimal.Decimal
}

// MarshalJSON writes key, label, count and total.
func (r DimensionRow) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("key", r.Key)
	w.Append("label", r.Label)
	w.Append("count", r.Count)
	w.Amount("total", r.Total)
	return w.MarshalJSON()
}

// RollupByAccount groups lines by account name.
func RollupByAccount(lines []LedgerLine, mode TotalMode) []DimensionRow {
	return rollup(lines, mode, func(l LedgerLine) (string, string) {
		if l.AccountName == "" {
			return UnclassifiedKey, UnassignedAccount
		}
		return l.AccountName, l.AccountName
	})
}

// RollupByVendor groups lines by normalized vendor key. A group is labelled
// with the first original spelling met in canonical order.
func RollupByVendor(lines []LedgerLine, mode TotalMode) []DimensionRow {
	return rollup(lines, mode, func(l LedgerLine) (string, string) {
		key := l.VendorKey()
		if key == "" {
			return UnclassifiedKey, UnknownVendor
		}
		return key, l.vendorLabel()
	})
}

// rollup accumulates count and total per group.
func rollup(lines []LedgerLine, mode TotalMode, group func(LedgerLine) (key, label string)) []DimensionRow {
	index := make(map[string]int)
	rows := make([]DimensionRow, 0)
	for _, l := range SortLines(lines) {
		key, label := group(l)
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, DimensionRow{Key: key, Label: label, Total: decimal.Zero})
		}
		rows[i].Count++
		switch mode {
		case NetTotals:
			rows[i].Total = rows[i].Total.Add(l.SignedAmount)
		default:
			if l.SignedAmount.IsNegative() {
				rows[i].Total = rows[i].Total.Sub(l.SignedAmount)
			}
		}
	}
	sortRows(rows)
	return rows
}

// sortRows orders rows by total descending, then label, then key.
func sortRows(rows []DimensionRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].Total.Cmp(rows[j].Total); c != 0 {
			return c > 0
		}
		if rows[i].Label != rows[j].Label {
			return rows[i].Label < rows[j].Label
		}
		return rows[i].Key < rows[j].Key
	})
}
