package ledgerview

import (
	"sort"

	"github.com/etnz/ledgerview/date"
	"github.com/shopspring/decimal"
)

// MonthBucket holds the totals of one calendar month.
type MonthBucket struct {
	Month   string // YYYY-MM, usable with date.MonthBounds
	Inflow  decimal.Decimal
	Outflow decimal.Decimal
	Net     decimal.Decimal
	Count   int
}

// MarshalJSON writes the bucket with amounts as numbers.
func (b MonthBucket) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("month", b.Month)
	w.Amount("inflow", b.Inflow)
	w.Amount("outflow", b.Outflow)
	w.Amount("net", b.Net)
	w.Append("count", b.Count)
	return w.MarshalJSON()
}

// MonthlySeries buckets lines by the calendar month of their occurrence,
// in their own location, with the same sign rules as ComputeLedgerSummary.
// Only months holding lines are returned, oldest first.
func MonthlySeries(lines []LedgerLine) []MonthBucket {
	var buckets []MonthBucket
	index := make(map[string]int)
	for _, l := range SortLines(lines) {
		month := date.MonthLabel(date.FromTime(l.OccurredAt))
		i, ok := index[month]
		if !ok {
			i = len(buckets)
			index[month] = i
			buckets = append(buckets, MonthBucket{Month: month, Inflow: decimal.Zero, Outflow: decimal.Zero, Net: decimal.Zero})
		}
		b := &buckets[i]
		if l.SignedAmount.IsNegative() {
			b.Outflow = b.Outflow.Sub(l.SignedAmount)
		} else {
			b.Inflow = b.Inflow.Add(l.SignedAmount)
		}
		b.Net = b.Net.Add(l.SignedAmount)
		b.Count++
	}
	// lines in different locations may straddle months out of order.
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Month < buckets[j].Month })
	return buckets
}
