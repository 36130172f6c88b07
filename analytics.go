package ledgerview

import (
	"sort"

	"github.com/shopspring/decimal"
)

// compareLines is the canonical order: occurred_at, then source_event_id.
func compareLines(a, b LedgerLine) int {
	if c := a.OccurredAt.Compare(b.OccurredAt); c != 0 {
		return c
	}
	switch {
	case a.SourceEventID < b.SourceEventID:
		return -1
	case a.SourceEventID > b.SourceEventID:
		return 1
	default:
		return 0
	}
}

// SortLines returns a copy of lines in canonical order. Every other
// computation of this package walks lines in this order.
func SortLines(lines []LedgerLine) []LedgerLine {
	sorted := make([]LedgerLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareLines(sorted[i], sorted[j]) < 0
	})
	return sorted
}

// LedgerSummary holds the traced totals of a set of lines.
type LedgerSummary struct {
	Inflow  TracedMetric
	Outflow TracedMetric
	Net     TracedMetric
	Count   int
}

// MarshalJSON writes inflow, outflow, net and count in that order.
func (s LedgerSummary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("inflow", s.Inflow)
	w.Append("outflow", s.Outflow)
	w.Append("net", s.Net)
	w.Append("count", s.Count)
	return w.MarshalJSON()
}

func features(metric, rule string) map[string]any {
	return map[string]any{
		"metric":    metric,
		"sign_rule": rule,
		"order":     CanonicalOrder,
	}
}

// ComputeLedgerSummary totals lines into inflow, outflow and net.
//
// A line with a non-negative amount is an inflow, zero included. Outflow is
// reported as a non-negative magnitude, and net is inflow minus outflow.
// Each metric is traced by exactly the lines that contributed to it. Filtering
// is the caller's job: every line given is counted.
func ComputeLedgerSummary(lines []LedgerLine) LedgerSummary {
	s := LedgerSummary{
		Inflow:  TracedMetric{Value: decimal.Zero, Trace: newTrace(features("inflow", "signed_amount >= 0"))},
		Outflow: TracedMetric{Value: decimal.Zero, Trace: newTrace(features("outflow", "signed_amount < 0"))},
		Net:     TracedMetric{Value: decimal.Zero, Trace: newTrace(features("net", "all"))},
	}
	for _, l := range SortLines(lines) {
		if l.SignedAmount.IsNegative() {
			s.Outflow.Value = s.Outflow.Value.Sub(l.SignedAmount)
			s.Outflow.Trace.add(l.SourceEventID)
		} else {
			s.Inflow.Value = s.Inflow.Value.Add(l.SignedAmount)
			s.Inflow.Trace.add(l.SourceEventID)
		}
		s.Net.Trace.add(l.SourceEventID)
		s.Count++
	}
	s.Net.Value = s.Inflow.Value.Sub(s.Outflow.Value)
	return s
}

// Balance is the running balance after one line.
type Balance struct {
	SourceEventID string
	Balance       decimal.Decimal
}

// RunningBalances walks lines in canonical order from a zero balance and
// returns the balance after each line, in that order.
func RunningBalances(lines []LedgerLine) []Balance {
	sorted := SortLines(lines)
	out := make([]Balance, 0, len(sorted))
	total := decimal.Zero
	for _, l := range sorted {
		total = total.Add(l.SignedAmount)
		out = append(out, Balance{SourceEventID: l.SourceEventID, Balance: total})
	}
	return out
}

// ComputeRunningBalance returns the running balance keyed by source event id.
// The balance of the last line in canonical order equals the net of
// ComputeLedgerSummary over the same lines.
//
// Event ids are expected to be unique; a repeated id keeps its last balance.
func ComputeRunningBalance(lines []LedgerLine) map[string]decimal.Decimal {
	balances := RunningBalances(lines)
	out := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		out[b.SourceEventID] = b.Balance
	}
	return out
}
