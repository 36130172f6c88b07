package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/ledgerview"
	"github.com/etnz/ledgerview/date"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// SummaryMarkdown renders the totals, rollups and monthly series of a.
func SummaryMarkdown(a ledgerview.Analysis, r date.Range, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Ledger Summary from %s to %s", r.From, r.To))
	if q := a.Filters.Encode(); q != "" {
		doc.PlainText(fmt.Sprintf("Filters: `%s`", q))
	}

	doc.H2("Totals")
	s := a.Summary
	metric := func(name string, m ledgerview.TracedMetric, format func(decimal.Decimal) string) []string {
		return []string{
			name,
			format(m.Value),
			strconv.Itoa(m.Trace.SupportingLineCount),
			fmt.Sprintf("`%s`", m.Trace.Fingerprint().String()[:8]),
		}
	}
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Amount", "Lines", "Trace"},
		Rows: [][]string{
			metric("Inflow", s.Inflow, opts.amount),
			metric("Outflow", s.Outflow, opts.amount),
			metric("Net", s.Net, opts.signed),
		},
	})

	dimension := func(title, column string, rows []ledgerview.DimensionRow) {
		if len(rows) > 0 {
			writeRollup(doc, title, column, rows, opts)
		}
	}
	dimension("Accounts", "Account", a.Accounts)
	dimension("Vendors", "Vendor", a.Vendors)

	if len(a.Months) > 0 {
		doc.H2("Months")
		table := md.TableSet{Header: []string{"Month", "Inflow", "Outflow", "Net", "Lines"}}
		for _, m := range a.Months {
			table.Rows = append(table.Rows, []string{
				m.Month,
				opts.amount(m.Inflow),
				opts.amount(m.Outflow),
				opts.signed(m.Net),
				strconv.Itoa(m.Count),
			})
		}
		doc.Table(table)
	}

	return doc.String()
}

// RollupMarkdown renders one dimension rollup as a table.
func RollupMarkdown(title, column string, rows []ledgerview.DimensionRow, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	writeRollup(doc, title, column, rows, opts)
	return doc.String()
}

func writeRollup(doc *md.Markdown, title, column string, rows []ledgerview.DimensionRow, opts Options) {
	doc.H2(title)
	table := md.TableSet{Header: []string{column, "Lines", "Total"}}
	for _, row := range opts.top(rows) {
		table.Rows = append(table.Rows, []string{cell(row.Label), strconv.Itoa(row.Count), opts.amount(row.Total)})
	}
	doc.Table(table)
}
