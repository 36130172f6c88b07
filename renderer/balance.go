package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/ledgerview"
	"github.com/etnz/ledgerview/date"
	md "github.com/nao1215/markdown"
)

// BalanceMarkdown renders the rows of a in canonical order with their
// running balance. The anchored row is marked with "⚓" and highlighted rows
// with "★".
func BalanceMarkdown(a ledgerview.Analysis, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Running Balance")
	if len(a.Rows) == 0 {
		doc.PlainText("No ledger lines match the filters.")
		return doc.String()
	}

	table := md.TableSet{Header: []string{"", "Date", "Event", "Description", "Amount", "Balance"}}
	for _, row := range a.Rows {
		mark := ""
		if row.Anchor {
			mark += "⚓"
		}
		if row.Highlighted {
			mark += "★"
		}
		description := row.Line.Description
		if description == "" {
			description = row.Line.CounterpartyHint
		}
		table.Rows = append(table.Rows, []string{
			mark,
			date.FromTime(row.Line.OccurredAt).String(),
			cell(row.Line.SourceEventID),
			cell(description),
			opts.signed(row.Line.SignedAmount),
			opts.signed(row.Balance),
		})
	}
	doc.Table(table)
	doc.PlainText(fmt.Sprintf("Closing balance: %s", opts.signed(a.Summary.Net.Value)))
	return doc.String()
}
