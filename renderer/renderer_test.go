package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/ledgerview"
	"github.com/etnz/ledgerview/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// outline is what a reader sees of a markdown report: its headings and the
// cells of every table body.
type outline struct {
	Headings []string
	Tables   [][][]string
}

func parse(t *testing.T, markdown string) outline {
	t.Helper()
	src := []byte(markdown)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))

	var out outline
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			out.Headings = append(out.Headings, textOf(n, src))
			return ast.WalkSkipChildren, nil
		case *extast.Table:
			out.Tables = append(out.Tables, nil)
		case *extast.TableRow:
			var row []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				row = append(row, textOf(c, src))
			}
			last := len(out.Tables) - 1
			out.Tables[last] = append(out.Tables[last], row)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

func textOf(n ast.Node, src []byte) string {
	var b strings.Builder
	ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func sample() ledgerview.Analysis {
	mk := func(id string, day int, amount, account, hint string) ledgerview.LedgerLine {
		v := decimal.RequireFromString(amount)
		return ledgerview.LedgerLine{
			OccurredAt:       time.Date(2024, time.June, day, 9, 0, 0, 0, time.UTC),
			SourceEventID:    id,
			SignedAmount:     v,
			Direction:        ledgerview.DirectionOf(v),
			AccountName:      account,
			CounterpartyHint: hint,
		}
	}
	lines := []ledgerview.LedgerLine{
		mk("e1", 3, "1234.50", "Checking", "Employer"),
		mk("e2", 4, "-34.50", "Checking", "ACME"),
		mk("e3", 5, "-200", "Card", "Landlord"),
	}
	state := ledgerview.FilterState{Window: ledgerview.Window30, AnchorSourceEventID: "e2", HighlightSourceEventIDs: []string{"e3"}}
	return ledgerview.Analyze(lines, state, ledgerview.AnalyzeOptions{})
}

var june = date.Between(date.New(2024, 6, 1), date.New(2024, 6, 30))

func TestSummaryMarkdown(t *testing.T) {
	got := parse(t, SummaryMarkdown(sample(), june, Options{Currency: "USD", Top: 1}))

	wantHeadings := []string{"Ledger Summary from 2024-06-01 to 2024-06-30", "Totals", "Accounts", "Vendors", "Months"}
	if diff := cmp.Diff(wantHeadings, got.Headings); diff != "" {
		t.Errorf("SummaryMarkdown() headings mismatch (-want +got):\n%s", diff)
	}
	if len(got.Tables) != 4 {
		t.Fatalf("SummaryMarkdown() has %d tables, want 4", len(got.Tables))
	}

	totals := got.Tables[0]
	if len(totals) != 3 {
		t.Fatalf("totals table has %d rows, want 3", len(totals))
	}
	for i, want := range [][]string{
		{"Inflow", "$1,234.50", "1"},
		{"Outflow", "$234.50", "2"},
		{"Net", "+$1,000.00", "3"},
	} {
		if diff := cmp.Diff(want, totals[i][:3]); diff != "" {
			t.Errorf("totals row %d mismatch (-want +got):\n%s", i, diff)
		}
	}

	accounts := got.Tables[1]
	if diff := cmp.Diff([][]string{{"Card", "1", "$200.00"}}, accounts); diff != "" {
		t.Errorf("accounts table mismatch (-want +got):\n%s", diff)
	}
	months := got.Tables[3]
	if diff := cmp.Diff([][]string{{"2024-06", "$1,234.50", "$234.50", "+$1,000.00", "3"}}, months); diff != "" {
		t.Errorf("months table mismatch (-want +got):\n%s", diff)
	}
}

func TestBalanceMarkdown(t *testing.T) {
	got := parse(t, BalanceMarkdown(sample(), Options{Currency: "USD"}))
	if len(got.Tables) != 1 {
		t.Fatalf("BalanceMarkdown() has %d tables, want 1", len(got.Tables))
	}
	want := [][]string{
		{"", "2024-06-03", "e1", "Employer", "+$1,234.50", "+$1,234.50"},
		{"⚓", "2024-06-04", "e2", "ACME", "-$34.50", "+$1,200.00"},
		{"★", "2024-06-05", "e3", "Landlord", "-$200.00", "+$1,000.00"},
	}
	if diff := cmp.Diff(want, got.Tables[0]); diff != "" {
		t.Errorf("BalanceMarkdown() rows mismatch (-want +got):\n%s", diff)
	}

	empty := BalanceMarkdown(ledgerview.Analyze(nil, ledgerview.FilterState{}, ledgerview.AnalyzeOptions{}), Options{})
	if !strings.Contains(empty, "No ledger lines match the filters.") {
		t.Errorf("BalanceMarkdown(empty) = %q, want the no lines message", empty)
	}
}

func TestRollupMarkdown(t *testing.T) {
	a := sample()
	got := parse(t, RollupMarkdown("Vendors", "Vendor", a.Vendors, Options{Currency: "USD"}))
	if diff := cmp.Diff([]string{"Vendors"}, got.Headings); diff != "" {
		t.Errorf("RollupMarkdown() headings mismatch (-want +got):\n%s", diff)
	}
	if len(got.Tables) != 1 || len(got.Tables[0]) != 3 {
		t.Fatalf("RollupMarkdown() tables = %v, want one table of 3 rows", got.Tables)
	}
	if row := got.Tables[0][0]; row[0] != "Landlord" || row[1] != "1" || row[2] != "$200.00" {
		t.Errorf("first vendor row = %v, want Landlord with 200.00 spent", row)
	}
}
