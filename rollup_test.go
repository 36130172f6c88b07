package ledgerview

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func sidebarLines() []LedgerLine {
	mk := func(id, account, hint, desc string, amount float64) LedgerLine {
		l := line(id, day, amount)
		l.AccountName, l.CounterpartyHint, l.Description = account, hint, desc
		return l
	}
	return []LedgerLine{
		mk("1", "Checking", "ACME Corp.", "", -30),
		mk("2", "Checking", "acme corp", "", -20),
		mk("3", "Credit Card", "", "BLUE BOTTLE 0042", -50),
		mk("4", "Checking", "Employer", "", 1000),
		mk("5", "", "", "", -5),
		mk("6", "Credit Card", "Blue Bottle", "", 50),
	}
}

type row struct {
	Key, Label string
	Count      int
	Total      string
}

func simplify(rows []DimensionRow) []row {
	out := make([]row, len(rows))
	for i, r := range rows {
		out[i] = row{r.Key, r.Label, r.Count, r.Total.String()}
	}
	return out
}

func TestRollupByAccount(t *testing.T) {
	got := simplify(RollupByAccount(sidebarLines(), SpendTotals))
	want := []row{
		{"Checking", "Checking", 3, "50"},
		{"Credit Card", "Credit Card", 2, "50"},
		{UnclassifiedKey, UnassignedAccount, 1, "5"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RollupByAccount(spend) mismatch (-want +got):\n%s", diff)
	}

	got = simplify(RollupByAccount(sidebarLines(), NetTotals))
	want = []row{
		{"Checking", "Checking", 3, "950"},
		{"Credit Card", "Credit Card", 2, "0"},
		{UnclassifiedKey, UnassignedAccount, 1, "-5"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RollupByAccount(net) mismatch (-want +got):\n%s", diff)
	}
}

func TestRollupByVendor(t *testing.T) {
	got := simplify(RollupByVendor(sidebarLines(), SpendTotals))
	want := []row{
		{"acme corp", "ACME Corp.", 2, "50"},
		{"blue bottle", "BLUE BOTTLE 0042", 2, "50"},
		{UnclassifiedKey, UnknownVendor, 1, "5"},
		{"employer", "Employer", 1, "0"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RollupByVendor(spend) mismatch (-want +got):\n%s", diff)
	}
}

func TestRollup_Empty(t *testing.T) {
	if got := RollupByAccount(nil, SpendTotals); got == nil || len(got) != 0 {
		t.Errorf("RollupByAccount(nil) = %#v, want an empty list", got)
	}
}

func TestVendorKey(t *testing.T) {
	testCases := []struct {
		hint, desc, want string
	}{
		{"ACME Corp.", "", "acme corp"},
		{"", "  SQ *BLUE BOTTLE 4242 ", "sq blue bottle"},
		{"7-Eleven", "", "7 eleven"},
		{"", "", ""},
		{"12345", "", ""},
	}
	for _, tc := range testCases {
		l := LedgerLine{CounterpartyHint: tc.hint, Description: tc.desc}
		if got := l.VendorKey(); got != tc.want {
			t.Errorf("VendorKey(%q, %q) = %q, want %q", tc.hint, tc.desc, got, tc.want)
		}
	}
}

func TestMonthlySeries(t *testing.T) {
	jan := time.Date(2024, time.January, 31, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2024, time.February, 1, 10, 0, 0, 0, time.UTC)
	got := MonthlySeries([]LedgerLine{line("b", feb, -20), line("a", jan, 100), line("c", feb, 5)})
	if len(got) != 2 {
		t.Fatalf("MonthlySeries() = %d buckets, want 2", len(got))
	}
	check := func(b MonthBucket, month string, in, out, net float64, count int) {
		t.Helper()
		if b.Month != month || !b.Inflow.Equal(D(in)) || !b.Outflow.Equal(D(out)) || !b.Net.Equal(D(net)) || b.Count != count {
			t.Errorf("bucket = %s %v %v %v %d, want %s %v %v %v %d", b.Month, b.Inflow, b.Outflow, b.Net, b.Count, month, in, out, net, count)
		}
	}
	check(got[0], "2024-01", 100, 0, 100, 1)
	check(got[1], "2024-02", 5, 20, -15, 2)

	if got := MonthlySeries(nil); len(got) != 0 {
		t.Errorf("MonthlySeries(nil) = %v, want empty", got)
	}
}
