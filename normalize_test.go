package ledgerview

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func decodeOne(t *testing.T, payload string) LedgerLine {
	t.Helper()
	lines, err := DecodeLines([]byte("[" + payload + "]"))
	if err != nil {
		t.Fatalf("DecodeLines() error = %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("DecodeLines() returned %d lines, want 1", len(lines))
	}
	return lines[0]
}

func TestNormalizeLine_Complete(t *testing.T) {
	l := decodeOne(t, `{
		"occurred_at": "2024-06-01T10:30:00Z",
		"source_event_id": "ev1",
		"description": " Coffee shop ",
		"counterparty_hint": "Blue Bottle",
		"direction": "outflow",
		"signed_amount": -4.5,
		"category_name": "Food",
		"account_name": "Checking",
		"account_type": "depository",
		"account_subtype": "checking",
		"categorization": {"confidence": 0.92, "reason": "merchant match", "source": "rules", "status": "accepted"}
	}`)

	if want := time.Date(2024, time.June, 1, 10, 30, 0, 0, time.UTC); !l.OccurredAt.Equal(want) {
		t.Errorf("OccurredAt = %v, want %v", l.OccurredAt, want)
	}
	if l.SourceEventID != "ev1" || l.Description != "Coffee shop" || l.CounterpartyHint != "Blue Bottle" {
		t.Errorf("text fields = %q %q %q", l.SourceEventID, l.Description, l.CounterpartyHint)
	}
	if !l.SignedAmount.Equal(D(-4.5)) || l.Direction != Outflow {
		t.Errorf("amount = %v %v, want -4.5 outflow", l.SignedAmount, l.Direction)
	}
	if l.CategoryName != "Food" || l.AccountName != "Checking" || l.AccountType != "depository" || l.AccountSubtype != "checking" {
		t.Errorf("classification = %q %q %q %q", l.CategoryName, l.AccountName, l.AccountType, l.AccountSubtype)
	}
	want := Categorization{Confidence: 0.92, Reason: "merchant match", Source: "rules", Status: "accepted"}
	if l.Categorization == nil || *l.Categorization != want {
		t.Errorf("Categorization = %+v, want %+v", l.Categorization, want)
	}
}

func TestNormalizeLine_Fields(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		check   func(LedgerLine) bool
	}{
		{"empty object", `{}`, func(l LedgerLine) bool {
			return l.OccurredAt.IsZero() && l.SourceEventID == "" && l.SignedAmount.IsZero() && l.Direction == Inflow && l.Categorization == nil
		}},
		{"amount as string", `{"signed_amount": "-12.30"}`, func(l LedgerLine) bool {
			return l.SignedAmount.Equal(D(-12.3)) && l.Direction == Outflow
		}},
		{"malformed amount", `{"signed_amount": "twelve"}`, func(l LedgerLine) bool { return l.SignedAmount.IsZero() }},
		{"boolean amount", `{"signed_amount": true}`, func(l LedgerLine) bool { return l.SignedAmount.IsZero() }},
		{"exact decimals", `{"signed_amount": 0.1}`, func(l LedgerLine) bool { return l.SignedAmount.String() == "0.1" }},
		{"direction inferred", `{"signed_amount": 25}`, func(l LedgerLine) bool { return l.Direction == Inflow }},
		{"zero is inflow", `{"signed_amount": 0, "direction": "outflow"}`, func(l LedgerLine) bool { return l.Direction == Inflow }},
		{"inconsistent direction follows the sign", `{"signed_amount": -3, "direction": "inflow"}`, func(l LedgerLine) bool {
			return l.Direction == Outflow
		}},
		{"unsigned amount signed by direction", `{"amount": 30, "direction": "outflow"}`, func(l LedgerLine) bool {
			return l.SignedAmount.Equal(D(-30)) && l.Direction == Outflow
		}},
		{"signed_amount wins over amount", `{"signed_amount": 5, "amount": 30}`, func(l LedgerLine) bool { return l.SignedAmount.Equal(D(5)) }},
		{"numeric id", `{"source_event_id": 1234}`, func(l LedgerLine) bool { return l.SourceEventID == "1234" }},
		{"id alias", `{"id": "abc"}`, func(l LedgerLine) bool { return l.SourceEventID == "abc" }},
		{"null classification", `{"category_name": null, "account_name": null}`, func(l LedgerLine) bool {
			return l.CategoryName == "" && l.AccountName == ""
		}},
		{"nested account", `{"account": {"name": "Savings", "type": "depository"}}`, func(l LedgerLine) bool {
			return l.AccountName == "Savings" && l.AccountType == "depository"
		}},
		{"date only", `{"occurred_at": "2024-06-01"}`, func(l LedgerLine) bool {
			return l.OccurredAt.Equal(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
		}},
		{"offset timestamp", `{"occurred_at": "2024-06-01T23:00:00-04:00"}`, func(l LedgerLine) bool {
			return l.OccurredAt.Equal(time.Date(2024, time.June, 2, 3, 0, 0, 0, time.UTC))
		}},
		{"epoch seconds", `{"occurred_at": 1717200000}`, func(l LedgerLine) bool {
			return l.OccurredAt.Equal(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
		}},
		{"epoch milliseconds", `{"occurred_at": 1717200000000}`, func(l LedgerLine) bool {
			return l.OccurredAt.Equal(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
		}},
		{"malformed timestamp", `{"occurred_at": "last tuesday"}`, func(l LedgerLine) bool { return l.OccurredAt.IsZero() }},
		{"confidence as string", `{"categorization": {"confidence": "0.5"}}`, func(l LedgerLine) bool {
			return l.Categorization != nil && l.Categorization.Confidence == 0.5
		}},
		{"categorization not an object", `{"categorization": "rules"}`, func(l LedgerLine) bool { return l.Categorization == nil }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if l := decodeOne(t, tc.payload); !tc.check(l) {
				t.Errorf("NormalizeLine(%s) = %+v", tc.payload, l)
			}
		})
	}
}

func TestDecodeLines(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		want    int
		wantErr error
	}{
		{"array", `[{"source_event_id":"a"},{"source_event_id":"b"}]`, 2, nil},
		{"empty array", `[]`, 0, nil},
		{"wrapped", `{"lines":[{"source_event_id":"a"}]}`, 1, nil},
		{"wrapped in data", `{"data":[{"source_event_id":"a"}]}`, 1, nil},
		{"non objects skipped", `[1, "x", null, {"source_event_id":"a"}]`, 1, nil},
		{"object", `{"source_event_id":"a"}`, 0, ErrNotAnArray},
		{"number", `42`, 0, ErrNotAnArray},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeLines([]byte(tc.payload))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("DecodeLines() error = %v, want %v", err, tc.wantErr)
			}
			if len(got) != tc.want {
				t.Errorf("DecodeLines() = %d lines, want %d", len(got), tc.want)
			}
		})
	}
	if _, err := DecodeLines([]byte(`[{`)); err == nil {
		t.Errorf("DecodeLines() of truncated json expected an error")
	}
}

func TestLedgerLine_JSONRoundTrip(t *testing.T) {
	in := LedgerLine{
		OccurredAt:       time.Date(2024, time.June, 1, 10, 30, 0, 0, time.UTC),
		SourceEventID:    "ev1",
		Description:      "Coffee",
		CounterpartyHint: "Blue Bottle",
		Direction:        Outflow,
		SignedAmount:     D(-4.5),
		AccountName:      "Checking",
		Categorization:   &Categorization{Confidence: 0.5, Source: "rules"},
	}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	out := decodeOne(t, string(b))
	if !out.OccurredAt.Equal(in.OccurredAt) || out.SourceEventID != in.SourceEventID ||
		!out.SignedAmount.Equal(in.SignedAmount) || out.Direction != in.Direction ||
		out.AccountName != in.AccountName || out.CategoryName != "" ||
		out.Categorization == nil || *out.Categorization != *in.Categorization {
		t.Errorf("NormalizeLine(Marshal(l)) = %+v, want %+v", out, in)
	}
}

func TestDecodeDimensionRows(t *testing.T) {
	payload := `{"items":[
		{"vendor":"Blue Bottle #12","count":2,"total":"12.50"},
		{"vendor":"ACME Corp.","label":"Acme","count":3,"total":80},
		{"vendor":null,"count":1,"total":5},
		"noise"
	]}`
	rows, err := DecodeDimensionRows([]byte(payload), "vendor")
	if err != nil {
		t.Fatalf("DecodeDimensionRows() error = %v", err)
	}
	want := []struct {
		key, label string
		count      int
		total      string
	}{
		{"acme corp", "Acme", 3, "80"},
		{"blue bottle 12", "Blue Bottle #12", 2, "12.5"},
		{UnclassifiedKey, UnknownVendor, 1, "5"},
	}
	if len(rows) != len(want) {
		t.Fatalf("DecodeDimensionRows() = %d rows, want %d", len(rows), len(want))
	}
	for i, w := range want {
		r := rows[i]
		if r.Key != w.key || r.Label != w.label || r.Count != w.count || r.Total.String() != w.total {
			t.Errorf("row %d = %+v, want %+v", i, r, w)
		}
	}

	rows, err = DecodeDimensionRows([]byte(`[{"account":"Checking","count":1,"total":3},{"count":2,"total":1}]`), "account")
	if err != nil {
		t.Fatalf("DecodeDimensionRows() error = %v", err)
	}
	if rows[0].Key != "Checking" || rows[1].Key != UnclassifiedKey || rows[1].Label != UnassignedAccount {
		t.Errorf("DecodeDimensionRows(account) = %+v", rows)
	}

	if _, err := DecodeDimensionRows([]byte(`{"total":1}`), "account"); !errors.Is(err, ErrNotAnArray) {
		t.Errorf("DecodeDimensionRows(object) error = %v, want %v", err, ErrNotAnArray)
	}
}
