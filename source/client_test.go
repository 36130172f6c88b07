package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/ledgerview"
	"github.com/etnz/ledgerview/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var june = date.Between(date.New(2024, 6, 1), date.New(2024, 6, 30))

func newTestServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var queries []string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/ledger-lines", func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		w.Write([]byte(`[
			{"source_event_id":"b","occurred_at":"2024-06-02T10:00:00Z","amount":"12.5","direction":"outflow","counterparty":"ACME"},
			{"source_event_id":"a","occurred_at":"2024-06-01T10:00:00Z","signed_amount":100,"account":{"name":"Checking"}}
		]`))
	})
	mux.HandleFunc("/api/ledger-lines/vendors", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"vendor":"ACME","count":1,"total":12.5}]}`))
	})
	mux.HandleFunc("/api/ledger-lines/accounts", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &queries
}

func TestClient_Lines(t *testing.T) {
	srv, queries := newTestServer(t)
	c := NewClient(srv.URL+"/api/", srv.Client(), zerolog.Nop())

	lines, err := c.Lines(context.Background(), Query{BusinessID: "biz", Range: june, Limit: 50})
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}
	if want := "business_id=biz&end_date=2024-06-30&limit=50&start_date=2024-06-01"; (*queries)[0] != want {
		t.Errorf("Lines() query = %q, want %q", (*queries)[0], want)
	}
	if len(lines) != 2 {
		t.Fatalf("Lines() = %d lines, want 2", len(lines))
	}
	if b := lines[0]; b.SourceEventID != "b" || !b.SignedAmount.Equal(decimal.RequireFromString("-12.5")) || b.Direction != ledgerview.Outflow {
		t.Errorf("Lines()[0] = %+v, want a signed outflow of -12.5", b)
	}
	if a := lines[1]; a.AccountName != "Checking" {
		t.Errorf("Lines()[1].AccountName = %q, want Checking", a.AccountName)
	}
}

func TestClient_Dimensions(t *testing.T) {
	srv, _ := newTestServer(t)
	c := NewClient(srv.URL+"/api", nil, zerolog.Nop())

	rows, err := c.Dimensions(context.Background(), Vendors, Query{Range: june})
	if err != nil {
		t.Fatalf("Dimensions(vendors) error = %v", err)
	}
	if len(rows) != 1 || rows[0].Key != "acme" || rows[0].Count != 1 {
		t.Errorf("Dimensions(vendors) = %+v", rows)
	}

	_, err = c.Dimensions(context.Background(), Accounts, Query{Range: june})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("Dimensions(accounts) error = %v, want %v", err, ErrUpstream)
	}
	var status *StatusError
	if !errors.As(err, &status) || status.StatusCode != http.StatusBadGateway {
		t.Errorf("Dimensions(accounts) error = %#v, want a 502 StatusError", err)
	}
}

func TestClient_Canceled(t *testing.T) {
	srv, _ := newTestServer(t)
	c := NewClient(srv.URL+"/api", nil, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Lines(ctx, Query{Range: june}); !errors.Is(err, context.Canceled) {
		t.Errorf("Lines() error = %v, want %v", err, context.Canceled)
	}
}
