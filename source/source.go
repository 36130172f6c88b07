// Package source fetches ledger lines and their dimension rollups, from the
// ledger line service over HTTP or from a local JSON file, and coordinates
// refreshes driven by filter state changes.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/etnz/ledgerview"
	"github.com/etnz/ledgerview/date"
)

// ErrUpstream is wrapped by every error reporting a non-2xx response.
var ErrUpstream = errors.New("upstream error")

// StatusError reports a non-2xx response of the ledger line service.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cannot http %s %s: %s", e.Method, e.URL, e.Status)
}

func (e *StatusError) Unwrap() error { return ErrUpstream }

// Query bounds a fetch.
type Query struct {
	BusinessID string
	Range      date.Range
	// Limit caps the number of lines; 0 lets the source decide.
	Limit int
}

// values returns the query parameters understood by the ledger line service.
func (q Query) values() url.Values {
	v := url.Values{}
	if q.BusinessID != "" {
		v.Set("business_id", q.BusinessID)
	}
	if !q.Range.From.IsZero() {
		v.Set("start_date", q.Range.From.String())
	}
	if !q.Range.To.IsZero() {
		v.Set("end_date", q.Range.To.String())
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// Dimension names a rollup computed by a source.
type Dimension string

const (
	Accounts Dimension = "accounts"
	Vendors  Dimension = "vendors"
)

// field is the name of the grouping field in a rollup row.
func (d Dimension) field() string {
	switch d {
	case Accounts:
		return "account"
	case Vendors:
		return "vendor"
	default:
		return string(d)
	}
}

// Provider provides ledger lines and spend rollups for a date range.
type Provider interface {
	Lines(ctx context.Context, q Query) ([]ledgerview.LedgerLine, error)
	Dimensions(ctx context.Context, dim Dimension, q Query) ([]ledgerview.DimensionRow, error)
}
