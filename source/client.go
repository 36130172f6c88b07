package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/etnz/ledgerview"
	"github.com/rs/zerolog"
)

// Client reads the ledger line service:
//
//	GET {base}/ledger-lines?business_id=&start_date=&end_date=&limit=
//	GET {base}/ledger-lines/accounts?...
//	GET {base}/ledger-lines/vendors?...
type Client struct {
	base   string
	client *http.Client
	log    zerolog.Logger
}

// NewClient returns a client of the service at baseURL. A nil httpClient
// means http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		base:   strings.TrimSuffix(baseURL, "/"),
		client: httpClient,
		log:    log,
	}
}

// Lines fetches the normalized lines of the query.
func (c *Client) Lines(ctx context.Context, q Query) ([]ledgerview.LedgerLine, error) {
	data, err := c.get(ctx, "/ledger-lines", q)
	if err != nil {
		return nil, err
	}
	lines, err := ledgerview.DecodeLines(data)
	if err != nil {
		return nil, fmt.Errorf("ledger lines %s: %w", q.Range, err)
	}
	return lines, nil
}

// Dimensions fetches the spend rollup of the query along dim.
func (c *Client) Dimensions(ctx context.Context, dim Dimension, q Query) ([]ledgerview.DimensionRow, error) {
	data, err := c.get(ctx, "/ledger-lines/"+string(dim), q)
	if err != nil {
		return nil, err
	}
	rows, err := ledgerview.DecodeDimensionRows(data, dim.field())
	if err != nil {
		return nil, fmt.Errorf("%s rollup %s: %w", dim, q.Range, err)
	}
	return rows, nil
}

// get performs an HTTP GET and returns the response body.
func (c *Client) get(ctx context.Context, path string, q Query) ([]byte, error) {
	addr := c.base + path
	if v := q.values(); len(v) > 0 {
		addr += "?" + v.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	c.log.Debug().
		Str("method", req.Method).
		Str("url", addr).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("ledger source")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Method: req.Method, URL: req.URL.Path, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", req.URL.Path, err)
	}
	return data, nil
}
