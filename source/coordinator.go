package source

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/etnz/ledgerview"
	"github.com/etnz/ledgerview/date"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrSuperseded is returned by a refresh overtaken by a newer one.
var ErrSuperseded = errors.New("refresh superseded by a newer one")

// Snapshot is the data fetched for one filter state.
type Snapshot struct {
	State      ledgerview.FilterState
	Resolution ledgerview.Resolution
	Lines      []ledgerview.LedgerLine
	// Accounts and Vendors are the spend rollups of the whole range, before
	// any row filter.
	Accounts  []ledgerview.DimensionRow
	Vendors   []ledgerview.DimensionRow
	FetchedAt time.Time
}

// Range returns the fetched date range.
func (s *Snapshot) Range() date.Range { return s.Resolution.Range() }

// Analyze runs the analytics pipeline over the snapshot. With unfiltered
// spend rollups, the rollups fetched from the source are used as is.
func (s *Snapshot) Analyze(opts ledgerview.AnalyzeOptions) ledgerview.Analysis {
	a := ledgerview.Analyze(s.Lines, s.State, opts)
	if opts.UnfilteredRollups && opts.Totals == ledgerview.SpendTotals {
		a.Accounts, a.Vendors = s.Accounts, s.Vendors
	}
	return a
}

// Coordinator refreshes snapshots as the filter state changes. Only the
// latest refresh may publish: starting a refresh cancels the one in flight.
type Coordinator struct {
	src        Provider
	businessID string
	limit      int
	log        zerolog.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	last   *Snapshot
}

// NewCoordinator returns a coordinator fetching from src.
func NewCoordinator(src Provider, businessID string, limit int, log zerolog.Logger) *Coordinator {
	return &Coordinator{src: src, businessID: businessID, limit: limit, log: log}
}

// Last returns the last successful snapshot, or nil.
func (c *Coordinator) Last() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Fetch resolves the date range of state at now, validates it, and fetches
// the lines and both rollups of that range concurrently. An invalid range is
// reported before anything is fetched.
func Fetch(ctx context.Context, src Provider, state ledgerview.FilterState, q Query, now time.Time) (*Snapshot, error) {
	state = state.Canonical()
	res := ledgerview.ResolveDateRange(state, now)
	if err := ledgerview.ValidateRange(res.Range()); err != nil {
		return nil, err
	}
	q.Range = res.Range()

	snap := &Snapshot{State: state, Resolution: res}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Lines, err = src.Lines(ctx, q)
		return err
	})
	g.Go(func() (err error) {
		snap.Accounts, err = src.Dimensions(ctx, Accounts, q)
		return err
	})
	g.Go(func() (err error) {
		snap.Vendors, err = src.Dimensions(ctx, Vendors, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", q.Range, err)
	}
	snap.FetchedAt = now
	return snap, nil
}

// Refresh fetches the snapshot of state, see Fetch.
//
// A refresh overtaken by a newer one returns ErrSuperseded and publishes
// nothing. On a fetch failure the previous snapshot, possibly nil, is
// returned along with the error so that callers can keep showing it.
func (c *Coordinator) Refresh(ctx context.Context, state ledgerview.FilterState, now time.Time) (*Snapshot, error) {
	if err := ledgerview.ValidateRange(ledgerview.ResolveDateRange(state.Canonical(), now).Range()); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	c.cancel = cancel
	c.mu.Unlock()

	snap, err := Fetch(ctx, c.src, state, Query{BusinessID: c.businessID, Limit: c.limit}, now)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		c.log.Debug().Stringer("state", state).Msg("refresh superseded")
		return nil, ErrSuperseded
	}
	c.cancel = nil
	if err != nil {
		c.log.Warn().Err(err).Msg("refresh failed, keeping last snapshot")
		return c.last, err
	}
	c.last = snap
	c.log.Info().
		Str("range", snap.Range().String()).
		Int("lines", len(snap.Lines)).
		Msg("refreshed")
	return snap, nil
}
