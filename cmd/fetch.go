package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/etnz/ledgerview"
	"github.com/etnz/ledgerview/source"
	"github.com/google/subcommands"
)

// fetch is the prologue of the report commands: it loads the app, clamps
// the state into the data bounds and fetches the snapshot.
func fetch(ctx context.Context, state ledgerview.FilterState) (*source.Snapshot, subcommands.ExitStatus) {
	a, ctx, status := boot(ctx)
	if a == nil {
		return nil, status
	}
	p, bounds, err := a.provider()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger source: %v\n", err)
		return nil, subcommands.ExitFailure
	}

	now := a.cfg.Now()
	state = throughToday(state, now)
	if clamped, notice := clampNotice(state, bounds, now); notice != "" {
		fmt.Fprintf(os.Stderr, "Note: %s\n", notice)
		state = clamped
	}

	coord := source.NewCoordinator(p, a.cfg.Source.BusinessID, a.cfg.Source.Limit, a.log)
	snap, err := coord.Refresh(ctx, state, now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching ledger lines: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return snap, subcommands.ExitSuccess
}
