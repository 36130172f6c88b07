package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/etnz/ledgerview"
	"github.com/etnz/ledgerview/date"
	"github.com/google/subcommands"
)

// resolveCmd holds the flags for the 'resolve' subcommand.
type resolveCmd struct {
	queryFlags
}

func (*resolveCmd) Name() string     { return "resolve" }
func (*resolveCmd) Synopsis() string { return "resolve a filter query into its canonical form and dates" }
func (*resolveCmd) Usage() string {
	return `ledgerctl resolve [filter flags] [query]

  Prints the canonical query string of the filters, the date range they
  resolve to today, and the correction applied when the range leaves the
  configured demo bounds. Nothing is fetched.

  Example: ledgerctl resolve 'window=7&account=Checking'
`
}

func (c *resolveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := c.state(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	a, _, status := boot(ctx)
	if a == nil {
		return status
	}
	bounds, _, _ := a.cfg.Bounds()
	if err := writeResolution(os.Stdout, state, bounds, a.cfg.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// writeResolution prints how state resolves at now. It returns the range
// validation error, if any, after printing.
func writeResolution(w io.Writer, state ledgerview.FilterState, bounds date.Range, now time.Time) error {
	state = throughToday(state, now)
	res := ledgerview.ResolveDateRange(state, now)
	fmt.Fprintf(w, "query:  %s\n", state.Encode())
	switch sel := state.Selection().(type) {
	case ledgerview.Preset:
		fmt.Fprintf(w, "window: %s\n", sel.Window)
	case ledgerview.Explicit:
		fmt.Fprintf(w, "window: %s (explicit dates)\n", ledgerview.WindowCustom)
	}
	fmt.Fprintf(w, "range:  %s (%d days)\n", res.Range(), res.Range().Days())
	if err := ledgerview.ValidateRange(res.Range()); err != nil {
		return err
	}
	if clamped, notice := clampNotice(state, bounds, now); notice != "" {
		fmt.Fprintf(w, "note:   %s\n", notice)
		fmt.Fprintf(w, "query:  %s\n", clamped.Encode())
	}
	return nil
}
