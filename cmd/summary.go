package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ledgerview"
	"github.com/etnz/ledgerview/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	queryFlags
	top int
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display inflow, outflow and net of the filtered ledger lines" }
func (*summaryCmd) Usage() string {
	return `ledgerctl summary [filter flags] [-top <n>] [query]

  Displays the totals of the filtered ledger lines with their trace
  fingerprints, the top accounts and vendors, and the monthly series.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	c.queryFlags.SetFlags(f)
	f.IntVar(&c.top, "top", 10, "Number of accounts and vendors to list, 0 for all")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := c.state(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	snap, status := fetch(ctx, state)
	if snap == nil {
		return status
	}
	a := snap.Analyze(ledgerview.AnalyzeOptions{})
	printMarkdown(renderer.SummaryMarkdown(a, snap.Range(), renderer.Options{Currency: c.currency, Top: c.top}))
	return subcommands.ExitSuccess
}
