package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/ledgerview"
	"github.com/etnz/ledgerview/renderer"
	"github.com/google/subcommands"
)

// balanceCmd holds the flags for the 'balance' subcommand.
type balanceCmd struct {
	queryFlags
	anchor     string
	highlights string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display the running balance of the filtered ledger lines" }
func (*balanceCmd) Usage() string {
	return `ledgerctl balance [filter flags] [-anchor <id>] [-highlight <id,...>] [query]

  Lists the filtered ledger lines in canonical order, oldest first, with
  the running balance after each line.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	c.queryFlags.SetFlags(f)
	f.StringVar(&c.anchor, "anchor", "", "Source event id of the line to mark")
	f.StringVar(&c.highlights, "highlight", "", "Comma separated source event ids of lines to highlight")
}

func (c *balanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := c.state(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.anchor != "" {
		state.AnchorSourceEventID = c.anchor
	}
	if c.highlights != "" {
		state.HighlightSourceEventIDs = strings.Split(c.highlights, ",")
	}
	snap, status := fetch(ctx, state)
	if snap == nil {
		return status
	}
	printMarkdown(renderer.BalanceMarkdown(snap.Analyze(ledgerview.AnalyzeOptions{}), renderer.Options{Currency: c.currency}))
	return subcommands.ExitSuccess
}
