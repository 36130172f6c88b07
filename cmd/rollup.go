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

// rollupCmd holds the flags for the 'rollup' subcommand.
type rollupCmd struct {
	queryFlags
	by  string
	net bool
	all bool
}

func (*rollupCmd) Name() string     { return "rollup" }
func (*rollupCmd) Synopsis() string { return "display ledger totals per account or vendor" }
func (*rollupCmd) Usage() string {
	return `ledgerctl rollup -by account|vendor [-net] [-all] [filter flags] [query]

  Groups the filtered ledger lines by account or by normalized vendor and
  displays the number of lines and the amount spent per group, largest
  first. With -net, groups total their signed amounts instead. With -all,
  the row filters are ignored and every line of the range is grouped.
`
}

func (c *rollupCmd) SetFlags(f *flag.FlagSet) {
	c.queryFlags.SetFlags(f)
	f.StringVar(&c.by, "by", "account", "Dimension: account or vendor")
	f.BoolVar(&c.net, "net", false, "Total signed amounts instead of spend")
	f.BoolVar(&c.all, "all", false, "Ignore the row filters")
}

func (c *rollupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.by != "account" && c.by != "vendor" {
		fmt.Fprintf(os.Stderr, "Error: -by must be account or vendor, got %q\n", c.by)
		return subcommands.ExitUsageError
	}
	state, err := c.state(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	snap, status := fetch(ctx, state)
	if snap == nil {
		return status
	}

	opts := ledgerview.AnalyzeOptions{Totals: ledgerview.SpendTotals, UnfilteredRollups: c.all}
	if c.net {
		opts.Totals = ledgerview.NetTotals
	}
	a := snap.Analyze(opts)
	rows, title, column := a.Accounts, "Accounts", "Account"
	if c.by == "vendor" {
		rows, title, column = a.Vendors, "Vendors", "Vendor"
	}
	title = fmt.Sprintf("%s, %s, %s", title, opts.Totals, snap.Range())
	printMarkdown(renderer.RollupMarkdown(title, column, rows, renderer.Options{Currency: c.currency}))
	return subcommands.ExitSuccess
}
