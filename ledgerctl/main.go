package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/ledgerview/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Performs shell completion when the shell asks for it, and returns otherwise.
	cmd.Completion().Complete("ledgerctl")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
