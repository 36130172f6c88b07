// Package cmd implements the ledgerctl command line application.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ledgerview/config"
	"github.com/etnz/ledgerview/date"
	"github.com/etnz/ledgerview/logger"
	"github.com/etnz/ledgerview/source"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&resolveCmd{}, "filters")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&balanceCmd{}, "reports")
	c.Register(&rollupCmd{}, "reports")

	c.Register(&serveCmd{}, "server")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a YAML configuration file")
var envFile = flag.String("env", ".env", "Path to a .env file, ignored when missing")
var ledgerFile = flag.String("f", "", "Read ledger lines from this JSON file instead of the ledger service")
var logLevel = flag.String("log-level", "", "Log level (debug, info, warn, error), overrides the configuration")

// app is what every command needs: the configuration and a logger.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

// loadApp reads the configuration with the global flags applied.
func loadApp() (*app, error) {
	cfg, err := config.Load(*configFile, *envFile)
	if err != nil {
		return nil, err
	}
	if *ledgerFile != "" {
		cfg.Source.File = *ledgerFile
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log}, nil
}

// provider opens the configured ledger source and returns the bounds of its
// data, if any: the configured demo bounds, or those of a ledger file.
func (a *app) provider() (source.Provider, date.Range, error) {
	p, err := source.Open(a.cfg, a.log)
	if err != nil {
		return nil, date.Range{}, err
	}
	if bounds, ok, _ := a.cfg.Bounds(); ok {
		return p, bounds, nil
	}
	if f, ok := p.(*source.File); ok {
		if bounds, ok := f.Bounds(); ok {
			return p, bounds, nil
		}
	}
	return p, date.Range{}, nil
}

// boot is the common prologue of commands: it loads the app or reports the
// error on stderr.
func boot(ctx context.Context) (*app, context.Context, subcommands.ExitStatus) {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, ctx, subcommands.ExitUsageError
	}
	return a, logger.WithContext(ctx, a.log), subcommands.ExitSuccess
}
