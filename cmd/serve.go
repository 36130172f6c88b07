package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/ledgerview/server"
	"github.com/google/subcommands"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve filter resolution and analytics over HTTP" }
func (*serveCmd) Usage() string {
	return `ledgerctl serve [-addr <host:port>]

  Serves:
    GET /api/filters?<query>    canonical query and resolved dates
    GET /api/analytics?<query>  analysis of the filtered ledger lines
    GET /healthz
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address, overrides the configuration")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, status := boot(ctx)
	if a == nil {
		return status
	}
	if c.addr != "" {
		a.cfg.Server.Addr = c.addr
	}
	p, bounds, err := a.provider()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger source: %v\n", err)
		return subcommands.ExitFailure
	}

	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           server.New(p, a.cfg, a.log, server.WithBounds(bounds)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	a.log.Info().Str("addr", srv.Addr).Msg("serving")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.log.Error().Err(err).Msg("server failed")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
