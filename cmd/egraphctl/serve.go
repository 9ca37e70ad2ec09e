package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gitrdm/eqsat/eqsat"
	"github.com/gitrdm/eqsat/eqsat/metrics"
)

// shutdownGrace bounds how long serve waits for in-flight /metrics scrapes
// to finish once a shutdown signal arrives.
const shutdownGrace = 5 * time.Second

// ServeCommand runs one saturation with logging and Prometheus
// instrumentation wired in, then serves the resulting counters over
// /metrics until interrupted. This is a demonstration of the optional
// metrics hook (eqsat.WithMetrics) — the engine itself never starts a
// server or blocks; this command's Run does, as ambient CLI sugar only.
type ServeCommand struct {
	UI io.Writer
}

func (c *ServeCommand) Help() string {
	return strings.TrimSpace(`
Usage: egraphctl serve [options]

  Builds an e-graph with Prometheus instrumentation enabled and serves the
  resulting counters over HTTP at /metrics.

Options:

  -expr=<expr>    Arithmetic expression, e.g. "x * 2 / 2" (required)
  -rules=<path>   Rule file, one "lhs => rhs" line per rule (optional)
  -addr=<addr>    Address to listen on (default ":8080")
`)
}

func (c *ServeCommand) Synopsis() string {
	return "Saturate once and serve its metrics over HTTP"
}

func (c *ServeCommand) Run(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	expr := fs.String("expr", "", "arithmetic expression to evaluate")
	rulesPath := fs.String("rules", "", "path to a rule file")
	addr := fs.String("addr", ":8080", "address to listen on")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *expr == "" {
		fmt.Fprintln(c.UI, "egraphctl serve: -expr is required")
		return 1
	}

	root, err := parseExpr(*expr)
	if err != nil {
		fmt.Fprintf(c.UI, "egraphctl serve: parsing expression: %v\n", err)
		return 1
	}
	rules, err := loadRules(*rulesPath)
	if err != nil {
		fmt.Fprintf(c.UI, "egraphctl serve: %v\n", err)
		return 1
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "egraphctl",
		Level: hclog.Debug,
	})
	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry)

	graph, err := eqsat.NewEGraph(rules, root,
		eqsat.WithLogger(logger),
		eqsat.WithMetrics(recorder),
	)
	if err != nil {
		fmt.Fprintf(c.UI, "egraphctl serve: %v\n", err)
		return 1
	}

	fmt.Fprintf(c.UI, "saturated %q; %d nodes in e-class, %d total nodes\n",
		root, len(graph.EquivalentTo(root)), len(graph.AllNodes()))
	fmt.Fprintf(c.UI, "serving metrics on %s/metrics\n", *addr)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: *addr, Handler: mux}

	// Cancel on SIGINT/SIGTERM and drain in-flight scrapes via
	// srv.Shutdown's own context, rather than killing connections outright.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(c.UI, "egraphctl serve: %v\n", err)
			return 1
		}
	case <-ctx.Done():
		logger.Debug("eqsat: serve: shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(c.UI, "egraphctl serve: shutdown: %v\n", err)
			return 1
		}
	}
	return 0
}
