// Package demo orchestrates the single-process demonstration: server
// role on a background goroutine, client role on the caller's
// goroutine, cooperative shutdown in between.
package demo

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"restecho/internal/api"
	"restecho/internal/client"
	"restecho/internal/config"
	"restecho/internal/logging"
	"restecho/internal/scenario"
)

const (
	// readyTimeout bounds the wait for the listener to bind.
	readyTimeout = 5 * time.Second

	// shutdownTimeout bounds the cooperative stop. The original demo
	// joined the server thread with no deadline; this one gives up.
	shutdownTimeout = 10 * time.Second
)

// Demo owns the server and the scenario to run against it.
type Demo struct {
	server   *api.Server
	scenario scenario.Scenario
	cfg      *config.Config
	logger   *logging.Logger

	wg        sync.WaitGroup
	serverErr chan error
}

// New creates a demo for the given configuration and scenario.
func New(cfg *config.Config, sc scenario.Scenario, logger *logging.Logger) *Demo {
	return &Demo{
		server:    api.NewServer(cfg.Server, logger),
		scenario:  sc,
		cfg:       cfg,
		logger:    logger,
		serverErr: make(chan error, 1),
	}
}

// Run starts the server, waits for readiness, executes the scenario,
// and stops the server. The report is returned even when some steps
// failed; the error covers lifecycle problems only.
func (d *Demo) Run(ctx context.Context) (*scenario.Report, error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.serverErr <- d.server.Start()
	}()

	// An explicit readiness signal replaces the fixed startup sleep:
	// once Ready closes, the port is bound and accepting connections.
	select {
	case <-d.server.Ready():
	case err := <-d.serverErr:
		d.wg.Wait()
		return nil, fmt.Errorf("server failed to start: %w", err)
	case <-time.After(readyTimeout):
		return nil, fmt.Errorf("server not ready after %s", readyTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	c := client.New(client.Options{
		BaseURL: baseURLFor(d.server.Addr()),
		Timeout: time.Duration(d.cfg.Client.TimeoutSec) * time.Second,
		Logger:  d.logger,
	})

	runner := scenario.NewRunner(c, d.logger)
	report := runner.Run(ctx, d.scenario)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := d.server.Shutdown(shutdownCtx); err != nil {
		return report, fmt.Errorf("shutdown: %w", err)
	}

	d.wg.Wait()
	if err := <-d.serverErr; err != nil {
		return report, fmt.Errorf("server: %w", err)
	}

	return report, nil
}

// baseURLFor turns a bound listen address into a dialable base URL.
// Wildcard binds are rewritten to loopback.
func baseURLFor(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}
