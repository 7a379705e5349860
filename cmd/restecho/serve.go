package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restecho/internal/api"
	"restecho/internal/logging"

	"github.com/spf13/cobra"
)

var (
	serveBind string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP echo server",
	Long: `Start the restecho HTTP server in the foreground. The server exposes
verb-specific JSON echo endpoints under /api/data and runs until it
receives SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveBind, "bind", "", "Address to bind to (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if serveBind != "" {
		cfg.Server.Bind = serveBind
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	logger := newLogger(cfg)
	server := api.NewServer(cfg.Server, logger)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error", logging.Fields{"error": err.Error()})
			return err
		}
	case sig := <-shutdown:
		logger.Info("Received shutdown signal", logging.Fields{"signal": sig.String()})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during shutdown", logging.Fields{"error": err.Error()})
			return err
		}
	}

	return nil
}
