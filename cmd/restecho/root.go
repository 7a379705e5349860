package main

import (
	"restecho/internal/config"
	"restecho/internal/logging"
	"restecho/internal/version"

	"github.com/spf13/cobra"
)

var (
	configRoot string
	logFormat  string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "restecho",
	Short: "restecho - a self-exercising JSON echo service",
	Long: `restecho is a demonstration program: an HTTP server exposing verb-specific
JSON echo handlers behind a CORS interceptor, and an HTTP client that drives
a fixed call sequence against it. Run both roles in one process with "run",
or each role separately with "serve" and "client".`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("restecho version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configRoot, "config-root", ".",
		"Directory containing the optional .restecho/config.json")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Log format: human or json (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn or error (overrides config)")
}

// loadConfig loads the config file and applies CLI overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configRoot)
	if err != nil {
		return nil, err
	}

	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	return cfg, nil
}

// newLogger builds the process logger from config.
func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.ParseFormat(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})
}
