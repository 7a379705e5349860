package main

import (
	"context"
	"fmt"
	"time"

	"restecho/internal/client"
	"restecho/internal/scenario"

	"github.com/spf13/cobra"
)

var (
	clientBaseURL  string
	clientScenario string
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Run the client call sequence against a server",
	Long: `Run the fixed client call sequence against an already-running restecho
server. Use --scenario to load a custom sequence from a TOML or YAML file
instead of the built-in one.`,
	RunE: runClient,
}

func init() {
	rootCmd.AddCommand(clientCmd)

	clientCmd.Flags().StringVar(&clientBaseURL, "base-url", "", "Server base URL (overrides config)")
	clientCmd.Flags().StringVar(&clientScenario, "scenario", "", "Path to a scenario file (.toml, .yaml)")
}

func runClient(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if clientBaseURL != "" {
		cfg.Client.BaseURL = clientBaseURL
	}

	sc := scenario.Default()
	if clientScenario != "" {
		sc, err = scenario.Load(clientScenario)
		if err != nil {
			return err
		}
	}

	logger := newLogger(cfg)

	c := client.New(client.Options{
		BaseURL: cfg.Client.BaseURL,
		Timeout: time.Duration(cfg.Client.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	runner := scenario.NewRunner(c, logger)
	report := runner.Run(context.Background(), sc)

	if !report.OK() {
		return fmt.Errorf("scenario %s: %d of %d steps failed",
			report.Scenario, report.Failed(), len(report.Results))
	}

	fmt.Printf("Scenario %s: all %d steps passed\n", report.Scenario, len(report.Results))
	return nil
}
