package main

import (
	"context"
	"fmt"

	"restecho/internal/demo"
	"restecho/internal/scenario"

	"github.com/spf13/cobra"
)

var runScenario string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run server and client in one process",
	Long: `Run the full demonstration: start the HTTP server on a background
goroutine, wait for it to signal readiness, execute the client call
sequence against it, then shut the server down and exit. The exit code
reflects whether every step passed.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runScenario, "scenario", "", "Path to a scenario file (.toml, .yaml)")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sc := scenario.Default()
	if runScenario != "" {
		sc, err = scenario.Load(runScenario)
		if err != nil {
			return err
		}
	}

	logger := newLogger(cfg)

	d := demo.New(cfg, sc, logger)
	report, err := d.Run(context.Background())
	if err != nil {
		return err
	}

	if !report.OK() {
		return fmt.Errorf("scenario %s: %d of %d steps failed",
			report.Scenario, report.Failed(), len(report.Results))
	}

	fmt.Printf("Scenario %s: all %d steps passed\n", report.Scenario, len(report.Results))
	return nil
}
