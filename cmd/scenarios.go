package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/outbreak-sim/outbreak-sim/sim"
)

var (
	batchConfigPath string
	batchWorkers    int
)

// scenariosCmd runs a batch of scenarios defined in a YAML file and prints a
// comparison table.
var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Run a YAML-defined scenario batch and print a comparison table",
	Run: func(cmd *cobra.Command, args []string) {
		setUpLogging()

		cfg, err := LoadBatchConfig(batchConfigPath)
		if err != nil {
			logrus.Fatalf("Failed to load batch config: %v", err)
		}
		scenarios, err := cfg.BuildScenarios()
		if err != nil {
			logrus.Fatalf("Invalid scenario batch: %v", err)
		}

		logrus.Infof("Running %d scenarios with %d workers", len(scenarios), batchWorkers)

		runner := sim.NewScenarioRunner(batchWorkers)
		reports, err := runner.RunAll(context.Background(), scenarios)
		if err != nil {
			logrus.Fatalf("Scenario batch failed: %v", err)
		}

		printSummaryTable(os.Stdout, reports)
	},
}

func init() {
	scenariosCmd.Flags().StringVar(&batchConfigPath, "config", "", "Path to the scenario batch YAML file")
	scenariosCmd.Flags().IntVar(&batchWorkers, "workers", 4, "Maximum scenarios simulated concurrently")
	scenariosCmd.Flags().StringVar(&logLevel, "log", "warning", "Log level (trace, debug, info, warn, error, fatal, panic)")
	_ = scenariosCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(scenariosCmd)
}
