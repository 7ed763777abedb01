package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/outbreak-sim/outbreak-sim/sim"
)

var (
	// CLI flags for the model parameters
	population       float64 // Total population N
	initialInfected  float64 // Infected individuals at day 0
	initialRecovered float64 // Recovered individuals at day 0
	beta             float64 // Transmission rate per day
	gamma0           float64 // Baseline recovery rate per day
	capacity         float64 // Healthcare capacity (active-case threshold)
	dt               float64 // Step size in days
	days             int     // Number of steps to simulate
	saturationName   string  // Saturation policy selector
	betaTolerance    float64 // BetaRequired search tolerance
	logLevel         string  // Log verbosity level

	// Output flags
	seriesOut  string // Path for the per-day series export
	jsonOutput bool   // Emit the metrics result as JSON instead of text
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "outbreak-sim",
	Short: "Capacity-constrained SIR epidemic simulator",
}

// saturationPolicy resolves the --saturation flag to a policy value.
func saturationPolicy(name string) (sim.SaturationPolicy, bool) {
	switch name {
	case "throughput-capped":
		return sim.ThroughputCapped, true
	case "step-down":
		return sim.StepDown, true
	case "unconstrained":
		return sim.Unconstrained, true
	default:
		return nil, false
	}
}

// paramsFromFlags assembles the Params a single `run` invocation describes.
func paramsFromFlags() (sim.Params, error) {
	policy, ok := saturationPolicy(saturationName)
	if !ok {
		return sim.Params{}, &sim.ParameterError{Field: "Saturation", Reason: "unknown policy " + saturationName}
	}
	p := sim.Params{
		N:          population,
		Beta:       beta,
		Gamma0:     gamma0,
		Capacity:   capacity,
		DT:         dt,
		Steps:      days,
		S0:         population - initialInfected - initialRecovered,
		I0:         initialInfected,
		R0:         initialRecovered,
		Saturation: policy,
	}
	return p, p.Validate()
}

// runCmd simulates a single scenario from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single scenario and report its metrics",
	Run: func(cmd *cobra.Command, args []string) {
		setUpLogging()

		p, err := paramsFromFlags()
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		logrus.Infof("Starting run: N=%.0f beta=%.3f gamma0=%.4f C=%.0f days=%d (R0=%.2f)",
			p.N, p.Beta, p.Gamma0, p.Capacity, p.Steps, p.BasicReproduction())

		runner := sim.NewScenarioRunner(0)
		report, err := runner.Run(context.Background(), sim.Scenario{
			Label:         "cli",
			Params:        p,
			BetaTolerance: betaTolerance,
		})
		if err != nil {
			logrus.Fatalf("Run failed: %v", err)
		}

		if seriesOut != "" {
			if err := writeSeriesFile(seriesOut, report.Series); err != nil {
				logrus.Fatalf("Failed to write series: %v", err)
			}
			logrus.Infof("Series written to %s", seriesOut)
		}

		if jsonOutput {
			printResultJSON(os.Stdout, report)
		} else {
			printResultText(os.Stdout, report)
		}
	},
}

// setUpLogging applies the --log flag to the global logger.
func setUpLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Float64Var(&population, "population", 100000, "Total population N")
	runCmd.Flags().Float64Var(&initialInfected, "initial-infected", 100, "Infected individuals at day 0")
	runCmd.Flags().Float64Var(&initialRecovered, "initial-recovered", 0, "Recovered individuals at day 0")
	runCmd.Flags().Float64Var(&beta, "beta", 0.3, "Transmission rate per day")
	runCmd.Flags().Float64Var(&gamma0, "gamma", 1.0/14.0, "Baseline recovery rate per day (1/infectious period)")
	runCmd.Flags().Float64Var(&capacity, "capacity", 500, "Healthcare capacity as an active-case threshold")
	runCmd.Flags().Float64Var(&dt, "dt", 1, "Step size in days")
	runCmd.Flags().IntVar(&days, "days", 150, "Number of days to simulate")
	runCmd.Flags().StringVar(&saturationName, "saturation", "throughput-capped", "Saturation policy (throughput-capped, step-down, unconstrained)")
	runCmd.Flags().Float64Var(&betaTolerance, "beta-tolerance", sim.DefaultBetaTolerance, "Tolerance for the required-beta search, in beta units")
	runCmd.Flags().StringVar(&logLevel, "log", "warning", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&seriesOut, "series-out", "", "Write the per-day series to this path (.csv or .json)")
	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the metrics result as JSON")

	rootCmd.AddCommand(runCmd)
}
