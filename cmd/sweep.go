package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/outbreak-sim/outbreak-sim/sim"
)

var (
	sweepFrom   float64
	sweepTo     float64
	sweepPoints int
)

// sweepCmd simulates a linear range of transmission rates against a fixed
// parameter set, reporting how the crisis responds to each reduction step.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep the transmission rate and report crisis days per point",
	Run: func(cmd *cobra.Command, args []string) {
		setUpLogging()

		if sweepPoints < 2 {
			logrus.Fatalf("Sweep needs at least 2 points, got %d", sweepPoints)
		}
		if sweepTo < sweepFrom {
			logrus.Fatalf("Sweep range is inverted: from=%.4f to=%.4f", sweepFrom, sweepTo)
		}

		base, err := paramsFromFlags()
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		scenarios := make([]sim.Scenario, sweepPoints)
		step := (sweepTo - sweepFrom) / float64(sweepPoints-1)
		for i := range scenarios {
			b := sweepFrom + float64(i)*step
			scenarios[i] = sim.Scenario{
				Label:  fmt.Sprintf("beta=%.4f", b),
				Params: base.WithBeta(b),
			}
		}

		runner := sim.NewScenarioRunner(batchWorkers)
		reports, err := runner.RunAll(context.Background(), scenarios)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "BETA\tR0\tCRISIS DAYS\tPEAK\tATTACK RATE")
		for i, report := range reports {
			res := report.Result
			fmt.Fprintf(tw, "%.4f\t%.2f\t%d\t%.0f\t%.4f\n",
				sweepFrom+float64(i)*step, res.R0, res.CrisisDays, res.PeakInfected, res.AttackRate)
		}
		tw.Flush()
	},
}

func init() {
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.1, "Lowest transmission rate in the sweep")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0.4, "Highest transmission rate in the sweep")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 7, "Number of evenly spaced sweep points")
	sweepCmd.Flags().IntVar(&batchWorkers, "workers", 4, "Maximum scenarios simulated concurrently")

	sweepCmd.Flags().Float64Var(&population, "population", 100000, "Total population N")
	sweepCmd.Flags().Float64Var(&initialInfected, "initial-infected", 100, "Infected individuals at day 0")
	sweepCmd.Flags().Float64Var(&initialRecovered, "initial-recovered", 0, "Recovered individuals at day 0")
	sweepCmd.Flags().Float64Var(&beta, "beta", 0.3, "Baseline transmission rate (used for validation only)")
	sweepCmd.Flags().Float64Var(&gamma0, "gamma", 1.0/14.0, "Baseline recovery rate per day")
	sweepCmd.Flags().Float64Var(&capacity, "capacity", 500, "Healthcare capacity as an active-case threshold")
	sweepCmd.Flags().Float64Var(&dt, "dt", 1, "Step size in days")
	sweepCmd.Flags().IntVar(&days, "days", 150, "Number of days to simulate")
	sweepCmd.Flags().StringVar(&saturationName, "saturation", "throughput-capped", "Saturation policy (throughput-capped, step-down, unconstrained)")
	sweepCmd.Flags().StringVar(&logLevel, "log", "warning", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(sweepCmd)
}
