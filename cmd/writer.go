package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/outbreak-sim/outbreak-sim/sim"
)

// writeSeriesFile exports a time series to path, picking the format from the
// extension (.json gets a JSON array, anything else CSV).
func writeSeriesFile(path string, series sim.TimeSeries) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create series file: %w", err)
	}
	defer file.Close()

	if strings.HasSuffix(path, ".json") {
		return writeSeriesJSON(file, series)
	}
	return writeSeriesCSV(file, series)
}

func writeSeriesCSV(w io.Writer, series sim.TimeSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "susceptible", "infected", "recovered", "gamma_eff"}); err != nil {
		return err
	}
	for _, rec := range series {
		row := []string{
			strconv.FormatFloat(rec.T, 'f', -1, 64),
			strconv.FormatFloat(rec.S, 'f', 4, 64),
			strconv.FormatFloat(rec.I, 'f', 4, 64),
			strconv.FormatFloat(rec.R, 'f', 4, 64),
			strconv.FormatFloat(rec.GammaEff, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeSeriesJSON(w io.Writer, series sim.TimeSeries) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(series)
}

// printResultText displays one report's metrics the way the summary table
// formats a batch, but vertically.
func printResultText(w io.Writer, report *sim.RunReport) {
	res := report.Result
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Run ID              : %s\n", report.RunID)
	fmt.Fprintf(w, "R0                  : %.2f\n", res.R0)
	fmt.Fprintf(w, "Crisis days         : %d\n", res.CrisisDays)
	fmt.Fprintf(w, "Peak infected       : %.1f (day %.0f)\n", res.PeakInfected, res.PeakDay)
	fmt.Fprintf(w, "Overload factor     : %.2f\n", res.OverloadFactor)
	fmt.Fprintf(w, "Attack rate         : %.4f\n", res.AttackRate)
	fmt.Fprintf(w, "Attack rate delta   : %.4f\n", res.AttackRateDelta)
	if res.BreachUnavoidable {
		fmt.Fprintf(w, "Beta required       : none (breach unavoidable at beta=0)\n")
	} else {
		approx := ""
		if res.Approximate {
			approx = " (approximate)"
		}
		fmt.Fprintf(w, "Beta required       : %.6f%s\n", res.BetaRequired, approx)
	}
	fmt.Fprintf(w, "Outbreak end day    : %.0f\n", res.EndDay)
	fmt.Fprintf(w, "Conservation check  : %.2f\n", res.FinalCheck)
}

func printResultJSON(w io.Writer, report *sim.RunReport) {
	out := struct {
		RunID  string     `json:"run_id"`
		Label  string     `json:"label"`
		Result sim.Result `json:"result"`
	}{report.RunID, report.Label, report.Result}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
	}
}

// printSummaryTable renders one row per scenario, matching the batch report
// cycle's comparison view.
func printSummaryTable(w io.Writer, reports []*sim.RunReport) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LABEL\tR0\tPEAK\tPEAK DAY\tCRISIS DAYS\tATTACK RATE\tDELTA\tOVERLOAD\tBETA REQUIRED")
	for _, report := range reports {
		res := report.Result
		betaReq := fmt.Sprintf("%.4f", res.BetaRequired)
		if res.BreachUnavoidable {
			betaReq = "unavoidable"
		} else if res.Approximate {
			betaReq += "~"
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%.0f\t%.0f\t%d\t%.4f\t%.4f\t%.2f\t%s\n",
			report.Label, res.R0, res.PeakInfected, res.PeakDay, res.CrisisDays,
			res.AttackRate, res.AttackRateDelta, res.OverloadFactor, betaReq)
	}
	tw.Flush()
}
