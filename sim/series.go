package sim

import "gonum.org/v1/gonum/floats"

// StepRecord is one row of a simulation run: the compartment state after the
// step at time T, plus the effective recovery rate the step was computed with.
// Plain serializable data, no behavior.
type StepRecord struct {
	T        float64 `json:"t"`
	S        float64 `json:"s"`
	I        float64 `json:"i"`
	R        float64 `json:"r"`
	GammaEff float64 `json:"gamma_eff"`
}

// TimeSeries is the full history of one run, index 0 holding the initial
// condition. It has exactly Steps+1 records and is read-only once the
// integrator returns it.
type TimeSeries []StepRecord

// Infected extracts the I column.
func (ts TimeSeries) Infected() []float64 {
	out := make([]float64, len(ts))
	for i, rec := range ts {
		out[i] = rec.I
	}
	return out
}

// Final returns the last record. Panics on an empty series, which the
// integrator never produces.
func (ts TimeSeries) Final() StepRecord {
	return ts[len(ts)-1]
}

// PeakInfected returns the maximum active-case count and the day it occurred.
// For a tie the earliest day wins.
func (ts TimeSeries) PeakInfected() (peak, day float64) {
	if len(ts) == 0 {
		return 0, 0
	}
	idx := floats.MaxIdx(ts.Infected())
	return ts[idx].I, ts[idx].T
}

// CrisisDays counts the records where active cases strictly exceed capacity.
// I == capacity is not a breach.
func (ts TimeSeries) CrisisDays(capacity float64) int {
	days := 0
	for _, rec := range ts {
		if rec.I > capacity {
			days++
		}
	}
	return days
}

// AttackRate returns the fraction of the population ever infected by the end
// of the horizon, (N - S_final) / N. Counting departures from S rather than
// arrivals in R keeps the measure honest on horizons where a slowed epidemic
// has infected people who have not yet resolved; for a resolved run the two
// definitions coincide.
func (ts TimeSeries) AttackRate(n float64) float64 {
	if len(ts) == 0 || n == 0 {
		return 0
	}
	return (n - ts.Final().S) / n
}

// RecoveredFraction returns R_final / N, the fraction infected and resolved
// by the end of the horizon.
func (ts TimeSeries) RecoveredFraction(n float64) float64 {
	if len(ts) == 0 || n == 0 {
		return 0
	}
	return ts.Final().R / n
}

// EndDay returns the first day active cases dropped below one whole case, or
// the horizon if the outbreak was still ongoing at the end of the run.
func (ts TimeSeries) EndDay() float64 {
	for _, rec := range ts {
		if rec.I < 1 {
			return rec.T
		}
	}
	return ts.Final().T
}
