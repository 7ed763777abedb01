package sim

import (
	"context"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultBetaTolerance is the BetaRequired search tolerance, in beta units.
	DefaultBetaTolerance = 1e-4

	// maxSearchIterations bounds the BetaRequired bisection. Exhausting the
	// budget degrades to an approximate answer, it never fails.
	maxSearchIterations = 64
)

// Result aggregates the derived outputs of one scenario for final reporting.
// Computed once from completed series, then immutable. The three policy
// answers come first; the remaining fields are descriptive curve statistics.
type Result struct {
	CrisisDays        int     `json:"crisis_days"`        // days with I strictly above capacity
	BetaRequired      float64 `json:"beta_required"`      // largest beta' <= beta with zero crisis days
	BreachUnavoidable bool    `json:"breach_unavoidable"` // capacity breached even at beta' = 0
	Approximate       bool    `json:"approximate"`        // search hit its iteration budget before tolerance
	AttackRateDelta   float64 `json:"attack_rate_delta"`  // extra attack rate caused by saturation

	PeakInfected   float64 `json:"peak_infected"`   // highest simultaneous active cases
	PeakDay        float64 `json:"peak_day"`        // day of the peak
	EndDay         float64 `json:"end_day"`         // first day I < 1, or the horizon
	AttackRate     float64 `json:"attack_rate"`     // fraction ever infected, (N - S_final) / N
	RInfinity      float64 `json:"r_infinity"`      // absolute count infected and resolved by the horizon
	R0             float64 `json:"r0"`              // beta / gamma0
	OverloadFactor float64 `json:"overload_factor"` // peak / max(1, capacity)
	FinalCheck     float64 `json:"final_check"`     // S+I+R at the horizon, should equal N
}

// ComputeResult derives the full Result for a scenario from its constrained
// baseline series and the unconstrained counterfactual series. The
// BetaRequired search re-runs the integrator, so a context is required; betaTol
// <= 0 selects DefaultBetaTolerance.
func ComputeResult(ctx context.Context, p Params, baseline, counterfactual TimeSeries, betaTol float64) (Result, error) {
	betaRequired, unavoidable, approximate, err := BetaRequired(ctx, p, baseline, betaTol)
	if err != nil {
		return Result{}, err
	}

	peak, peakDay := baseline.PeakInfected()
	final := baseline.Final()

	overloadDivisor := p.Capacity
	if overloadDivisor < 1 {
		overloadDivisor = 1
	}

	return Result{
		CrisisDays:        baseline.CrisisDays(p.Capacity),
		BetaRequired:      betaRequired,
		BreachUnavoidable: unavoidable,
		Approximate:       approximate,
		AttackRateDelta:   baseline.AttackRate(p.N) - counterfactual.AttackRate(p.N),
		PeakInfected:      peak,
		PeakDay:           peakDay,
		EndDay:            baseline.EndDay(),
		AttackRate:        baseline.AttackRate(p.N),
		RInfinity:         final.R,
		R0:                p.BasicReproduction(),
		OverloadFactor:    peak / overloadDivisor,
		FinalCheck:        final.S + final.I + final.R,
	}, nil
}

// BetaRequired bisects over beta' in [0, p.Beta] for the supremum beta' whose
// re-run never breaches capacity. Lowering beta cannot raise the infection
// peak in this model family, so the predicate is monotone and bisection is
// sound. Returns the baseline beta unchanged when the baseline never
// breaches, and (0, unavoidable=true) when even beta' = 0 breaches (e.g. the
// run starts over capacity).
func BetaRequired(ctx context.Context, p Params, baseline TimeSeries, tol float64) (beta float64, unavoidable, approximate bool, err error) {
	if tol <= 0 {
		tol = DefaultBetaTolerance
	}

	if baseline.CrisisDays(p.Capacity) == 0 {
		return p.Beta, false, false, nil
	}

	probe := func(beta float64) (breached bool, err error) {
		series, err := NewIntegrator(p.WithBeta(beta)).Run(ctx)
		if err != nil {
			return false, err
		}
		return series.CrisisDays(p.Capacity) > 0, nil
	}

	breached, err := probe(0)
	if err != nil {
		return 0, false, false, err
	}
	if breached {
		return 0, true, false, nil
	}

	// Invariant: lo never breaches, hi always does.
	lo, hi := 0.0, p.Beta
	iterations := 0
	for hi-lo > tol && iterations < maxSearchIterations {
		mid := lo + (hi-lo)/2
		breached, err := probe(mid)
		if err != nil {
			return 0, false, false, err
		}
		if breached {
			hi = mid
		} else {
			lo = mid
		}
		iterations++
	}

	if hi-lo > tol {
		logrus.Warnf("beta search: iteration budget (%d) exhausted at interval width %.3g, returning approximate estimate %.6f",
			maxSearchIterations, hi-lo, lo)
		return lo, false, true, nil
	}
	return lo, false, false, nil
}
