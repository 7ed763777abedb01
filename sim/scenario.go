package sim

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Scenario names one parameter set to simulate and report on.
type Scenario struct {
	Label  string
	Params Params

	// BetaTolerance overrides the BetaRequired search tolerance.
	// Zero selects DefaultBetaTolerance.
	BetaTolerance float64
}

// RunReport bundles everything one scenario produced: the baseline series,
// the unconstrained counterfactual series, and the derived Result. The report
// owns both series; nothing else holds a reference to them.
type RunReport struct {
	RunID          string
	Label          string
	Params         Params
	Series         TimeSeries
	Counterfactual TimeSeries
	Result         Result
}

// ScenarioRunner orchestrates the integrator runs one reporting cycle needs.
// It holds no state between scenarios; every invocation starts from the
// scenario's own Params copy.
type ScenarioRunner struct {
	// Workers caps concurrent scenarios in RunAll. Zero or negative means
	// no limit.
	Workers int
}

// NewScenarioRunner returns a runner that executes up to workers scenarios
// concurrently.
func NewScenarioRunner(workers int) *ScenarioRunner {
	return &ScenarioRunner{Workers: workers}
}

// Run executes one scenario: the constrained baseline and the unconstrained
// counterfactual fan out concurrently (they share no mutable state), then the
// metrics layer joins both series and drives the BetaRequired search probes.
func (r *ScenarioRunner) Run(ctx context.Context, sc Scenario) (*RunReport, error) {
	if err := sc.Params.Validate(); err != nil {
		return nil, err
	}

	report := &RunReport{
		RunID:  uuid.NewString(),
		Label:  sc.Label,
		Params: sc.Params,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		series, err := NewIntegrator(sc.Params).Run(gctx)
		report.Series = series
		return err
	})
	g.Go(func() error {
		series, err := NewIntegrator(sc.Params.WithSaturation(Unconstrained)).Run(gctx)
		report.Counterfactual = series
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result, err := ComputeResult(ctx, sc.Params, report.Series, report.Counterfactual, sc.BetaTolerance)
	if err != nil {
		return nil, err
	}
	report.Result = result

	logrus.Infof("scenario %q (run %s): crisis_days=%d peak=%.1f attack_rate=%.4f",
		sc.Label, report.RunID, result.CrisisDays, result.PeakInfected, result.AttackRate)
	return report, nil
}

// RunAll executes independent scenarios concurrently and returns one report
// per scenario, in input order. The first failure cancels the remaining runs.
func (r *ScenarioRunner) RunAll(ctx context.Context, scenarios []Scenario) ([]*RunReport, error) {
	reports := make([]*RunReport, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	if r.Workers > 0 {
		g.SetLimit(r.Workers)
	}
	for idx, sc := range scenarios {
		idx, sc := idx, sc
		g.Go(func() error {
			report, err := r.Run(gctx, sc)
			if err != nil {
				return err
			}
			reports[idx] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
