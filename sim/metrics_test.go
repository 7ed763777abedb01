package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// computeReference runs the crisis scenario end to end: constrained baseline,
// unconstrained counterfactual, and the full Result.
func computeReference(t *testing.T) (Params, Result) {
	t.Helper()
	ctx := context.Background()
	p := referenceParams()

	baseline, err := NewIntegrator(p).Run(ctx)
	require.NoError(t, err)
	counterfactual, err := NewIntegrator(p.WithSaturation(Unconstrained)).Run(ctx)
	require.NoError(t, err)

	result, err := ComputeResult(ctx, p, baseline, counterfactual, 0)
	require.NoError(t, err)
	return p, result
}

func TestComputeResult_ReferenceScenarioBreaches(t *testing.T) {
	p, result := computeReference(t)

	// R0=3 against C=50 must produce a long crisis and a saturation cost
	assert.Greater(t, result.CrisisDays, 0)
	assert.Greater(t, result.AttackRateDelta, 0.0)
	assert.Greater(t, result.PeakInfected, p.Capacity)
	assert.False(t, result.BreachUnavoidable)
	assert.False(t, result.Approximate)

	// curve statistics, cross-checked against an independent implementation
	assert.Equal(t, 91, result.CrisisDays)
	assert.InDelta(t, 829.14, result.PeakInfected, 0.01)
	assert.InDelta(t, 36, result.PeakDay, 1e-12)
	assert.InDelta(t, 3.0, result.R0, 1e-12)
	assert.InDelta(t, 1000.0, result.FinalCheck, 1e-6)
}

func TestComputeResult_GenerousCapacity_NoCrisisNoDelta(t *testing.T) {
	ctx := context.Background()
	p := referenceParams()
	p.Capacity = 1000 // unreachable: I can never exceed N

	baseline, err := NewIntegrator(p).Run(ctx)
	require.NoError(t, err)
	counterfactual, err := NewIntegrator(p.WithSaturation(Unconstrained)).Run(ctx)
	require.NoError(t, err)

	result, err := ComputeResult(ctx, p, baseline, counterfactual, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, result.CrisisDays)
	assert.Zero(t, result.AttackRateDelta)
	// no breach means the baseline beta is already acceptable
	assert.Equal(t, p.Beta, result.BetaRequired)
	assert.False(t, result.BreachUnavoidable)
}

func TestBetaRequired_ReRunWithResultIsClean(t *testing.T) {
	ctx := context.Background()
	p := referenceParams()
	baseline, err := NewIntegrator(p).Run(ctx)
	require.NoError(t, err)

	betaReq, unavoidable, approximate, err := BetaRequired(ctx, p, baseline, 0)
	require.NoError(t, err)
	assert.False(t, unavoidable)
	assert.False(t, approximate)
	assert.Greater(t, betaReq, 0.0)
	assert.Less(t, betaReq, p.Beta)

	// soundness: simulating at the returned rate must stay under capacity
	series, err := NewIntegrator(p.WithBeta(betaReq)).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, series.CrisisDays(p.Capacity))
}

func TestBetaRequired_StartingOverCapacity_IsUnavoidable(t *testing.T) {
	// GIVEN I0 already above capacity and zero transmission
	ctx := context.Background()
	p := NewParams(1000, 10, 0, 0.1, 5, 100)
	baseline, err := NewIntegrator(p).Run(ctx)
	require.NoError(t, err)

	// THEN the opening days are crisis days no matter what
	assert.GreaterOrEqual(t, baseline.CrisisDays(p.Capacity), 1)

	betaReq, unavoidable, _, err := BetaRequired(ctx, p, baseline, 0)
	require.NoError(t, err)
	assert.True(t, unavoidable)
	assert.Zero(t, betaReq)
}

func TestBetaRequired_PropagatesCancellation(t *testing.T) {
	ctx := context.Background()
	p := referenceParams()
	baseline, err := NewIntegrator(p).Run(ctx)
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, _, err = BetaRequired(cancelled, p, baseline, 0)
	assert.ErrorIs(t, err, ErrRunAbandoned)
}

func TestComputeResult_QuickerRecoveryLowersAttackRate(t *testing.T) {
	ctx := context.Background()
	slow := referenceParams()

	quick := slow
	quick.Gamma0 = 0.2 // halve the infectious period

	run := func(p Params) Result {
		baseline, err := NewIntegrator(p).Run(ctx)
		require.NoError(t, err)
		counterfactual, err := NewIntegrator(p.WithSaturation(Unconstrained)).Run(ctx)
		require.NoError(t, err)
		result, err := ComputeResult(ctx, p, baseline, counterfactual, 0)
		require.NoError(t, err)
		return result
	}

	assert.Less(t, run(quick).AttackRate, run(slow).AttackRate)
}
