package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioRunnerRun_ProducesCompleteReport(t *testing.T) {
	runner := NewScenarioRunner(0)
	report, err := runner.Run(context.Background(), Scenario{
		Label:  "crisis",
		Params: referenceParams(),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "crisis", report.Label)
	require.Len(t, report.Series, 101)
	require.Len(t, report.Counterfactual, 101)
	assert.Greater(t, report.Result.CrisisDays, 0)

	// the counterfactual really ran unconstrained: gamma never degrades
	for _, rec := range report.Counterfactual {
		assert.Equal(t, 0.1, rec.GammaEff)
	}
}

func TestScenarioRunnerRun_InvalidParamsFailClosed(t *testing.T) {
	p := referenceParams()
	p.N = -1

	runner := NewScenarioRunner(0)
	report, err := runner.Run(context.Background(), Scenario{Label: "bad", Params: p})
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Nil(t, report)
}

func TestScenarioRunnerRunAll_PreservesInputOrder(t *testing.T) {
	base := referenceParams()
	scenarios := []Scenario{
		{Label: "baseline", Params: base},
		{Label: "policy", Params: base.WithBeta(0.15)},
		{Label: "lockdown", Params: base.WithBeta(0.05)},
	}

	runner := NewScenarioRunner(2)
	reports, err := runner.RunAll(context.Background(), scenarios)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	seen := map[string]bool{}
	for i, report := range reports {
		assert.Equal(t, scenarios[i].Label, report.Label)
		assert.False(t, seen[report.RunID], "run IDs must be unique")
		seen[report.RunID] = true
	}

	// lower beta cannot crisis longer than the baseline
	assert.LessOrEqual(t, reports[2].Result.CrisisDays, reports[0].Result.CrisisDays)
}

func TestScenarioRunnerRunAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewScenarioRunner(1)
	_, err := runner.RunAll(ctx, []Scenario{{Label: "a", Params: referenceParams()}})
	assert.Error(t, err)
}

func TestScenarioRunnerRunAll_IndependentRunsMatchSequential(t *testing.T) {
	// Scenario runs share no mutable state, so the fan-out must be
	// bit-for-bit deterministic against a sequential execution.
	base := referenceParams()
	scenarios := []Scenario{
		{Label: "a", Params: base},
		{Label: "b", Params: base.WithBeta(0.2)},
	}

	parallel, err := NewScenarioRunner(2).RunAll(context.Background(), scenarios)
	require.NoError(t, err)
	sequential, err := NewScenarioRunner(1).RunAll(context.Background(), scenarios)
	require.NoError(t, err)

	for i := range scenarios {
		assert.Equal(t, sequential[i].Series, parallel[i].Series)
		assert.Equal(t, sequential[i].Result, parallel[i].Result)
	}
}
