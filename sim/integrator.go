package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Integrator advances the compartment state one step at a time and records
// the full history. It is strictly sequential: step n+1 depends on all of
// step n, so there is no internal parallelism to exploit.
type Integrator struct {
	params Params
	policy SaturationPolicy
}

// NewIntegrator prepares an integrator for one run. The Params copy is
// private to this integrator.
func NewIntegrator(p Params) *Integrator {
	policy := p.Saturation
	if policy == nil {
		policy = ThroughputCapped
	}
	return &Integrator{params: p, policy: policy}
}

// Run validates the parameters and executes exactly Steps forward-Euler
// iterations, returning a TimeSeries of length Steps+1. There is no early
// stopping, even when I reaches zero, so the series length is predictable.
//
// ctx is checked between steps only; a step is the atomic unit of state
// mutation and is never interrupted. All per-step arithmetic is clamped, so
// after validation succeeds no mid-run error is possible except cancellation.
func (in *Integrator) Run(ctx context.Context) (TimeSeries, error) {
	p := in.params
	if err := p.Validate(); err != nil {
		return nil, err
	}

	series := make(TimeSeries, 0, p.Steps+1)
	s, i, r := p.S0, p.I0, p.R0
	t := 0.0
	series = append(series, StepRecord{T: t, S: s, I: i, R: r, GammaEff: in.policy(i, p.Capacity, p.Gamma0)})

	logrus.Debugf("integrator: starting run (N=%.0f beta=%.4f gamma0=%.4f C=%.0f steps=%d)",
		p.N, p.Beta, p.Gamma0, p.Capacity, p.Steps)

	for step := 0; step < p.Steps; step++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w at day %.2f: %v", ErrRunAbandoned, t, ctx.Err())
		default:
		}

		// Effective recovery rate from the pre-step infected count.
		gammaEff := in.policy(i, p.Capacity, p.Gamma0)

		// Cannot infect more people than are susceptible, nor recover more
		// than are infected.
		newInf := p.Beta * s * i / p.N * p.DT
		if newInf > s {
			newInf = s
		}
		newRec := gammaEff * i * p.DT
		if newRec > i {
			newRec = i
		}

		s -= newInf
		i += newInf - newRec
		r += newRec
		t += p.DT

		series = append(series, StepRecord{T: t, S: s, I: i, R: r, GammaEff: gammaEff})
	}

	logrus.Debugf("integrator: run complete (final S=%.1f I=%.1f R=%.1f)", s, i, r)
	return series, nil
}
