package sim

import "math"

// conservationTol is the relative tolerance for the S0+I0+R0 == N check.
const conservationTol = 1e-9

// Params is the immutable configuration for one simulation run. Construct with
// NewParams (or a struct literal for full control) and treat as read-only
// afterwards; every run receives its own copy, so scenarios share no state.
type Params struct {
	N        float64 // total population (constant across the run)
	Beta     float64 // transmission rate per day
	Gamma0   float64 // baseline recovery rate per day, (0, 1] per step under DT
	Capacity float64 // healthcare capacity as an active-case threshold
	DT       float64 // step size in days
	Steps    int     // number of integration steps

	// Initial compartment values. Must sum to N.
	S0 float64
	I0 float64
	R0 float64

	// Saturation selects the capacity-degradation curve for the recovery
	// rate. nil means ThroughputCapped.
	Saturation SaturationPolicy
}

// NewParams builds a Params for the common seeding case: I0 initially
// infected, nobody recovered, everyone else susceptible. DT defaults to one
// day and the saturation policy to ThroughputCapped.
func NewParams(n, i0, beta, gamma0, capacity float64, steps int) Params {
	return Params{
		N:        n,
		Beta:     beta,
		Gamma0:   gamma0,
		Capacity: capacity,
		DT:       1,
		Steps:    steps,
		S0:       n - i0,
		I0:       i0,
		R0:       0,
	}
}

// BasicReproduction returns R0 = beta / gamma0, the expected number of
// secondary infections per case in a fully susceptible population.
func (p Params) BasicReproduction() float64 {
	return p.Beta / p.Gamma0
}

// WithBeta returns a copy of p with the transmission rate replaced.
// Used by the BetaRequired search probes.
func (p Params) WithBeta(beta float64) Params {
	p.Beta = beta
	return p
}

// WithSaturation returns a copy of p with the saturation policy replaced.
func (p Params) WithSaturation(policy SaturationPolicy) Params {
	p.Saturation = policy
	return p
}

// Validate checks every Params invariant and returns a ParameterError for the
// first violation. A nil return guarantees the integrator cannot fail mid-run:
// step-level clamping handles everything else.
func (p Params) Validate() error {
	switch {
	case math.IsNaN(p.N) || p.N <= 0:
		return &ParameterError{Field: "N", Reason: "population must be positive"}
	case math.IsNaN(p.Beta) || p.Beta < 0:
		return &ParameterError{Field: "Beta", Reason: "transmission rate must be non-negative"}
	case math.IsNaN(p.Gamma0) || p.Gamma0 <= 0:
		return &ParameterError{Field: "Gamma0", Reason: "recovery rate must be positive"}
	case math.IsNaN(p.Capacity) || p.Capacity < 0:
		return &ParameterError{Field: "Capacity", Reason: "capacity must be non-negative"}
	case math.IsNaN(p.DT) || p.DT <= 0:
		return &ParameterError{Field: "DT", Reason: "step size must be positive"}
	case p.Gamma0*p.DT > 1:
		return &ParameterError{Field: "Gamma0", Reason: "gamma0*dt exceeds 1; recoveries would overshoot the infected pool"}
	case p.Steps < 1:
		return &ParameterError{Field: "Steps", Reason: "at least one step is required"}
	case math.IsNaN(p.S0) || p.S0 < 0:
		return &ParameterError{Field: "S0", Reason: "initial susceptible count must be non-negative"}
	case math.IsNaN(p.I0) || p.I0 < 0:
		return &ParameterError{Field: "I0", Reason: "initial infected count must be non-negative"}
	case math.IsNaN(p.R0) || p.R0 < 0:
		return &ParameterError{Field: "R0", Reason: "initial recovered count must be non-negative"}
	}
	if math.Abs(p.S0+p.I0+p.R0-p.N) > conservationTol*p.N {
		return &ParameterError{Field: "S0", Reason: "initial compartments do not sum to N"}
	}
	return nil
}
