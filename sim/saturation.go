package sim

// SaturationPolicy maps the pre-step active-case count and the healthcare
// capacity to an effective recovery rate. Implementations must be pure and
// must never return a value above gamma0; the integrator calls the policy
// exactly once per step, before any compartment is updated, so step semantics
// stay order-independent.
type SaturationPolicy func(infected, capacity, gamma0 float64) float64

// ThroughputCapped is the reference policy: below capacity recovery proceeds
// at gamma0; above it the rate scales by C/I, which caps recovery throughput
// at gamma0*C treatable cases per day no matter how far demand overshoots.
// Zero capacity means zero treatable cases, not a division by zero.
func ThroughputCapped(infected, capacity, gamma0 float64) float64 {
	if infected <= capacity {
		return gamma0
	}
	if capacity == 0 {
		return 0
	}
	return gamma0 * capacity / infected
}

// StepDown is an abrupt alternative: recovery halts entirely the moment
// active cases exceed capacity. Useful for probing how sensitive outcomes are
// to the shape of the degradation curve.
func StepDown(infected, capacity, gamma0 float64) float64 {
	if infected <= capacity {
		return gamma0
	}
	return 0
}

// Unconstrained ignores capacity and always recovers at gamma0. This is the
// counterfactual policy the attack-rate comparison runs against.
func Unconstrained(infected, capacity, gamma0 float64) float64 {
	return gamma0
}
