// Package sim provides the core integration engine for a capacity-constrained
// SIR epidemic model.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - params.go: Params (immutable per-run configuration) and its validation
//   - saturation.go: policies coupling the recovery rate to healthcare load
//   - integrator.go: the forward-Euler step loop that produces the TimeSeries
//
// # Architecture
//
// Data flows one direction: Params -> Integrator -> TimeSeries -> metrics.
// The integrator advances the (S, I, R) compartments one day at a time; when
// active cases exceed healthcare capacity, the effective recovery rate degrades
// according to the configured SaturationPolicy, which is the only departure
// from the classic three-compartment model.
//
// On top of a completed run, metrics.go answers the three policy questions:
//   - CrisisDays: how many days the system spends over capacity
//   - BetaRequired: the largest transmission rate that never breaches capacity
//   - AttackRateDelta: extra total infections attributable to saturation
//
// scenario.go orchestrates the runs one reporting cycle needs (baseline,
// unconstrained counterfactual, and the BetaRequired search probes) and fans
// independent scenarios out across workers. A TimeSeries is owned exclusively
// by the run that produced it and is never mutated after creation.
//
// # Extension Points
//
// SaturationPolicy is a plain function value, not an interface hierarchy;
// substitute any monotone degradation curve for testing alternate policies.
package sim
