package sim

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrInvalidParameter indicates a Params field outside its valid domain.
	// Raised once, before the first step runs; never mid-run.
	ErrInvalidParameter = errors.New("sim: invalid parameter")

	// ErrRunAbandoned indicates a run was cancelled between steps.
	ErrRunAbandoned = errors.New("sim: run abandoned")
)

// ParameterError reports which Params field failed validation and why.
// It unwraps to ErrInvalidParameter so callers can match the class with
// errors.Is without inspecting fields.
type ParameterError struct {
	Field  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("sim: invalid parameter %s: %s", e.Field, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}
