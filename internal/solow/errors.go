package solow

import "errors"

// Domain errors for model construction and analysis.
var (
	// ErrInvalidParameter indicates a parameter set violating the model
	// invariants. The message names the first violated check.
	ErrInvalidParameter = errors.New("solow: invalid parameter")

	// ErrCompilation indicates an aggregate production function that
	// cannot be reduced to intensive form.
	ErrCompilation = errors.New("solow: compilation failed")

	// ErrNoClosedForm indicates the model has no analytic steady state;
	// use FindSteadyState instead.
	ErrNoClosedForm = errors.New("solow: no closed-form steady state")

	// ErrNoSteadyState indicates the parameter set admits no interior
	// steady state.
	ErrNoSteadyState = errors.New("solow: no interior steady state")

	// ErrUnknownFamily indicates an unregistered family name.
	ErrUnknownFamily = errors.New("solow: unknown family")
)
