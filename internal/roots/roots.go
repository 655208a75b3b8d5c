package roots

import (
	"fmt"
	"math"
)

// Func is the scalar function whose root is sought.
type Func func(float64) float64

// Default solver settings, used for zero-valued [Options] fields.
const (
	DefaultTolerance     = 1e-9
	DefaultMaxIterations = 200
)

// Options tunes a solve. The zero value selects the defaults.
type Options struct {
	// Tolerance is the convergence threshold. Bisect and Ridder apply it
	// to the bracket width, Brent to its internal step bound.
	Tolerance float64

	// MaxIterations caps the number of refinement steps.
	MaxIterations int
}

func (o Options) withDefaults() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	return o
}

// Result reports the outcome of a solve. It is produced fresh per call
// and never mutated afterwards.
type Result struct {
	// Root is the best estimate found.
	Root float64

	// Residual is the function value at Root.
	Residual float64

	// Iterations is the number of refinement steps taken. An exact root
	// at a bracket endpoint reports zero.
	Iterations int

	// Converged reports whether the estimate met the tolerance within
	// the iteration budget.
	Converged bool

	// Bracket is the final enclosing interval, low end first.
	Bracket [2]float64
}

// Method locates a root of f inside a sign-changing bracket.
type Method interface {
	Name() string
	Solve(f Func, lower, upper float64, opts Options) (Result, error)
}

// New returns the named method: "bisect", "brent", or "ridder".
func New(name string) (Method, error) {
	switch name {
	case "bisect":
		return NewBisect(), nil
	case "brent":
		return NewBrent(), nil
	case "ridder":
		return NewRidder(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
}

// Methods lists the registered method names.
func Methods() []string { return []string{"bisect", "brent", "ridder"} }

// checkBracket validates the interval and evaluates the endpoints. An
// exact zero at an endpoint short-circuits into a finished Result.
func checkBracket(f Func, lower, upper float64) (fl, fu float64, done *Result, err error) {
	if !(lower < upper) {
		return 0, 0, nil, fmt.Errorf("%w: lower %g is not below upper %g", ErrInvalidBracket, lower, upper)
	}
	fl, fu = f(lower), f(upper)
	if !isFinite(fl) || !isFinite(fu) {
		return 0, 0, nil, fmt.Errorf("%w: non-finite value on [%g, %g]", ErrInvalidBracket, lower, upper)
	}
	if fl == 0 {
		return fl, fu, &Result{Root: lower, Converged: true, Bracket: [2]float64{lower, upper}}, nil
	}
	if fu == 0 {
		return fl, fu, &Result{Root: upper, Converged: true, Bracket: [2]float64{lower, upper}}, nil
	}
	if (fl > 0) == (fu > 0) {
		return 0, 0, nil, fmt.Errorf("%w: no sign change on [%g, %g]", ErrInvalidBracket, lower, upper)
	}
	return fl, fu, nil, nil
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func orderedBracket(a, b float64) [2]float64 {
	if a <= b {
		return [2]float64{a, b}
	}
	return [2]float64{b, a}
}
