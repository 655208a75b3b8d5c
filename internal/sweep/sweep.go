// Package sweep runs one-dimensional comparative statics over model
// parameters: solve the steady state on a linear grid of values and
// record how it moves.
package sweep

import (
	"errors"
	"fmt"
	"math"

	"github.com/jonduan/solow/internal/roots"
	"github.com/jonduan/solow/internal/solow"
)

// ErrInvalidRange reports a range that cannot produce a grid.
var ErrInvalidRange = errors.New("sweep: invalid range")

// Range describes a linear grid over a single parameter.
type Range struct {
	Param string
	Min   float64
	Max   float64
	Steps int
}

// Point records the steady state solved at one grid value. Values whose
// parameter set fails validation, or whose bracket fails, carry NaN and
// Converged false.
type Point struct {
	Value      float64
	KStar      float64
	YStar      float64
	Converged  bool
	Iterations int
}

// Run solves the steady state at every grid value of r and restores the
// model's original parameters before returning. Per-value failures are
// recorded in the grid rather than aborting it.
func Run(m *solow.Model, r Range, method roots.Method, lower, upper float64, opts roots.Options) ([]Point, error) {
	if r.Param == "" || r.Steps < 2 || !(r.Min < r.Max) ||
		math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return nil, fmt.Errorf("%w: %q over [%g, %g] in %d steps",
			ErrInvalidRange, r.Param, r.Min, r.Max, r.Steps)
	}

	original := m.Params()
	defer func() { _ = m.SetParams(original) }()

	step := (r.Max - r.Min) / float64(r.Steps-1)
	points := make([]Point, 0, r.Steps)
	for i := 0; i < r.Steps; i++ {
		value := r.Min + float64(i)*step
		points = append(points, solveAt(m, r.Param, value, method, lower, upper, opts))
	}
	return points, nil
}

func solveAt(m *solow.Model, param string, value float64, method roots.Method, lower, upper float64, opts roots.Options) Point {
	failed := Point{Value: value, KStar: math.NaN(), YStar: math.NaN()}

	if err := m.SetParam(param, value); err != nil {
		return failed
	}
	res, err := m.FindSteadyState(lower, upper, method, opts)
	if err != nil {
		return failed
	}

	p := Point{Value: value, KStar: res.Root, YStar: math.NaN(), Converged: res.Converged, Iterations: res.Iterations}
	if res.Converged {
		p.YStar = m.Output(res.Root)
	}
	return p
}
