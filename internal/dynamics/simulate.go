package dynamics

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jonduan/solow/internal/solow"
)

// Simulation errors.
var (
	// ErrInvalidConfig indicates a non-positive initial state, step, or
	// horizon.
	ErrInvalidConfig = errors.New("dynamics: invalid config")

	// ErrCanceled indicates the run was interrupted by its context.
	ErrCanceled = errors.New("dynamics: simulation canceled")
)

// Config controls a transition-path simulation.
type Config struct {
	// Dt is the step size in model time.
	Dt float64

	// Horizon is the total simulated span.
	Horizon float64

	// Stepper advances the state; nil selects RK4.
	Stepper Stepper
}

// Path is a simulated trajectory. All slices share one length; sample i
// was recorded at time T[i].
type Path struct {
	T []float64

	// Per effective worker: capital, output, and consumption.
	K []float64
	Y []float64
	C []float64

	// Level series, scaled back up by A(t)*L(t).
	Capital []float64
	Output  []float64

	// Truncated reports that the state left the finite range and the
	// run stopped early.
	Truncated bool
}

// Len returns the number of recorded samples.
func (p *Path) Len() int { return len(p.T) }

// Simulate integrates the capital equation of motion from k0 over the
// configured horizon. Cancellation is checked between steps; a
// canceled run returns the samples recorded so far along with the
// error.
func Simulate(ctx context.Context, m *solow.Model, k0 float64, cfg Config) (*Path, error) {
	if !(k0 > 0) {
		return nil, fmt.Errorf("%w: k0 %g must be positive", ErrInvalidConfig, k0)
	}
	if !(cfg.Dt > 0) {
		return nil, fmt.Errorf("%w: dt %g must be positive", ErrInvalidConfig, cfg.Dt)
	}
	if !(cfg.Horizon > 0) {
		return nil, fmt.Errorf("%w: horizon %g must be positive", ErrInvalidConfig, cfg.Horizon)
	}
	stepper := cfg.Stepper
	if stepper == nil {
		stepper = NewRK4()
	}

	params := m.Params()
	s := params["s"]
	scale0 := params["A0"] * params["L0"]
	growth := params["g"] + params["n"]
	output := m.OutputFn()
	kdot := m.KDotFn()
	field := func(_, k float64) float64 { return kdot(k) }

	steps := int(math.Ceil(cfg.Horizon / cfg.Dt))
	path := &Path{
		T:       make([]float64, 0, steps+1),
		K:       make([]float64, 0, steps+1),
		Y:       make([]float64, 0, steps+1),
		C:       make([]float64, 0, steps+1),
		Capital: make([]float64, 0, steps+1),
		Output:  make([]float64, 0, steps+1),
	}
	record := func(t, k float64) {
		y := output(k)
		lvl := scale0 * math.Exp(growth*t)
		path.T = append(path.T, t)
		path.K = append(path.K, k)
		path.Y = append(path.Y, y)
		path.C = append(path.C, (1-s)*y)
		path.Capital = append(path.Capital, k*lvl)
		path.Output = append(path.Output, y*lvl)
	}

	k := k0
	record(0, k)
	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return path, fmt.Errorf("%w: %v", ErrCanceled, ctx.Err())
		default:
		}
		k = stepper.Step(field, float64(i-1)*cfg.Dt, k, cfg.Dt)
		if math.IsNaN(k) || math.IsInf(k, 0) {
			path.Truncated = true
			break
		}
		record(float64(i)*cfg.Dt, k)
	}
	return path, nil
}

// HalfLife returns the first recorded time at which the gap |k - kstar|
// falls to half its initial size, or NaN if the path never gets there.
func HalfLife(p *Path, kstar float64) float64 {
	if p == nil || len(p.K) == 0 {
		return math.NaN()
	}
	gap := math.Abs(p.K[0] - kstar)
	if gap == 0 {
		return 0
	}
	for i := range p.K {
		if math.Abs(p.K[i]-kstar) <= gap/2 {
			return p.T[i]
		}
	}
	return math.NaN()
}
