package solow

import (
	"math"

	"github.com/jonduan/solow/internal/roots"
)

// GoldenRule is the capital stock that maximizes steady-state
// consumption per effective worker, together with the savings rate that
// sustains it and the consumption it yields.
type GoldenRule struct {
	Capital     float64
	SavingsRate float64
	Consumption float64
	Iterations  int
	Converged   bool
}

// GoldenRule solves f'(k) = g+n+delta over [lower, upper]. The bracket
// must enclose the golden-rule stock: the marginal product exceeds the
// effective depreciation rate below it and falls short above it.
func (m *Model) GoldenRule(lower, upper float64, method roots.Method, opts roots.Options) (GoldenRule, error) {
	p := m.snap.params
	msum := p["g"] + p["n"] + p["delta"]
	mpk := m.snap.mpk

	res, err := method.Solve(func(k float64) float64 { return mpk(k) - msum }, lower, upper, opts)
	if err != nil {
		return GoldenRule{}, err
	}

	k := res.Root
	y := m.snap.output(k)
	return GoldenRule{
		Capital:     k,
		SavingsRate: msum * k / y,
		Consumption: y - msum*k,
		Iterations:  res.Iterations,
		Converged:   res.Converged,
	}, nil
}

// ConvergenceRate returns the speed lambda = (g+n+delta) - s*f'(kstar)
// at which the linearized dynamics close the gap to the steady state,
// and the implied half-life ln2/lambda. Both are meaningful only at a
// stable steady state, where lambda is positive.
func (m *Model) ConvergenceRate(kstar float64) (lambda, halfLife float64) {
	p := m.snap.params
	lambda = p["g"] + p["n"] + p["delta"] - p["s"]*m.snap.mpk(kstar)
	return lambda, math.Ln2 / lambda
}
