// Package viz renders model diagnostics as terminal charts. All
// functions return plain strings; callers decide where they go.
package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/jonduan/solow/internal/dynamics"
	"github.com/jonduan/solow/internal/solow"
	"github.com/jonduan/solow/internal/sweep"
)

const (
	defaultWidth  = 80
	defaultHeight = 10
)

func dims(width, height int) (int, int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

func grid(lower, upper float64, n int) []float64 {
	ks := make([]float64, n)
	step := (upper - lower) / float64(n-1)
	for i := range ks {
		ks[i] = lower + float64(i)*step
	}
	return ks
}

// Diagram plots the Solow cross: realized investment s*f(k) against the
// break-even line (g+n+delta)*k. The two curves intersect at the steady
// state.
func Diagram(m *solow.Model, lower, upper float64, width, height int) string {
	width, height = dims(width, height)
	ks := grid(lower, upper, width)

	p := m.Params()
	s := p["s"]
	msum := p["g"] + p["n"] + p["delta"]

	f := m.OutputFn()
	investment := make([]float64, len(ks))
	breakEven := make([]float64, len(ks))
	for i, k := range ks {
		investment[i] = s * f(k)
		breakEven[i] = msum * k
	}

	return asciigraph.PlotMany([][]float64{investment, breakEven},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("s*f(k) and (g+n+delta)*k, k in [%g, %g]", lower, upper)),
	)
}

// ResidualChart plots k_dot over a capital range; the zero crossing is
// the steady state.
func ResidualChart(m *solow.Model, lower, upper float64, width, height int) string {
	width, height = dims(width, height)
	data := m.KDotFn().Map(grid(lower, upper, width))

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("k_dot(k), k in [%g, %g]", lower, upper)),
	)
}

// PathChart plots capital per effective worker along a trajectory.
func PathChart(path *dynamics.Path, width, height int) string {
	if path == nil || path.Len() == 0 {
		return ""
	}
	width, height = dims(width, height)

	horizon := path.T[path.Len()-1]
	return asciigraph.Plot(path.K,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("k(t), t in [0, %g]", horizon)),
	)
}

// SweepChart plots the steady state against the swept parameter,
// skipping grid values that did not converge.
func SweepChart(points []sweep.Point, param string, width, height int) string {
	data := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Converged {
			data = append(data, p.KStar)
		}
	}
	if len(data) == 0 {
		return ""
	}
	width, height = dims(width, height)

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("k* by %s", param)),
	)
}
