package sweep

import (
	"errors"
	"math"
	"testing"

	"github.com/jonduan/solow/internal/roots"
	"github.com/jonduan/solow/internal/solow"
)

func baselineModel(t *testing.T) *solow.Model {
	t.Helper()
	m, err := solow.NewFamily("cobb_douglas", solow.Params{
		"g": 0.02, "n": 0.01, "s": 0.2, "delta": 0.05,
		"A0": 1.0, "L0": 1.0, "alpha": 0.33,
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func brent(t *testing.T) roots.Method {
	t.Helper()
	method, err := roots.New("brent")
	if err != nil {
		t.Fatal(err)
	}
	return method
}

func TestRunMonotoneInSavings(t *testing.T) {
	m := baselineModel(t)

	points, err := Run(m, Range{Param: "s", Min: 0.1, Max: 0.3, Steps: 5}, brent(t), 1e-6, 1e6, roots.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 5 {
		t.Fatalf("got %d points, expected 5", len(points))
	}

	for i, p := range points {
		want := 0.1 + float64(i)*0.05
		if math.Abs(p.Value-want) > 1e-12 {
			t.Errorf("point %d: value %.12f, expected %.12f", i, p.Value, want)
		}
		if !p.Converged {
			t.Fatalf("value %g did not converge", p.Value)
		}
		if i > 0 && p.KStar <= points[i-1].KStar {
			t.Errorf("k* should rise with s: %.6f at %.2f after %.6f at %.2f",
				p.KStar, p.Value, points[i-1].KStar, points[i-1].Value)
		}
	}

	want := math.Pow(0.3/0.08, 1/0.67)
	if math.Abs(points[4].KStar-want) > 1e-6 {
		t.Errorf("k* at s=0.3: got %.8f, expected %.8f", points[4].KStar, want)
	}
}

func TestRunRecordsInvalidValues(t *testing.T) {
	m := baselineModel(t)

	points, err := Run(m, Range{Param: "s", Min: 0.8, Max: 1.2, Steps: 5}, brent(t), 1e-6, 1e6, roots.Options{})
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range points {
		if p.Value < 0.9999 {
			if !p.Converged {
				t.Errorf("value %g should converge", p.Value)
			}
			continue
		}
		if p.Converged {
			t.Errorf("s = %g is outside (0, 1), point should not converge", p.Value)
		}
		if !math.IsNaN(p.KStar) || !math.IsNaN(p.YStar) {
			t.Errorf("s = %g: expected NaN steady state, got k* = %g", p.Value, p.KStar)
		}
	}
}

func TestRunRestoresParams(t *testing.T) {
	m := baselineModel(t)
	before := m.Output(2.0)

	if _, err := Run(m, Range{Param: "s", Min: 0.4, Max: 0.6, Steps: 3}, brent(t), 1e-6, 1e6, roots.Options{}); err != nil {
		t.Fatal(err)
	}

	if got := m.Params()["s"]; got != 0.2 {
		t.Errorf("s after sweep: got %g, expected 0.2", got)
	}
	if after := m.Output(2.0); after != before {
		t.Errorf("output at k=2 changed across sweep: %.12f vs %.12f", after, before)
	}
}

func TestRunRejectsBadRange(t *testing.T) {
	m := baselineModel(t)
	method := brent(t)

	tests := []struct {
		name string
		r    Range
	}{
		{"one step", Range{Param: "s", Min: 0.1, Max: 0.3, Steps: 1}},
		{"empty param", Range{Min: 0.1, Max: 0.3, Steps: 3}},
		{"degenerate", Range{Param: "s", Min: 0.2, Max: 0.2, Steps: 3}},
		{"reversed", Range{Param: "s", Min: 0.3, Max: 0.1, Steps: 3}},
		{"nan bound", Range{Param: "s", Min: math.NaN(), Max: 0.3, Steps: 3}},
		{"infinite bound", Range{Param: "s", Min: 0.1, Max: math.Inf(1), Steps: 3}},
	}
	for _, tt := range tests {
		if _, err := Run(m, tt.r, method, 1e-6, 1e6, roots.Options{}); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("%s: expected ErrInvalidRange, got %v", tt.name, err)
		}
	}
}
