package dynamics

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestSimulateValidation(t *testing.T) {
	m := testModel(t)
	ctx := context.Background()

	tests := []struct {
		name string
		k0   float64
		cfg  Config
	}{
		{"zero k0", 0, Config{Dt: 0.1, Horizon: 10}},
		{"negative k0", -1, Config{Dt: 0.1, Horizon: 10}},
		{"zero dt", 1, Config{Dt: 0, Horizon: 10}},
		{"negative horizon", 1, Config{Dt: 0.1, Horizon: -5}},
		{"nan dt", 1, Config{Dt: math.NaN(), Horizon: 10}},
	}
	for _, tt := range tests {
		if _, err := Simulate(ctx, m, tt.k0, tt.cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}

func TestSimulateCancellation(t *testing.T) {
	m := testModel(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path, err := Simulate(ctx, m, 1.0, Config{Dt: 0.1, Horizon: 100})
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
	if path == nil || path.Len() == 0 {
		t.Error("canceled run should return the samples recorded so far")
	}
}

func TestSimulateSeriesConsistency(t *testing.T) {
	m := testModel(t)

	path, err := Simulate(context.Background(), m, 1.0, Config{Dt: 0.5, Horizon: 10})
	if err != nil {
		t.Fatal(err)
	}
	if path.Truncated {
		t.Fatal("run should not truncate")
	}

	s, g, n := 0.2, 0.02, 0.01
	for i := 0; i < path.Len(); i++ {
		if want := (1 - s) * path.Y[i]; math.Abs(path.C[i]-want) > 1e-12 {
			t.Errorf("sample %d: c = %.12f, expected %.12f", i, path.C[i], want)
		}
		lvl := math.Exp((g + n) * path.T[i])
		if want := path.K[i] * lvl; math.Abs(path.Capital[i]-want) > 1e-9 {
			t.Errorf("sample %d: capital level %.9f, expected %.9f", i, path.Capital[i], want)
		}
		if want := path.Y[i] * lvl; math.Abs(path.Output[i]-want) > 1e-9 {
			t.Errorf("sample %d: output level %.9f, expected %.9f", i, path.Output[i], want)
		}
	}
}

func TestSimulateApproachesSteadyState(t *testing.T) {
	m := testModel(t)
	kstar, err := m.SteadyState()
	if err != nil {
		t.Fatal(err)
	}

	path, err := Simulate(context.Background(), m, 0.5, Config{Dt: 0.1, Horizon: 400})
	if err != nil {
		t.Fatal(err)
	}

	last := path.Len() - 1
	if math.Abs(path.K[last]-kstar) > 1e-6 {
		t.Errorf("k(%.0f) = %.8f has not settled at k* = %.8f", path.T[last], path.K[last], kstar)
	}
	for i := 1; i < path.Len(); i++ {
		if path.K[i] < path.K[i-1] {
			t.Fatalf("approach from below should be monotone, k fell at sample %d", i)
		}
	}
}

func TestHalfLife(t *testing.T) {
	p := &Path{T: []float64{0, 1, 2, 3}, K: []float64{4, 3, 2.5, 2}}
	if got := HalfLife(p, 2); got != 1 {
		t.Errorf("got %.2f, expected 1", got)
	}
	if got := HalfLife(p, 10); !math.IsNaN(got) {
		t.Errorf("gap never halves: got %.2f, expected NaN", got)
	}
	if got := HalfLife(&Path{T: []float64{0}, K: []float64{5}}, 5); got != 0 {
		t.Errorf("starting at the steady state: got %.2f, expected 0", got)
	}
	if got := HalfLife(nil, 1); !math.IsNaN(got) {
		t.Errorf("nil path: got %.2f, expected NaN", got)
	}
}
