package symbolic

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestBindEvaluates(t *testing.T) {
	// s*k^alpha with s and alpha bound, k free.
	e := Prod(Var("s"), Power(Var("k"), Var("alpha")))
	f, err := Bind(e, map[string]float64{"s": 0.3, "alpha": 0.5}, "k")
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	got := f(4.0)
	if math.Abs(got-0.6) > 1e-12 {
		t.Errorf("got %.12f, expected 0.6", got)
	}
}

func TestBindUnboundSymbol(t *testing.T) {
	e := Prod(Var("s"), Var("k"))
	_, err := Bind(e, map[string]float64{}, "k")
	if !errors.Is(err, ErrUnboundSymbol) {
		t.Fatalf("expected ErrUnboundSymbol, got %v", err)
	}
	if !strings.Contains(err.Error(), "s") {
		t.Errorf("error should name the missing symbol: %v", err)
	}
}

func TestBindCapturesBinding(t *testing.T) {
	params := map[string]float64{"a": 2.0}
	f, err := Bind(Prod(Var("a"), Var("x")), params, "x")
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	params["a"] = 100.0
	if got := f(3.0); math.Abs(got-6.0) > 1e-12 {
		t.Errorf("closure should capture the binding at compile time: got %.12f, expected 6", got)
	}
}

func TestFunc1Map(t *testing.T) {
	f, err := Bind(Power(Var("x"), Integer(2)), nil, "x")
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	xs := []float64{0, 1, 2, 3}
	ys := f.Map(xs)
	if len(ys) != len(xs) {
		t.Fatalf("expected %d results, got %d", len(xs), len(ys))
	}
	for i, x := range xs {
		if math.Abs(ys[i]-x*x) > 1e-12 {
			t.Errorf("element %d: got %.12f, expected %.12f", i, ys[i], x*x)
		}
	}
}
