package symbolic

import (
	"errors"
	"math"
	"testing"
)

// parseAndEval parses src and evaluates it as a constant expression.
func parseAndEval(t *testing.T, src string) float64 {
	t.Helper()
	e, err := Parse(src)
	if err != nil {
		t.Fatalf("parse %q failed: %v", src, err)
	}
	f, err := Bind(e, nil, "")
	if err != nil {
		t.Fatalf("bind %q failed: %v", src, err)
	}
	return f(0)
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"1 + 2*3^2", 19},
		{"2^3^2", 512},
		{"(1 + 2)*3", 9},
		{"-2^2", -4},
		{"3 - -2", 5},
		{"10/4", 2.5},
		{"2e3", 2000},
		{"0.5 + 0.25", 0.75},
		{"1e-3", 0.001},
		{"ln(exp(2))", 2},
		{"exp(0)", 1},
	}
	for _, tt := range tests {
		got := parseAndEval(t, tt.src)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%q: got %.12f, expected %.12f", tt.src, got, tt.want)
		}
	}
}

func TestParseSymbols(t *testing.T) {
	e, err := Parse("alpha*k^2 + K_0")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	got := FreeSymbols(e)
	want := []string{"K_0", "alpha", "k"}
	if len(got) != len(want) {
		t.Fatalf("got %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("symbol %d: got %s, expected %s", i, got[i], want[i])
		}
	}
}

func TestParseProduction(t *testing.T) {
	// The CES aggregate, as it would appear in a config file.
	src := "(alpha*K^rho + (1 - alpha)*(A*L)^rho)^(1/rho)"
	e, err := Parse(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	params := map[string]float64{"alpha": 0.33, "rho": -1.0 / 19.0, "A": 1, "L": 1}
	f, err := Bind(e, params, "K")
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	alpha, rho := 0.33, -1.0/19.0
	k := 1.8
	want := math.Pow(alpha*math.Pow(k, rho)+(1-alpha), 1/rho)
	if got := f(k); math.Abs(got-want) > 1e-9 {
		t.Errorf("got %.12f, expected %.12f", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"2 +",
		"k +* 2",
		"foo(2)",
		"(k",
		"k $ 2",
		"ln 2",
		"2..5",
	}
	for _, src := range tests {
		if _, err := Parse(src); err == nil {
			t.Errorf("parse %q: expected error", src)
		}
	}
}

func TestParseErrorOffset(t *testing.T) {
	_, err := Parse("k + $")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Offset != 4 {
		t.Errorf("expected offset 4, got %d", perr.Offset)
	}
}
