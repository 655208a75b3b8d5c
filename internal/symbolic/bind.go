package symbolic

import (
	"fmt"
	"math"
	"strings"
)

// Func1 is a compiled numeric function of one variable.
type Func1 func(float64) float64

// Map evaluates the function over every element of xs and returns a
// result of the same length.
func (f Func1) Map(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = f(x)
	}
	return out
}

// Bind compiles e into a numeric function of the single symbol free.
// Every other symbol occurring in e must have a value in params; the
// values are captured at bind time, so later changes to the map do not
// affect the returned closure. Missing symbols fail with
// [ErrUnboundSymbol] naming every absent name.
func Bind(e Expr, params map[string]float64, free string) (Func1, error) {
	var missing []string
	for _, name := range FreeSymbols(e) {
		if name == free {
			continue
		}
		if _, ok := params[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnboundSymbol, strings.Join(missing, ", "))
	}
	return compile(e.Simplify(), params, free), nil
}

func compile(e Expr, params map[string]float64, free string) Func1 {
	switch v := e.(type) {
	case *Num:
		c := v.Float64()
		return func(float64) float64 { return c }
	case *Sym:
		if v.name == free {
			return func(x float64) float64 { return x }
		}
		c := params[v.name]
		return func(float64) float64 { return c }
	case *Add:
		fs := compileAll(v.terms, params, free)
		return func(x float64) float64 {
			acc := 0.0
			for _, f := range fs {
				acc += f(x)
			}
			return acc
		}
	case *Mul:
		fs := compileAll(v.factors, params, free)
		return func(x float64) float64 {
			acc := 1.0
			for _, f := range fs {
				acc *= f(x)
			}
			return acc
		}
	case *Pow:
		base := compile(v.base, params, free)
		exp := compile(v.exp, params, free)
		return func(x float64) float64 { return math.Pow(base(x), exp(x)) }
	case *Fn:
		arg := compile(v.arg, params, free)
		switch v.name {
		case "ln":
			return func(x float64) float64 { return math.Log(arg(x)) }
		case "exp":
			return func(x float64) float64 { return math.Exp(arg(x)) }
		}
	}
	panic(fmt.Sprintf("symbolic: cannot compile %T", e))
}

func compileAll(es []Expr, params map[string]float64, free string) []Func1 {
	fs := make([]Func1, len(es))
	for i, e := range es {
		fs[i] = compile(e, params, free)
	}
	return fs
}
