package solow

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonduan/solow/internal/symbolic"
)

// Family is a registered production-function template. The aggregate
// expression is written over the symbols K, A, and L with the family's
// parameter keys (alpha, sigma) left symbolic; they are bound per model.
type Family struct {
	// Name identifies the family in configs and the CLI.
	Name string

	// Aggregate is the production function template.
	Aggregate symbolic.Expr

	// Required lists family parameter keys beyond the reserved set, in
	// the order their presence is checked.
	Required []string

	// Constraints run after the reserved checks, in order.
	Constraints []Constraint

	// ClosedForm computes the steady state analytically, or is nil when
	// the family has none.
	ClosedForm func(Params) (float64, error)
}

var families = map[string]*Family{
	"cobb_douglas": cobbDouglas(),
	"ces":          ces(),
}

// Lookup returns the named family.
func Lookup(name string) (*Family, error) {
	fam, ok := families[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFamily, name)
	}
	return fam, nil
}

// Families lists the registered family names, sorted.
func Families() []string {
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// cobbDouglas is F = K^alpha * (A*L)^(1-alpha), with the steady state
// k* = (s/m)^(1/(1-alpha)) for m = g+n+delta.
func cobbDouglas() *Family {
	alpha := symbolic.Var("alpha")
	aggregate := symbolic.Prod(
		symbolic.Power(symbolic.Var("K"), alpha),
		symbolic.Power(symbolic.Prod(symbolic.Var("A"), symbolic.Var("L")), symbolic.Sub(symbolic.Integer(1), alpha)),
	)
	return &Family{
		Name:        "cobb_douglas",
		Aggregate:   aggregate,
		Required:    []string{"alpha"},
		Constraints: []Constraint{rangeOpen("alpha", 0, 1)},
		ClosedForm: func(p Params) (float64, error) {
			m := p["g"] + p["n"] + p["delta"]
			return math.Pow(p["s"]/m, 1/(1-p["alpha"])), nil
		},
	}
}

// ces is F = (alpha*K^rho + (1-alpha)*(A*L)^rho)^(1/rho) with
// rho = (sigma-1)/sigma. sigma = 1 is excluded; that limit is the
// cobb_douglas family.
func ces() *Family {
	alpha := symbolic.Var("alpha")
	rho := symbolic.Div(symbolic.Sub(symbolic.Var("sigma"), symbolic.Integer(1)), symbolic.Var("sigma"))
	aggregate := symbolic.Power(
		symbolic.Sum(
			symbolic.Prod(alpha, symbolic.Power(symbolic.Var("K"), rho)),
			symbolic.Prod(
				symbolic.Sub(symbolic.Integer(1), alpha),
				symbolic.Power(symbolic.Prod(symbolic.Var("A"), symbolic.Var("L")), rho),
			),
		),
		symbolic.Div(symbolic.Integer(1), rho),
	)
	return &Family{
		Name:      "ces",
		Aggregate: aggregate,
		Required:  []string{"alpha", "sigma"},
		Constraints: []Constraint{
			rangeOpen("alpha", 0, 1),
			func(p Params) error {
				if v := p["sigma"]; !(v > 0) || v == 1 {
					return fmt.Errorf("%w: sigma %g must be positive and not 1", ErrInvalidParameter, v)
				}
				return nil
			},
		},
		ClosedForm: func(p Params) (float64, error) {
			m := p["g"] + p["n"] + p["delta"]
			rho := (p["sigma"] - 1) / p["sigma"]
			den := math.Pow(m/p["s"], rho) - p["alpha"]
			if den <= 0 {
				return 0, fmt.Errorf("%w: capital productivity never falls to the effective depreciation rate", ErrNoSteadyState)
			}
			return math.Pow((1-p["alpha"])/den, 1/rho), nil
		},
	}
}
