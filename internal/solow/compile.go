package solow

import (
	"fmt"

	"github.com/jonduan/solow/internal/symbolic"
)

// compiled is one immutable model snapshot: the validated parameters
// plus the derived expressions and their bound evaluators. Snapshots
// are replaced wholesale, never mutated.
type compiled struct {
	params    Params
	intensive symbolic.Expr
	marginal  symbolic.Expr
	motion    symbolic.Expr
	output    symbolic.Func1
	mpk       symbolic.Func1
	kdot      symbolic.Func1
}

// newSnapshot validates p, reduces the aggregate production function to
// intensive form, derives the marginal product and the equation of
// motion, and binds all three against the parameter values. Any failure
// leaves no partial state behind.
//
// The reduction f(k) = F(k, 1, 1) assumes constant returns to scale;
// that property of the aggregate is the caller's responsibility and is
// not verified.
func newSnapshot(aggregate symbolic.Expr, fam *Family, p Params) (*compiled, error) {
	var required []string
	var constraints []Constraint
	if fam != nil {
		required = fam.Required
		constraints = fam.Constraints
	}
	if err := validate(p, required, constraints); err != nil {
		return nil, err
	}

	free := map[string]bool{}
	for _, name := range symbolic.FreeSymbols(aggregate) {
		free[name] = true
	}
	for _, sym := range []string{"K", "A", "L"} {
		if !free[sym] {
			return nil, fmt.Errorf("%w: aggregate production lacks symbol %q", ErrCompilation, sym)
		}
	}
	if free["k"] {
		return nil, fmt.Errorf("%w: symbol \"k\" is reserved for the intensive form", ErrCompilation)
	}

	one := symbolic.Integer(1)
	intensive := aggregate.
		Subst("K", symbolic.Var("k")).
		Subst("A", one).
		Subst("L", one)
	marginal := intensive.Diff("k")
	motion := symbolic.Sub(
		symbolic.Prod(symbolic.Var("s"), intensive),
		symbolic.Prod(
			symbolic.Sum(symbolic.Var("g"), symbolic.Var("n"), symbolic.Var("delta")),
			symbolic.Var("k"),
		),
	)

	snap := &compiled{
		params:    p.Clone(),
		intensive: intensive,
		marginal:  marginal,
		motion:    motion,
	}
	binding := map[string]float64(snap.params)
	var err error
	if snap.output, err = symbolic.Bind(intensive, binding, "k"); err != nil {
		return nil, err
	}
	if snap.mpk, err = symbolic.Bind(marginal, binding, "k"); err != nil {
		return nil, err
	}
	if snap.kdot, err = symbolic.Bind(motion, binding, "k"); err != nil {
		return nil, err
	}
	return snap, nil
}
