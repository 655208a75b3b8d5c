package solow

import (
	"github.com/jonduan/solow/internal/roots"
	"github.com/jonduan/solow/internal/symbolic"
)

// Model is a Solow growth model over one validated parameter set. All
// evaluators run against an immutable snapshot; parameter replacement
// builds a complete new snapshot and swaps it in only on success.
type Model struct {
	aggregate symbolic.Expr
	family    *Family
	snap      *compiled
}

// New builds a model from a custom aggregate production function over
// the symbols K, A, and L. The function must exhibit constant returns
// to scale; this is assumed, not verified. Parameter symbols beyond
// K, A, and L must have values in p.
func New(aggregate symbolic.Expr, p Params) (*Model, error) {
	snap, err := newSnapshot(aggregate, nil, p)
	if err != nil {
		return nil, err
	}
	return &Model{aggregate: aggregate, snap: snap}, nil
}

// NewFamily builds a model from a registered family template.
func NewFamily(name string, p Params) (*Model, error) {
	fam, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	snap, err := newSnapshot(fam.Aggregate, fam, p)
	if err != nil {
		return nil, err
	}
	return &Model{aggregate: fam.Aggregate, family: fam, snap: snap}, nil
}

// Family returns the family name, or "" for custom-production models.
func (m *Model) Family() string {
	if m.family == nil {
		return ""
	}
	return m.family.Name
}

// Params returns a copy of the active parameter set.
func (m *Model) Params() Params { return m.snap.params.Clone() }

// Intensive returns the intensive production function f(k).
func (m *Model) Intensive() symbolic.Expr { return m.snap.intensive }

// Marginal returns f'(k), re-derived from the intensive form at every
// snapshot build.
func (m *Model) Marginal() symbolic.Expr { return m.snap.marginal }

// Motion returns the equation of motion s*f(k) - (g+n+delta)*k.
func (m *Model) Motion() symbolic.Expr { return m.snap.motion }

// Output evaluates output per effective worker f(k).
func (m *Model) Output(k float64) float64 { return m.snap.output(k) }

// MarginalProduct evaluates the marginal product of capital f'(k).
func (m *Model) MarginalProduct(k float64) float64 { return m.snap.mpk(k) }

// KDot evaluates the equation of motion at k.
func (m *Model) KDot(k float64) float64 { return m.snap.kdot(k) }

// OutputFn returns the bound evaluator for f(k), for vectorized use.
func (m *Model) OutputFn() symbolic.Func1 { return m.snap.output }

// MarginalProductFn returns the bound evaluator for f'(k).
func (m *Model) MarginalProductFn() symbolic.Func1 { return m.snap.mpk }

// KDotFn returns the bound evaluator for the equation of motion.
func (m *Model) KDotFn() symbolic.Func1 { return m.snap.kdot }

// SetParams replaces the parameter set. The new set is validated,
// compiled, and bound before it takes effect; on any failure the model
// keeps serving its previous state unchanged.
func (m *Model) SetParams(p Params) error {
	snap, err := newSnapshot(m.aggregate, m.family, p)
	if err != nil {
		return err
	}
	m.snap = snap
	return nil
}

// SetParam updates a single parameter, leaving the rest unchanged.
func (m *Model) SetParam(name string, value float64) error {
	p := m.snap.params.Clone()
	p[name] = value
	return m.SetParams(p)
}

// SteadyState returns the closed-form steady state of the active
// family. Custom-production models fail with ErrNoClosedForm;
// parameter sets without an interior fixed point fail with
// ErrNoSteadyState.
func (m *Model) SteadyState() (float64, error) {
	if m.family == nil || m.family.ClosedForm == nil {
		return 0, ErrNoClosedForm
	}
	return m.family.ClosedForm(m.snap.params)
}

// FindSteadyState locates a zero of the equation of motion inside
// [lower, upper] with the given method. The bracket must enclose the
// steady state: k_dot is positive below it and negative above it.
func (m *Model) FindSteadyState(lower, upper float64, method roots.Method, opts roots.Options) (roots.Result, error) {
	return method.Solve(roots.Func(m.snap.kdot), lower, upper, opts)
}
