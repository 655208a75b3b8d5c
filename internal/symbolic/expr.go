package symbolic

import (
	"math/big"
	"sort"
	"strings"
)

// Expr is an immutable algebraic expression. The variant set is closed:
// only the types defined in this package implement it.
type Expr interface {
	// Simplify returns a canonical form: nested sums and products
	// flattened, constants folded, terms in deterministic order.
	Simplify() Expr

	// Subst replaces every occurrence of the named symbol with value.
	Subst(name string, value Expr) Expr

	// Diff returns the first derivative with respect to the named symbol.
	Diff(name string) Expr

	String() string

	free(set map[string]struct{})
}

var (
	ratOne    = big.NewRat(1, 1)
	ratNegOne = big.NewRat(-1, 1)
)

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

// Integer returns the constant n.
func Integer(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// Ratio returns the constant p/q. It panics if q is zero.
func Ratio(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: zero denominator")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// Float returns the constant nearest to v. It panics if v is NaN or Inf.
func Float(v float64) *Num {
	r := new(big.Rat).SetFloat64(v)
	if r == nil {
		panic("symbolic: non-finite literal")
	}
	return &Num{val: r}
}

func (n *Num) Simplify() Expr           { return n }
func (n *Num) Subst(string, Expr) Expr  { return n }
func (n *Num) Diff(string) Expr         { return Integer(0) }
func (n *Num) free(map[string]struct{}) {}

// Float64 returns the nearest float64 value of the constant.
func (n *Num) Float64() float64 { f, _ := n.val.Float64(); return f }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

// Sym is a named variable.
type Sym struct{ name string }

// Var returns the variable with the given name.
func Var(name string) *Sym { return &Sym{name: name} }

// Name reports the variable's name.
func (s *Sym) Name() string { return s.name }

func (s *Sym) Simplify() Expr { return s }
func (s *Sym) String() string { return s.name }

func (s *Sym) Subst(name string, value Expr) Expr {
	if s.name == name {
		return value
	}
	return s
}

func (s *Sym) Diff(name string) Expr {
	if s.name == name {
		return Integer(1)
	}
	return Integer(0)
}

func (s *Sym) free(set map[string]struct{}) { set[s.name] = struct{}{} }

// Add is a sum of terms.
type Add struct{ terms []Expr }

// Sum returns the simplified sum of terms.
func Sum(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// Sub returns a - b.
func Sub(a, b Expr) Expr { return Sum(a, Neg(b)) }

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	sum := new(big.Rat)
	rest := make([]Expr, 0, len(flat))
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			sum.Add(sum, n.val)
			continue
		}
		rest = append(rest, t)
	}

	// Merge scalar multiples of identical terms (k + 2*k -> 3*k) and
	// order by the base term so signs do not scatter the ordering.
	type group struct {
		coeff *big.Rat
		base  Expr
	}
	order := make([]string, 0, len(rest))
	groups := make(map[string]*group, len(rest))
	for _, t := range rest {
		c, base := splitCoeff(t)
		key := base.String()
		g, ok := groups[key]
		if !ok {
			g = &group{coeff: new(big.Rat), base: base}
			groups[key] = g
			order = append(order, key)
		}
		g.coeff.Add(g.coeff, c)
	}
	sort.Strings(order)

	out := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		g := groups[key]
		switch {
		case g.coeff.Sign() == 0:
		case g.coeff.Cmp(ratOne) == 0:
			out = append(out, g.base)
		default:
			out = append(out, scale(&Num{val: g.coeff}, g.base))
		}
	}
	if sum.Sign() != 0 {
		out = append(out, &Num{val: sum})
	}

	switch len(out) {
	case 0:
		return Integer(0)
	case 1:
		return out[0]
	}
	return &Add{terms: out}
}

// splitCoeff separates a term into its leading rational coefficient and
// the remaining base expression. Terms without a numeric factor have
// coefficient one.
func splitCoeff(t Expr) (*big.Rat, Expr) {
	m, ok := t.(*Mul)
	if !ok {
		return ratOne, t
	}
	n, ok := m.factors[0].(*Num)
	if !ok {
		return ratOne, t
	}
	if len(m.factors) == 2 {
		return n.val, m.factors[1]
	}
	return n.val, &Mul{factors: m.factors[1:]}
}

// scale rebuilds coeff*base without re-simplifying; both inputs are
// already canonical and coeff is neither zero nor one.
func scale(coeff *Num, base Expr) Expr {
	if m, ok := base.(*Mul); ok {
		return &Mul{factors: append([]Expr{coeff}, m.factors...)}
	}
	return &Mul{factors: []Expr{coeff, base}}
}

func (a *Add) String() string {
	var b strings.Builder
	for i, t := range a.terms {
		s := t.String()
		if i == 0 {
			b.WriteString(s)
			continue
		}
		if rest, ok := strings.CutPrefix(s, "-"); ok {
			b.WriteString(" - ")
			b.WriteString(rest)
		} else {
			b.WriteString(" + ")
			b.WriteString(s)
		}
	}
	return b.String()
}

func (a *Add) Subst(name string, value Expr) Expr {
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = t.Subst(name, value)
	}
	return Sum(terms...)
}

func (a *Add) Diff(name string) Expr {
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = t.Diff(name)
	}
	return Sum(terms...)
}

func (a *Add) free(set map[string]struct{}) {
	for _, t := range a.terms {
		t.free(set)
	}
}

// Mul is a product of factors.
type Mul struct{ factors []Expr }

// Prod returns the simplified product of factors.
func Prod(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// Neg returns -e.
func Neg(e Expr) Expr { return Prod(Integer(-1), e) }

// Div returns a divided by b.
func Div(a, b Expr) Expr { return Prod(a, Power(b, Integer(-1))) }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	coeff := new(big.Rat).SetInt64(1)
	rest := make([]Expr, 0, len(flat))
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff.Mul(coeff, n.val)
			continue
		}
		rest = append(rest, f)
	}
	if coeff.Sign() == 0 {
		return Integer(0)
	}
	sortExprs(rest)

	if len(rest) == 0 {
		return &Num{val: coeff}
	}
	if coeff.Cmp(ratOne) == 0 {
		if len(rest) == 1 {
			return rest[0]
		}
		return &Mul{factors: rest}
	}
	return &Mul{factors: append([]Expr{&Num{val: coeff}}, rest...)}
}

func (m *Mul) String() string {
	factors := m.factors
	prefix := ""
	if n, ok := factors[0].(*Num); ok && len(factors) > 1 && n.val.Cmp(ratNegOne) == 0 {
		prefix = "-"
		factors = factors[1:]
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		if _, ok := f.(*Add); ok {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return prefix + strings.Join(parts, "*")
}

func (m *Mul) Subst(name string, value Expr) Expr {
	factors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		factors[i] = f.Subst(name, value)
	}
	return Prod(factors...)
}

func (m *Mul) Diff(name string) Expr {
	terms := make([]Expr, len(m.factors))
	for i := range m.factors {
		parts := make([]Expr, 0, len(m.factors))
		parts = append(parts, m.factors[i].Diff(name))
		for j, f := range m.factors {
			if j != i {
				parts = append(parts, f)
			}
		}
		terms[i] = Prod(parts...)
	}
	return Sum(terms...)
}

func (m *Mul) free(set map[string]struct{}) {
	for _, f := range m.factors {
		f.free(set)
	}
}

// Pow is base raised to exp.
type Pow struct{ base, exp Expr }

// Power returns the simplified base^exp.
func Power(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok {
		switch {
		case en.val.Sign() == 0:
			return Integer(1)
		case en.val.Cmp(ratOne) == 0:
			return base
		}
	}
	if bn, ok := base.(*Num); ok {
		if bn.val.Sign() == 0 {
			// 0^positive is zero; 0^0, 0^negative, and 0^symbolic stay
			// unevaluated rather than guessing.
			if en, ok := exp.(*Num); ok && en.val.Sign() > 0 {
				return Integer(0)
			}
			return &Pow{base: base, exp: exp}
		}
		if bn.val.Cmp(ratOne) == 0 {
			return Integer(1)
		}
		if en, ok := exp.(*Num); ok && en.val.IsInt() && en.val.Num().IsInt64() {
			if k := en.val.Num().Int64(); k >= -16 && k <= 16 {
				return &Num{val: ratPowInt(bn.val, k)}
			}
		}
	}
	if inner, ok := base.(*Pow); ok {
		return Power(inner.base, Prod(inner.exp, exp))
	}
	return &Pow{base: base, exp: exp}
}

func (p *Pow) String() string {
	bs := p.base.String()
	switch b := p.base.(type) {
	case *Add, *Mul, *Pow, *Fn:
		bs = "(" + bs + ")"
	case *Num:
		if b.val.Sign() < 0 || !b.val.IsInt() {
			bs = "(" + bs + ")"
		}
	}
	es := p.exp.String()
	switch e := p.exp.(type) {
	case *Sym:
	case *Num:
		if e.val.Sign() < 0 || !e.val.IsInt() {
			es = "(" + es + ")"
		}
	default:
		es = "(" + es + ")"
	}
	return bs + "^" + es
}

func (p *Pow) Subst(name string, value Expr) Expr {
	return Power(p.base.Subst(name, value), p.exp.Subst(name, value))
}

func (p *Pow) Diff(name string) Expr {
	du := p.base.Diff(name)
	dv := p.exp.Diff(name)
	switch {
	case isZero(dv):
		// Exponent free of the variable, numeric or symbolic: power rule.
		return Prod(p.exp, Power(p.base, Sub(p.exp, Integer(1))), du)
	case isZero(du):
		return Prod(Power(p.base, p.exp), Ln(p.base), dv)
	default:
		return Prod(Power(p.base, p.exp),
			Sum(Prod(dv, Ln(p.base)), Prod(p.exp, du, Power(p.base, Integer(-1)))))
	}
}

func (p *Pow) free(set map[string]struct{}) {
	p.base.free(set)
	p.exp.free(set)
}

// FreeSymbols returns the sorted names of all symbols occurring in e.
func FreeSymbols(e Expr) []string {
	set := map[string]struct{}{}
	e.free(set)
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func isZero(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.val.Sign() == 0
}

func ratPowInt(r *big.Rat, k int64) *big.Rat {
	neg := k < 0
	if neg {
		k = -k
	}
	out := new(big.Rat).SetInt64(1)
	for i := int64(0); i < k; i++ {
		out.Mul(out, r)
	}
	if neg {
		out.Inv(out)
	}
	return out
}

// sortExprs orders expressions by their string form. Keys are computed
// once up front rather than per comparison.
func sortExprs(es []Expr) {
	if len(es) < 2 {
		return
	}
	type keyed struct {
		e   Expr
		key string
	}
	ks := make([]keyed, len(es))
	for i, e := range es {
		ks[i] = keyed{e: e, key: e.String()}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	for i := range ks {
		es[i] = ks[i].e
	}
}
