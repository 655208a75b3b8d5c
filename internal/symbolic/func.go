package symbolic

// Fn is a named unary function application. The set is fixed to ln and
// exp, which is what the derivative rules produce and the parser accepts.
type Fn struct {
	name string
	arg  Expr
}

// Ln returns the natural logarithm of arg.
func Ln(arg Expr) Expr { return (&Fn{name: "ln", arg: arg}).Simplify() }

// Exp returns e raised to arg.
func Exp(arg Expr) Expr { return (&Fn{name: "exp", arg: arg}).Simplify() }

func (f *Fn) Simplify() Expr {
	arg := f.arg.Simplify()
	switch f.name {
	case "ln":
		if n, ok := arg.(*Num); ok && n.val.Cmp(ratOne) == 0 {
			return Integer(0)
		}
		if inner, ok := arg.(*Fn); ok && inner.name == "exp" {
			return inner.arg
		}
	case "exp":
		if isZero(arg) {
			return Integer(1)
		}
		if inner, ok := arg.(*Fn); ok && inner.name == "ln" {
			return inner.arg
		}
	}
	return &Fn{name: f.name, arg: arg}
}

func (f *Fn) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Fn) Subst(name string, value Expr) Expr {
	return (&Fn{name: f.name, arg: f.arg.Subst(name, value)}).Simplify()
}

func (f *Fn) Diff(name string) Expr {
	da := f.arg.Diff(name)
	if isZero(da) {
		return Integer(0)
	}
	switch f.name {
	case "ln":
		return Prod(da, Power(f.arg, Integer(-1)))
	case "exp":
		return Prod(da, Exp(f.arg))
	}
	panic("symbolic: unknown function " + f.name)
}

func (f *Fn) free(set map[string]struct{}) { f.arg.free(set) }
