package roots

import "math"

// Brent combines inverse quadratic interpolation, the secant rule, and
// bisection, accepting an interpolated step only when it stays inside
// the bracket and shrinks fast enough. Superlinear on well-behaved
// functions, never worse than bisection.
type Brent struct{}

// NewBrent returns Brent's method.
func NewBrent() *Brent { return &Brent{} }

// Name returns "brent".
func (*Brent) Name() string { return "brent" }

const brentEps = 2.220446049250313e-16

func (*Brent) Solve(f Func, lower, upper float64, opts Options) (Result, error) {
	opts = opts.withDefaults()
	fa, fb, done, err := checkBracket(f, lower, upper)
	if err != nil {
		return Result{}, err
	}
	if done != nil {
		return *done, nil
	}

	a, b := lower, upper
	c, fc := a, fa
	d := b - a
	e := d

	for i := 1; i <= opts.MaxIterations; i++ {
		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 := 2*brentEps*math.Abs(b) + 0.5*opts.Tolerance
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 {
			return Result{Root: b, Residual: fb, Iterations: i, Converged: true, Bracket: orderedBracket(b, c)}, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			// Attempt inverse quadratic interpolation (secant when only
			// two points are distinct).
			s := fb / fa
			var p, q float64
			if a == c {
				p = 2 * xm * s
				q = 1 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			min1 := 3*xm*q - math.Abs(tol1*q)
			min2 := math.Abs(e * q)
			if 2*p < math.Min(min1, min2) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb = f(b)
	}
	return Result{Root: b, Residual: fb, Iterations: opts.MaxIterations, Bracket: orderedBracket(b, c)}, nil
}
