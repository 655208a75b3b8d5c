package roots

import "math"

// Ridder evaluates the midpoint, applies an exponential correction
// factor, and refines the bracket with the corrected point. Typically
// converges quadratically at the cost of two evaluations per step.
type Ridder struct{}

// NewRidder returns Ridder's method.
func NewRidder() *Ridder { return &Ridder{} }

// Name returns "ridder".
func (*Ridder) Name() string { return "ridder" }

func (*Ridder) Solve(f Func, lower, upper float64, opts Options) (Result, error) {
	opts = opts.withDefaults()
	fl, fh, done, err := checkBracket(f, lower, upper)
	if err != nil {
		return Result{}, err
	}
	if done != nil {
		return *done, nil
	}

	xl, xh := lower, upper
	ans := math.NaN()
	var fans, xm, fm float64

	for i := 1; i <= opts.MaxIterations; i++ {
		xm = 0.5 * (xl + xh)
		fm = f(xm)
		if fm == 0 {
			return Result{Root: xm, Iterations: i, Converged: true, Bracket: orderedBracket(xl, xh)}, nil
		}

		// fl and fh have opposite signs, so the radicand is positive.
		s := math.Sqrt(fm*fm - fl*fh)
		if s == 0 {
			break
		}
		step := (xm - xl) * fm / s
		if fl < fh {
			step = -step
		}
		xnew := xm + step

		if !math.IsNaN(ans) && math.Abs(xnew-ans) <= opts.Tolerance {
			return Result{Root: ans, Residual: fans, Iterations: i, Converged: true, Bracket: orderedBracket(xl, xh)}, nil
		}
		ans, fans = xnew, f(xnew)
		if fans == 0 {
			return Result{Root: ans, Iterations: i, Converged: true, Bracket: orderedBracket(xl, xh)}, nil
		}

		switch {
		case (fm > 0) != (fans > 0):
			xl, fl = xm, fm
			xh, fh = ans, fans
		case (fl > 0) != (fans > 0):
			xh, fh = ans, fans
		default:
			xl, fl = ans, fans
		}
		if math.Abs(xh-xl) <= opts.Tolerance {
			return Result{Root: ans, Residual: fans, Iterations: i, Converged: true, Bracket: orderedBracket(xl, xh)}, nil
		}
	}

	if math.IsNaN(ans) {
		ans, fans = xm, fm
	}
	return Result{Root: ans, Residual: fans, Iterations: opts.MaxIterations, Bracket: orderedBracket(xl, xh)}, nil
}
