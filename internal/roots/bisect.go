package roots

// Bisect halves the bracket until its width falls under the tolerance.
// Linear convergence, but it cannot be fooled by any shape of f.
type Bisect struct{}

// NewBisect returns the bisection method.
func NewBisect() *Bisect { return &Bisect{} }

// Name returns "bisect".
func (*Bisect) Name() string { return "bisect" }

func (*Bisect) Solve(f Func, lower, upper float64, opts Options) (Result, error) {
	opts = opts.withDefaults()
	fl, _, done, err := checkBracket(f, lower, upper)
	if err != nil {
		return Result{}, err
	}
	if done != nil {
		return *done, nil
	}

	lo, hi := lower, upper
	var mid, fm float64
	for i := 1; i <= opts.MaxIterations; i++ {
		mid = 0.5 * (lo + hi)
		fm = f(mid)
		if fm == 0 || hi-lo < opts.Tolerance {
			return Result{Root: mid, Residual: fm, Iterations: i, Converged: true, Bracket: [2]float64{lo, hi}}, nil
		}
		if (fm > 0) == (fl > 0) {
			lo, fl = mid, fm
		} else {
			hi = mid
		}
	}
	return Result{Root: mid, Residual: fm, Iterations: opts.MaxIterations, Bracket: [2]float64{lo, hi}}, nil
}
