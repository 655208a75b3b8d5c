package solow

import "fmt"

// Params holds named model parameters. The reserved keys g (technology
// growth), n (labor growth), s (savings rate), delta (depreciation),
// A0, and L0 (initial technology and labor) are required by every
// model; families add their own keys. Unknown extra keys are tolerated.
type Params map[string]float64

// reservedKeys in the order their checks run and report.
var reservedKeys = []string{"g", "n", "s", "delta", "A0", "L0"}

// Clone returns an independent copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Constraint is a family-specific parameter restriction.
type Constraint func(Params) error

// rangeOpen restricts key to the open interval (lo, hi).
func rangeOpen(key string, lo, hi float64) Constraint {
	return func(p Params) error {
		if v := p[key]; !(v > lo && v < hi) {
			return fmt.Errorf("%w: %s %g outside (%g, %g)", ErrInvalidParameter, key, v, lo, hi)
		}
		return nil
	}
}

// validate checks p in a fixed order so that a given violation always
// produces the same message: key presence, then delta, the growth sum,
// A0, L0, s, and finally the family constraints. The first violation
// wins. The negated comparisons also catch NaN values.
func validate(p Params, required []string, constraints []Constraint) error {
	for _, key := range reservedKeys {
		if _, ok := p[key]; !ok {
			return fmt.Errorf("%w: missing %q", ErrInvalidParameter, key)
		}
	}
	for _, key := range required {
		if _, ok := p[key]; !ok {
			return fmt.Errorf("%w: missing %q", ErrInvalidParameter, key)
		}
	}

	if delta := p["delta"]; !(delta > 0 && delta < 1) {
		return fmt.Errorf("%w: delta %g outside (0, 1)", ErrInvalidParameter, delta)
	}
	if sum := p["g"] + p["n"] + p["delta"]; !(sum > 0) {
		return fmt.Errorf("%w: g + n + delta = %g, must be positive for the capital ratio to settle", ErrInvalidParameter, sum)
	}
	if a0 := p["A0"]; !(a0 > 0) {
		return fmt.Errorf("%w: A0 %g must be positive", ErrInvalidParameter, a0)
	}
	if l0 := p["L0"]; !(l0 > 0) {
		return fmt.Errorf("%w: L0 %g must be positive", ErrInvalidParameter, l0)
	}
	if s := p["s"]; !(s > 0 && s < 1) {
		return fmt.Errorf("%w: s %g outside (0, 1)", ErrInvalidParameter, s)
	}

	for _, check := range constraints {
		if err := check(p); err != nil {
			return err
		}
	}
	return nil
}
