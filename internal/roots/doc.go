// Package roots provides bracketing root-finders for scalar functions.
//
// All methods share the [Method] interface and the same contract: the
// caller supplies an interval whose endpoint values differ in sign, and
// the solver refines it until the tolerance is met or the iteration
// budget runs out.
//
//   - [Bisect]: interval halving; slowest, unconditionally robust
//   - [Brent]: inverse quadratic interpolation with bisection fallback
//   - [Ridder]: exponential regula falsi
//
// An invalid bracket (inverted interval, no sign change, or a non-finite
// endpoint value) fails with [ErrInvalidBracket]. Running out of
// iterations is not an error: the [Result] carries the best estimate
// with Converged set to false, and the caller decides.
//
// # Thread Safety
//
// Methods hold no state between calls; a single instance may be used
// from multiple goroutines as long as the supplied function is itself
// safe for concurrent calls.
package roots
