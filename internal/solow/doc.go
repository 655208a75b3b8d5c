// Package solow models growth with exogenous saving: capital per unit
// of effective labor accumulates through s*f(k) - (g+n+delta)*k.
//
// The package derives everything from a single aggregate production
// function over the symbols K, A, and L:
//
//   - [Params]: validated named parameters (g, n, s, delta, A0, L0, ...)
//   - [Family]: registered production templates (cobb_douglas, ces)
//   - [Model]: one parameter set with compiled evaluators for f(k),
//     f'(k), and the equation of motion
//   - [GoldenRule]: consumption-maximizing steady state
//
// Construction validates, compiles, and binds everything up front; a
// model either exists in a fully usable state or not at all. Parameter
// replacement goes through the same path and swaps in a complete new
// snapshot only on success.
//
// # Example
//
//	m, _ := solow.NewFamily("ces", solow.Params{
//		"g": 0.02, "n": 0.03, "s": 0.15, "delta": 0.05,
//		"A0": 1, "L0": 1, "alpha": 0.33, "sigma": 0.95,
//	})
//	kstar, _ := m.SteadyState()
//
// # Thread Safety
//
// Model instances are NOT thread-safe: SetParams and SetParam replace
// the active snapshot without locking. Callers that share a model
// across goroutines serialize access themselves.
package solow
