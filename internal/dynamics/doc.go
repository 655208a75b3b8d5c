// Package dynamics simulates transition paths of the capital equation
// of motion.
//
// The equation dk/dt = s*f(k) - (g+n+delta)*k is a scalar autonomous
// ODE; [Simulate] integrates it with a fixed-step [Stepper] (Euler or
// classical RK4) and records the per-effective-worker series k, y, and
// c alongside the level series implied by A(t) = A0*e^(g*t) and
// L(t) = L0*e^(n*t).
//
// Long runs honor context cancellation between steps. A state that
// leaves the finite range stops the run early and marks the [Path] as
// truncated rather than failing.
package dynamics
