package dynamics

// Euler is the explicit first-order method. One evaluation per step;
// error shrinks linearly with dt.
type Euler struct{}

// NewEuler returns the Euler stepper.
func NewEuler() *Euler { return &Euler{} }

// Name returns "euler".
func (*Euler) Name() string { return "euler" }

func (*Euler) Step(f Field, t, k, dt float64) float64 {
	return k + dt*f(t, k)
}
