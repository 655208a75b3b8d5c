package dynamics

// RK4 is the classical fourth-order Runge-Kutta method. Four
// evaluations per step; the workhorse default.
type RK4 struct{}

// NewRK4 returns the RK4 stepper.
func NewRK4() *RK4 { return &RK4{} }

// Name returns "rk4".
func (*RK4) Name() string { return "rk4" }

func (*RK4) Step(f Field, t, k, dt float64) float64 {
	half := dt / 2
	k1 := f(t, k)
	k2 := f(t+half, k+half*k1)
	k3 := f(t+half, k+half*k2)
	k4 := f(t+dt, k+dt*k3)
	return k + dt/6*(k1+2*k2+2*k3+k4)
}
