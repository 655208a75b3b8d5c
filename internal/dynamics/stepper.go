package dynamics

import (
	"errors"
	"fmt"
)

// Field is the right-hand side of the ODE dk/dt = F(t, k).
type Field func(t, k float64) float64

// Stepper advances a scalar ODE state by one fixed step.
type Stepper interface {
	Name() string
	Step(f Field, t, k, dt float64) float64
}

// ErrUnknownStepper indicates an unregistered stepper name.
var ErrUnknownStepper = errors.New("dynamics: unknown stepper")

// NewStepper returns the named stepper: "euler" or "rk4".
func NewStepper(name string) (Stepper, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownStepper, name)
}

// Steppers lists the registered stepper names.
func Steppers() []string { return []string{"euler", "rk4"} }
