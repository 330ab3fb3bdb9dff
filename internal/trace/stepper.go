package trace

import (
	"fmt"

	"github.com/san-kum/efield/internal/geom"
)

// Method selects how a line advances between samples.
type Method string

const (
	MethodEuler Method = "euler"
	MethodRK4   Method = "rk4"
)

// DirFunc returns the unit tracing direction at p, or false where the field
// vanishes or is not finite.
type DirFunc func(p geom.Vec) (geom.Vec, bool)

// Stepper advances a point by length h along a direction field. k1 is the
// direction already evaluated at p.
type Stepper interface {
	Step(dir DirFunc, p, k1 geom.Vec, h float64) geom.Vec
}

func NewStepper(m Method) (Stepper, error) {
	switch m {
	case MethodEuler, "":
		return Euler{}, nil
	case MethodRK4:
		return RK4{}, nil
	default:
		return nil, fmt.Errorf("unknown trace method: %s", m)
	}
}

// Euler takes one straight step along k1.
type Euler struct{}

func (Euler) Step(_ DirFunc, p, k1 geom.Vec, h float64) geom.Vec {
	return p.Add(k1.Scale(h))
}

// RK4 is the classic fourth-order step on the normalized direction field.
// If an intermediate stage lands where the field vanishes it falls back to
// an Euler step.
type RK4 struct{}

func (RK4) Step(dir DirFunc, p, k1 geom.Vec, h float64) geom.Vec {
	k2, ok := dir(p.Add(k1.Scale(h / 2)))
	if !ok {
		return Euler{}.Step(dir, p, k1, h)
	}
	k3, ok := dir(p.Add(k2.Scale(h / 2)))
	if !ok {
		return Euler{}.Step(dir, p, k1, h)
	}
	k4, ok := dir(p.Add(k3.Scale(h)))
	if !ok {
		return Euler{}.Step(dir, p, k1, h)
	}
	sum := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	return p.Add(sum.Scale(h / 6))
}
