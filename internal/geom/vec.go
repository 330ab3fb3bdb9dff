// Package geom provides the 2D vector and rectangle primitives shared by the
// scene model, the field evaluator and the line tracer.
package geom

import (
	"fmt"
	"math"
)

// Vec is a point or displacement in world coordinates.
type Vec struct {
	X, Y float64
}

func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f} }

// Norm2 is the squared Euclidean length.
func (v Vec) Norm2() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec) Norm() float64 { return math.Hypot(v.X, v.Y) }

// Angle returns atan2(Y, X) in radians.
func (v Vec) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Unit returns v scaled to length 1. The zero vector is returned unchanged.
func (v Vec) Unit() Vec {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return Vec{v.X / n, v.Y / n}
}

// Dist returns the distance between two points.
func (v Vec) Dist(o Vec) float64 { return v.Sub(o).Norm() }

// IsValid reports whether both components are finite.
func (v Vec) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Polar builds a vector of length r at angle theta.
func Polar(r, theta float64) Vec {
	s, c := math.Sincos(theta)
	return Vec{r * c, r * s}
}

func (v Vec) String() string {
	return fmt.Sprintf("(%.4g, %.4g)", v.X, v.Y)
}
