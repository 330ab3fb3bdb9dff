package geom

import "math"

// Rect is an axis-aligned rectangle anchored at its minimum corner.
// Contains treats it as closed: both edges are inside.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectFromCorners normalizes two opposite drag corners into a Rect with
// non-negative size.
func RectFromCorners(a, b Vec) Rect {
	return Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

func (r Rect) Min() Vec { return Vec{r.X, r.Y} }

func (r Rect) Max() Vec { return Vec{r.X + r.Width, r.Y + r.Height} }

func (r Rect) Center() Vec { return Vec{r.X + r.Width/2, r.Y + r.Height/2} }

func (r Rect) Contains(p Vec) bool {
	return r.X <= p.X && p.X <= r.X+r.Width &&
		r.Y <= p.Y && p.Y <= r.Y+r.Height
}

// IsValid reports whether the rectangle has finite coordinates and a
// non-negative size. Zero-area rectangles are valid.
func (r Rect) IsValid() bool {
	for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.Width >= 0 && r.Height >= 0
}

// Clip returns the point where the segment from a (inside r) to b leaves r.
// If b is inside r it is returned unchanged.
func (r Rect) Clip(a, b Vec) Vec {
	if r.Contains(b) {
		return b
	}
	d := b.Sub(a)
	t := 1.0
	max := r.Max()
	if d.X > 0 && b.X > max.X {
		t = math.Min(t, (max.X-a.X)/d.X)
	}
	if d.X < 0 && b.X < r.X {
		t = math.Min(t, (r.X-a.X)/d.X)
	}
	if d.Y > 0 && b.Y > max.Y {
		t = math.Min(t, (max.Y-a.Y)/d.Y)
	}
	if d.Y < 0 && b.Y < r.Y {
		t = math.Min(t, (r.Y-a.Y)/d.Y)
	}
	if t < 0 {
		t = 0
	}
	p := a.Add(d.Scale(t))
	// keep the clipped point on the boundary despite rounding
	p.X = math.Max(r.X, math.Min(max.X, p.X))
	p.Y = math.Max(r.Y, math.Min(max.Y, p.Y))
	return p
}

// OnBoundary reports whether p lies on the edge of r within tol.
func (r Rect) OnBoundary(p Vec, tol float64) bool {
	max := r.Max()
	inX := p.X >= r.X-tol && p.X <= max.X+tol
	inY := p.Y >= r.Y-tol && p.Y <= max.Y+tol
	if !inX || !inY {
		return false
	}
	return math.Abs(p.X-r.X) <= tol || math.Abs(p.X-max.X) <= tol ||
		math.Abs(p.Y-r.Y) <= tol || math.Abs(p.Y-max.Y) <= tol
}
