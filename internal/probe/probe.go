// Package probe turns a single field evaluation into the structured
// breakdown shown in the probe panel.
package probe

import (
	"fmt"
	"math"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/geom"
	"github.com/san-kum/efield/internal/scene"
)

// Contribution is one charge's share of the probed field.
type Contribution struct {
	// Number is the 1-based display number of the charge.
	Number   int
	Q        float64
	R        float64
	RSquared float64
	// Angle is the charge-to-point displacement angle in radians.
	Angle    float64
	// AngleDeg is the direction of this charge's field in degrees.
	AngleDeg float64
	E        geom.Vec
}

// Result is the read-only breakdown of the field at Point.
type Result struct {
	Point         geom.Vec
	E             geom.Vec
	Magnitude     float64
	DirectionDeg  float64
	EpsilonR      float64
	Medium        field.Medium
	Contributions []Contribution
}

// Probe evaluates the field at p and derives the display quantities.
func Probe(ev *field.Evaluator, p geom.Vec, snap scene.Snapshot) Result {
	e, d := ev.EvaluateWithDetails(p, snap)
	r := Result{
		Point:         p,
		E:             e,
		Magnitude:     math.Hypot(e.X, e.Y),
		DirectionDeg:  degrees(math.Atan2(e.Y, e.X)),
		EpsilonR:      d.EpsilonR,
		Medium:        d.Medium,
		Contributions: make([]Contribution, len(d.Contributions)),
	}
	for i, c := range d.Contributions {
		r.Contributions[i] = Contribution{
			Number:   c.Index + 1,
			Q:        c.Q,
			R:        math.Sqrt(c.RSquared),
			RSquared: c.RSquared,
			Angle:    c.Angle,
			AngleDeg: degrees(math.Atan2(c.E.Y, c.E.X)),
			E:        c.E,
		}
	}
	return r
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Lines renders the breakdown as plain text, one entry per line, in the
// order the probe panel shows it. Blank strings separate sections.
func (r Result) Lines() []string {
	lines := []string{
		fmt.Sprintf("probe at (%.2f, %.2f)", r.Point.X, r.Point.Y),
		"E = sum_i k q_i / (eps_r r_i^2) r_i",
		"",
		r.mediumLine(),
		"",
		"contributions:",
	}
	for _, c := range r.Contributions {
		lines = append(lines,
			fmt.Sprintf("charge %d:", c.Number),
			fmt.Sprintf("  q%d = %+.2e C", c.Number, c.Q),
			fmt.Sprintf("  r%d = %.2f m", c.Number, c.R),
			fmt.Sprintf("  theta%d = %.2f deg", c.Number, c.AngleDeg),
			fmt.Sprintf("  E%dx = %.2e N/C", c.Number, c.E.X),
			fmt.Sprintf("  E%dy = %.2e N/C", c.Number, c.E.Y),
			"",
		)
	}
	lines = append(lines,
		"total field:",
		fmt.Sprintf("  Ex = %.2e N/C", r.E.X),
		fmt.Sprintf("  Ey = %.2e N/C", r.E.Y),
		fmt.Sprintf("  |E| = %.2e N/C", r.Magnitude),
		fmt.Sprintf("  theta = %.2f deg", r.DirectionDeg),
	)
	return lines
}

func (r Result) mediumLine() string {
	switch r.Medium {
	case field.InShield:
		return fmt.Sprintf("inside shield (eps_r = %.2e)", r.EpsilonR)
	case field.InDielectric:
		return fmt.Sprintf("inside dielectric (eps_r = %.2f)", r.EpsilonR)
	default:
		return "in free space (eps_r = 1.00)"
	}
}
