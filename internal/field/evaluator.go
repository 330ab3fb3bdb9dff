package field

import (
	"math"

	"github.com/san-kum/efield/internal/geom"
	"github.com/san-kum/efield/internal/scene"
)

const (
	// CoulombConstant in the lab's SI-like units.
	CoulombConstant = 8.9875e9

	// ShieldEpsilonR is the permittivity sentinel used inside shields.
	ShieldEpsilonR = 1e9

	vacuumEpsilonR = 1.0
)

// Medium names what determined εr at a point.
type Medium int

const (
	Vacuum Medium = iota
	InDielectric
	InShield
)

func (m Medium) String() string {
	switch m {
	case InDielectric:
		return "dielectric"
	case InShield:
		return "shield"
	default:
		return "vacuum"
	}
}

// Evaluator holds the constants of the field model.
type Evaluator struct {
	K              float64
	ShieldEpsilonR float64
}

func NewEvaluator() *Evaluator {
	return &Evaluator{K: CoulombConstant, ShieldEpsilonR: ShieldEpsilonR}
}

// Contribution is one charge's share of the field at a query point.
type Contribution struct {
	// Index is the charge's position in the snapshot.
	Index    int
	Q        float64
	RSquared float64
	// Angle is atan2(dy, dx) of the displacement from charge to point.
	Angle float64
	E     geom.Vec
}

// Details explains how a field value was assembled.
type Details struct {
	EpsilonR float64
	Medium   Medium
	// Region is the index of the dielectric or shield that set EpsilonR,
	// or -1 in vacuum.
	Region        int
	Contributions []Contribution
}

// Permittivity resolves εr at p: the first dielectric containing p, then
// overridden by any shield containing p.
func (ev *Evaluator) Permittivity(p geom.Vec, snap scene.Snapshot) (float64, Medium, int) {
	eps, medium, region := vacuumEpsilonR, Vacuum, -1
	if i, ok := snap.DielectricAt(p); ok {
		eps, medium, region = snap.Dielectrics[i].EpsilonR, InDielectric, i
	}
	if i, ok := snap.ShieldAt(p); ok {
		eps, medium, region = ev.ShieldEpsilonR, InShield, i
	}
	return eps, medium, region
}

// Evaluate returns the net field at p.
func (ev *Evaluator) Evaluate(p geom.Vec, snap scene.Snapshot) geom.Vec {
	eps, _, _ := ev.Permittivity(p, snap)
	var total geom.Vec
	for _, c := range snap.Charges {
		e, _, _, ok := ev.contribution(p, c, eps)
		if !ok {
			continue
		}
		total = total.Add(e)
	}
	return total
}

// EvaluateWithDetails returns the net field at p together with the resolved
// medium and the per-charge breakdown. Charges coincident with p are left
// out of the breakdown.
func (ev *Evaluator) EvaluateWithDetails(p geom.Vec, snap scene.Snapshot) (geom.Vec, Details) {
	eps, medium, region := ev.Permittivity(p, snap)
	d := Details{
		EpsilonR:      eps,
		Medium:        medium,
		Region:        region,
		Contributions: make([]Contribution, 0, len(snap.Charges)),
	}

	var total geom.Vec
	for i, c := range snap.Charges {
		e, r2, angle, ok := ev.contribution(p, c, eps)
		if !ok {
			continue
		}
		total = total.Add(e)
		d.Contributions = append(d.Contributions, Contribution{
			Index:    i,
			Q:        c.Q,
			RSquared: r2,
			Angle:    angle,
			E:        e,
		})
	}
	return total, d
}

// Magnitude is a convenience for |Evaluate(p)|.
func (ev *Evaluator) Magnitude(p geom.Vec, snap scene.Snapshot) float64 {
	return ev.Evaluate(p, snap).Norm()
}

func (ev *Evaluator) contribution(p geom.Vec, c scene.Charge, eps float64) (geom.Vec, float64, float64, bool) {
	d := p.Sub(c.Pos)
	r2 := d.Norm2()
	if r2 == 0 {
		return geom.Vec{}, 0, 0, false
	}
	mag := ev.K * c.Q / (r2 * eps)
	angle := math.Atan2(d.Y, d.X)
	return geom.Vec{X: mag * math.Cos(angle), Y: mag * math.Sin(angle)}, r2, angle, true
}
