package scene

import (
	"fmt"
	"math"

	"github.com/san-kum/efield/internal/geom"
)

// Charge is a point source with a signed magnitude.
type Charge struct {
	Pos geom.Vec
	Q   float64
}

// Dielectric is a closed rectangle with relative permittivity EpsilonR.
type Dielectric struct {
	Rect     geom.Rect
	EpsilonR float64
}

// Shield is a closed rectangle modeling an ideal conductor.
type Shield struct {
	Rect geom.Rect
}

// Snapshot is a read-only copy of a scene taken between edits.
// Slice order is insertion order.
type Snapshot struct {
	Charges     []Charge
	Dielectrics []Dielectric
	Shields     []Shield
}

// DielectricAt returns the first dielectric, in insertion order, whose
// rectangle contains p.
func (s Snapshot) DielectricAt(p geom.Vec) (int, bool) {
	for i, d := range s.Dielectrics {
		if d.Rect.Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// ShieldAt returns the first shield, in insertion order, containing p.
func (s Snapshot) ShieldAt(p geom.Vec) (int, bool) {
	for i, sh := range s.Shields {
		if sh.Rect.Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// Empty reports whether the snapshot holds nothing to evaluate or draw.
func (s Snapshot) Empty() bool {
	return len(s.Charges) == 0 && len(s.Dielectrics) == 0 && len(s.Shields) == 0
}

// Scene is the mutable scene owned by the application loop.
// It is not safe for concurrent use.
type Scene struct {
	charges     []Charge
	dielectrics []Dielectric
	shields     []Shield
}

func New() *Scene {
	return &Scene{}
}

func (s *Scene) AddCharge(pos geom.Vec, q float64) error {
	if !pos.IsValid() {
		return s.reject("add charge", ErrInvalidCharge, fmt.Sprintf("position %v", pos))
	}
	if q == 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return s.reject("add charge", ErrInvalidCharge, fmt.Sprintf("q=%v", q))
	}
	s.charges = append(s.charges, Charge{Pos: pos, Q: q})
	Logger().Debug("charge added", "x", pos.X, "y", pos.Y, "q", q)
	return nil
}

// RemoveChargesNear removes every charge within radius of pos (inclusive)
// and returns how many were removed.
func (s *Scene) RemoveChargesNear(pos geom.Vec, radius float64) int {
	kept := s.charges[:0]
	removed := 0
	for _, c := range s.charges {
		if c.Pos.Dist(pos) <= radius {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	// zero the tail so removed charges are not retained by the backing array
	for i := len(kept); i < len(s.charges); i++ {
		s.charges[i] = Charge{}
	}
	s.charges = kept
	Logger().Debug("charges removed", "x", pos.X, "y", pos.Y, "radius", radius, "count", removed)
	return removed
}

// AddDielectric adds a dielectric spanning the two drag corners a and b.
func (s *Scene) AddDielectric(a, b geom.Vec, epsilonR float64) error {
	if math.IsNaN(epsilonR) || math.IsInf(epsilonR, 0) || epsilonR <= 0 {
		return s.reject("add dielectric", ErrInvalidPermittivity, fmt.Sprintf("epsilon_r=%v", epsilonR))
	}
	r := geom.RectFromCorners(a, b)
	if !r.IsValid() {
		return s.reject("add dielectric", ErrInvalidRegion, fmt.Sprintf("corners %v %v", a, b))
	}
	s.dielectrics = append(s.dielectrics, Dielectric{Rect: r, EpsilonR: epsilonR})
	Logger().Debug("dielectric added",
		"x", r.X, "y", r.Y, "w", r.Width, "h", r.Height, "epsilon_r", epsilonR)
	return nil
}

// RemoveDielectricAt removes the first dielectric containing p.
func (s *Scene) RemoveDielectricAt(p geom.Vec) bool {
	i, ok := s.snapshotView().DielectricAt(p)
	if !ok {
		Logger().Debug("no dielectric at point", "x", p.X, "y", p.Y)
		return false
	}
	r := s.dielectrics[i].Rect
	s.dielectrics = append(s.dielectrics[:i], s.dielectrics[i+1:]...)
	Logger().Debug("dielectric removed", "x", r.X, "y", r.Y)
	return true
}

// AddShield adds a conducting shield spanning the two drag corners.
func (s *Scene) AddShield(a, b geom.Vec) error {
	r := geom.RectFromCorners(a, b)
	if !r.IsValid() {
		return s.reject("add shield", ErrInvalidRegion, fmt.Sprintf("corners %v %v", a, b))
	}
	s.shields = append(s.shields, Shield{Rect: r})
	Logger().Debug("shield added", "x", r.X, "y", r.Y, "w", r.Width, "h", r.Height)
	return nil
}

// RemoveShieldAt removes the first shield containing p.
func (s *Scene) RemoveShieldAt(p geom.Vec) bool {
	i, ok := s.snapshotView().ShieldAt(p)
	if !ok {
		Logger().Debug("no shield at point", "x", p.X, "y", p.Y)
		return false
	}
	r := s.shields[i].Rect
	s.shields = append(s.shields[:i], s.shields[i+1:]...)
	Logger().Debug("shield removed", "x", r.X, "y", r.Y)
	return true
}

func (s *Scene) Clear() {
	s.charges = nil
	s.dielectrics = nil
	s.shields = nil
	Logger().Debug("scene cleared")
}

func (s *Scene) NumCharges() int     { return len(s.charges) }
func (s *Scene) NumDielectrics() int { return len(s.dielectrics) }
func (s *Scene) NumShields() int     { return len(s.shields) }

// Snapshot copies the current contents. The result shares no memory with the
// scene, so later edits do not affect it.
func (s *Scene) Snapshot() Snapshot {
	return Snapshot{
		Charges:     append([]Charge(nil), s.charges...),
		Dielectrics: append([]Dielectric(nil), s.dielectrics...),
		Shields:     append([]Shield(nil), s.shields...),
	}
}

// snapshotView aliases the live slices for internal lookups.
func (s *Scene) snapshotView() Snapshot {
	return Snapshot{Charges: s.charges, Dielectrics: s.dielectrics, Shields: s.shields}
}

func (s *Scene) reject(op string, err error, detail string) error {
	e := &EditError{Op: op, Detail: detail, Wrapped: err}
	Logger().Warn("scene edit rejected", "op", op, "err", err, "detail", detail)
	return e
}
