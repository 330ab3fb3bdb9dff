package trace

import "github.com/san-kum/efield/internal/geom"

// StopReason records why a line ended.
type StopReason int

const (
	StopStepCap StopReason = iota
	StopZeroField
	StopViewport
	StopShield
	// StopSingular marks a non-finite field, e.g. a seed numerically on top
	// of another charge.
	StopSingular
)

var stopNames = [...]string{"step_cap", "zero_field", "viewport", "shield", "singular"}

func (r StopReason) String() string {
	if int(r) < len(stopNames) {
		return stopNames[r]
	}
	return "unknown"
}

// Arrow is a direction marker placed on a line. Angle is in radians and
// points along the field.
type Arrow struct {
	Pos   geom.Vec
	Angle float64
}

// Line is one traced field line.
type Line struct {
	// Charge is the index of the seeding charge in the snapshot.
	Charge int
	// Sign is +1 when tracing along the field, -1 when tracing against it.
	Sign   float64
	Points []geom.Vec
	Arrows []Arrow
	Stop   StopReason
}

// Degenerate reports whether the line has fewer than two points.
func (l Line) Degenerate() bool {
	return len(l.Points) < 2
}

// Length is the polyline's arc length.
func (l Line) Length() float64 {
	total := 0.0
	for i := 1; i < len(l.Points); i++ {
		total += l.Points[i].Dist(l.Points[i-1])
	}
	return total
}

// Stats summarizes a set of traced lines.
type Stats struct {
	Lines      int
	Degenerate int
	Points     int
	Arrows     int
	MaxPoints  int
	ByStop     map[StopReason]int
}

func Summarize(lines []Line) Stats {
	s := Stats{ByStop: make(map[StopReason]int)}
	for _, l := range lines {
		s.Lines++
		s.Points += len(l.Points)
		s.Arrows += len(l.Arrows)
		if l.Degenerate() {
			s.Degenerate++
		}
		if len(l.Points) > s.MaxPoints {
			s.MaxPoints = len(l.Points)
		}
		s.ByStop[l.Stop]++
	}
	return s
}
