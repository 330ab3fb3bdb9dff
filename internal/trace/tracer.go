// Package trace integrates field lines of a scene.
//
// Each charge seeds a fixed number of lines on a small circle around it.
// Lines leave positive charges along the field and leave negative charges
// against it, so every line starts at its own charge. A line advances a fixed
// distance per step along the normalized field and stops at the first of:
//
//   - the step cap (the line never holds more than MaxSteps points)
//   - a vanishing field
//   - the viewport edge (the last point is clipped onto the edge)
//   - a shield (the step that would enter it is dropped)
//
// Lines are recomputed from scratch on every call; nothing is cached between
// frames.
package trace

import (
	"math"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/geom"
	"github.com/san-kum/efield/internal/scene"
)

const (
	DefaultLinesPerCharge = 32
	DefaultSeedRadius     = 10.0
	DefaultStepLength     = 5.0
	DefaultMaxSteps       = 100
	DefaultArrowInterval  = 10
)

// Config sets the tracing resolution. Lengths are in world units.
type Config struct {
	LinesPerCharge int
	SeedRadius     float64
	StepLength     float64
	MaxSteps       int
	ArrowInterval  int
	// MinField is the magnitude at or below which the field counts as zero.
	MinField float64
	Method   Method
}

func DefaultConfig() Config {
	return Config{
		LinesPerCharge: DefaultLinesPerCharge,
		SeedRadius:     DefaultSeedRadius,
		StepLength:     DefaultStepLength,
		MaxSteps:       DefaultMaxSteps,
		ArrowInterval:  DefaultArrowInterval,
		Method:         MethodEuler,
	}
}

// Viewport is the visible world rectangle. It only bounds tracing; it plays
// no part in the physics.
type Viewport struct {
	Bounds geom.Rect
}

// NewViewport spans the rectangle between two corners.
func NewViewport(a, b geom.Vec) Viewport {
	return Viewport{Bounds: geom.RectFromCorners(a, b)}
}

// Tracer traces field lines with a fixed configuration.
type Tracer struct {
	ev      *field.Evaluator
	cfg     Config
	stepper Stepper
}

// New returns a tracer. Non-positive counts and lengths in cfg are replaced
// by defaults; an unknown method is an error.
func New(ev *field.Evaluator, cfg Config) (*Tracer, error) {
	def := DefaultConfig()
	if cfg.LinesPerCharge <= 0 {
		cfg.LinesPerCharge = def.LinesPerCharge
	}
	if !(cfg.SeedRadius > 0) {
		cfg.SeedRadius = def.SeedRadius
	}
	if !(cfg.StepLength > 0) {
		cfg.StepLength = def.StepLength
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = def.MaxSteps
	}
	if cfg.ArrowInterval <= 0 {
		cfg.ArrowInterval = def.ArrowInterval
	}
	if cfg.MinField < 0 || math.IsNaN(cfg.MinField) {
		cfg.MinField = 0
	}
	stepper, err := NewStepper(cfg.Method)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		ev = field.NewEvaluator()
	}
	return &Tracer{ev: ev, cfg: cfg, stepper: stepper}, nil
}

func (t *Tracer) Config() Config { return t.cfg }

// Trace returns LinesPerCharge lines for every charge, grouped by charge in
// snapshot order.
func (t *Tracer) Trace(snap scene.Snapshot, vp Viewport) []Line {
	lines := make([]Line, 0, len(snap.Charges)*t.cfg.LinesPerCharge)
	for i := range snap.Charges {
		lines = append(lines, t.TraceCharge(snap, i, vp)...)
	}
	return lines
}

// TraceCharge traces the lines seeded around charge i.
func (t *Tracer) TraceCharge(snap scene.Snapshot, i int, vp Viewport) []Line {
	if i < 0 || i >= len(snap.Charges) {
		return nil
	}
	c := snap.Charges[i]
	sign := -1.0
	if c.Q > 0 {
		sign = 1.0
	}

	n := t.cfg.LinesPerCharge
	lines := make([]Line, n)
	for k := 0; k < n; k++ {
		angle := float64(k) * 2 * math.Pi / float64(n)
		seed := c.Pos.Add(geom.Polar(t.cfg.SeedRadius, angle))
		lines[k] = t.traceFrom(snap, seed, sign, vp)
		lines[k].Charge = i
	}
	return lines
}

func (t *Tracer) traceFrom(snap scene.Snapshot, seed geom.Vec, sign float64, vp Viewport) Line {
	line := Line{Sign: sign}
	if _, inShield := snap.ShieldAt(seed); inShield {
		line.Stop = StopShield
		return line
	}
	if !vp.Bounds.Contains(seed) {
		line.Stop = StopViewport
		return line
	}

	dir := func(p geom.Vec) (geom.Vec, bool) {
		e := t.ev.Evaluate(p, snap)
		mag := e.Norm()
		if mag <= t.cfg.MinField || math.IsNaN(mag) || math.IsInf(mag, 0) {
			return geom.Vec{}, false
		}
		return e.Scale(sign / mag), true
	}

	line.Points = make([]geom.Vec, 1, t.cfg.MaxSteps)
	line.Points[0] = seed
	p := seed
	step := 0
	for len(line.Points) < t.cfg.MaxSteps {
		e := t.ev.Evaluate(p, snap)
		mag := e.Norm()
		if math.IsNaN(mag) || math.IsInf(mag, 0) {
			line.Stop = StopSingular
			return line
		}
		if mag <= t.cfg.MinField {
			line.Stop = StopZeroField
			return line
		}
		k1 := e.Scale(sign / mag)

		next := t.stepper.Step(dir, p, k1, t.cfg.StepLength)
		if !next.IsValid() {
			line.Stop = StopSingular
			return line
		}
		if _, inShield := snap.ShieldAt(next); inShield {
			line.Stop = StopShield
			return line
		}
		if !vp.Bounds.Contains(next) {
			edge := vp.Bounds.Clip(p, next)
			if edge != p {
				line.Points = append(line.Points, edge)
			}
			line.Stop = StopViewport
			return line
		}

		line.Points = append(line.Points, next)
		if step%t.cfg.ArrowInterval == 0 {
			line.Arrows = append(line.Arrows, arrowAt(p, next, sign))
		}
		step++
		p = next
	}
	line.Stop = StopStepCap
	return line
}

// arrowAt orients a marker at b along the segment a→b, flipped for lines
// traced against the field so it always shows the field direction.
func arrowAt(a, b geom.Vec, sign float64) Arrow {
	angle := b.Sub(a).Angle()
	if sign < 0 {
		angle += math.Pi
	}
	return Arrow{Pos: b, Angle: angle}
}
