package field

import (
	"math"

	"github.com/san-kum/efield/internal/geom"
	"github.com/san-kum/efield/internal/scene"
)

// MaxGridSamples bounds SampleGrid so a tiny spacing cannot stall a frame.
const MaxGridSamples = 1 << 16

// Sample is the field at one grid point.
type Sample struct {
	Pos geom.Vec
	E   geom.Vec
	// Zero is set when the net field vanishes at Pos.
	Zero bool
}

// SampleGrid evaluates the field at the centers of a regular grid of cells
// of the given spacing covering bounds, row by row from the minimum corner.
// If the grid would exceed MaxGridSamples the spacing is widened to fit.
func (ev *Evaluator) SampleGrid(snap scene.Snapshot, bounds geom.Rect, spacing float64) []Sample {
	if spacing <= 0 || math.IsNaN(spacing) || !bounds.IsValid() {
		return nil
	}
	// count cells in float so a tiny spacing cannot overflow int
	fc := math.Floor(bounds.Width / spacing)
	fr := math.Floor(bounds.Height / spacing)
	for fc*fr > MaxGridSamples {
		spacing *= 2
		fc = math.Floor(bounds.Width / spacing)
		fr = math.Floor(bounds.Height / spacing)
	}
	cols, rows := int(fc), int(fr)
	if cols == 0 || rows == 0 {
		return nil
	}

	samples := make([]Sample, 0, cols*rows)
	for j := 0; j < rows; j++ {
		y := bounds.Y + (float64(j)+0.5)*spacing
		for i := 0; i < cols; i++ {
			p := geom.Vec{X: bounds.X + (float64(i)+0.5)*spacing, Y: y}
			e := ev.Evaluate(p, snap)
			samples = append(samples, Sample{Pos: p, E: e, Zero: e.Norm2() == 0})
		}
	}
	return samples
}
