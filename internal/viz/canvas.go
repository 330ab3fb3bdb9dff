package viz

import (
	"math"
	"strings"

	"github.com/san-kum/efield/internal/geom"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Layer orders glyphs drawn over the braille dots; higher layers win.
type Layer int

const (
	LayerNone Layer = iota
	LayerDielectric
	LayerShield
	LayerArrow
	LayerNegative
	LayerPositive
	LayerCursor
)

// Glyph is a character placed on a cell above the dot layer.
type Glyph struct {
	R     rune
	Layer Layer
}

// Canvas is a braille dot grid with a glyph overlay, mapped onto a world
// rectangle. Rows follow increasing world y.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Overlay       [][]Glyph
	bounds        geom.Rect
}

func NewCanvas(w, h int, bounds geom.Rect) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:   w,
		Height:  h,
		Grid:    make([][]rune, h),
		Overlay: make([][]Glyph, h),
		bounds:  bounds,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Overlay[i] = make([]Glyph, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
	}
	return c
}

func (c *Canvas) Bounds() geom.Rect { return c.bounds }

// ToPixel maps a world point to sub-pixel coordinates. The canvas is
// (Width*2) x (Height*4) sub-pixels.
func (c *Canvas) ToPixel(p geom.Vec) (int, int) {
	if c.bounds.Width <= 0 || c.bounds.Height <= 0 {
		return -1, -1
	}
	fx := (p.X - c.bounds.X) / c.bounds.Width * float64(c.Width*2)
	fy := (p.Y - c.bounds.Y) / c.bounds.Height * float64(c.Height*4)
	return clampPixel(fx), clampPixel(fy)
}

// ToCell maps a world point to the character cell containing it.
func (c *Canvas) ToCell(p geom.Vec) (int, int) {
	x, y := c.ToPixel(p)
	return floorDiv(x, 2), floorDiv(y, 4)
}

// CellCenter is the world position at the middle of a cell.
func (c *Canvas) CellCenter(col, row int) geom.Vec {
	return cellCenter(c.bounds, c.Width, c.Height, col, row)
}

func cellCenter(bounds geom.Rect, w, h, col, row int) geom.Vec {
	return geom.Vec{
		X: bounds.X + (float64(col)+0.5)/float64(w)*bounds.Width,
		Y: bounds.Y + (float64(row)+0.5)/float64(h)*bounds.Height,
	}
}

// clampPixel keeps far off-canvas coordinates inside int range; Set
// discards them anyway.
func clampPixel(f float64) int {
	const limit = 1 << 20
	if math.IsNaN(f) {
		return -limit
	}
	f = math.Max(-limit, math.Min(limit, math.Floor(f)))
	return int(f)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// Set sets a pixel at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Put places a glyph on a cell unless a higher layer already holds it.
func (c *Canvas) Put(col, row int, r rune, layer Layer) {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return
	}
	if c.Overlay[row][col].Layer > layer {
		return
	}
	c.Overlay[row][col] = Glyph{R: r, Layer: layer}
}

// PutWorld places a glyph at the cell containing p.
func (c *Canvas) PutWorld(p geom.Vec, r rune, layer Layer) {
	col, row := c.ToCell(p)
	c.Put(col, row, r, layer)
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
			c.Overlay[i][j] = Glyph{}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawPolyline draws consecutive world points as connected segments.
func (c *Canvas) DrawPolyline(points []geom.Vec) {
	if len(points) == 1 {
		c.Set(c.ToPixel(points[0]))
		return
	}
	for i := 1; i < len(points); i++ {
		x0, y0 := c.ToPixel(points[i-1])
		x1, y1 := c.ToPixel(points[i])
		c.DrawLine(x0, y0, x1, y1)
	}
}

// DrawRect outlines a world rectangle with dots.
func (c *Canvas) DrawRect(r geom.Rect) {
	min, max := r.Min(), r.Max()
	c.DrawPolyline([]geom.Vec{
		min, {X: max.X, Y: min.Y}, max, {X: min.X, Y: max.Y}, min,
	})
}

// FillRect puts a glyph on every cell whose center lies inside r.
func (c *Canvas) FillRect(r geom.Rect, g rune, layer Layer) {
	c0, r0 := c.ToCell(r.Min())
	c1, r1 := c.ToCell(r.Max())
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, c.Width-1), min(r1, c.Height-1)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if r.Contains(c.CellCenter(col, row)) {
				c.Put(col, row, g, layer)
			}
		}
	}
}

// Cell returns the rune shown at a cell, overlay first.
func (c *Canvas) Cell(col, row int) (rune, Layer) {
	if g := c.Overlay[row][col]; g.Layer != LayerNone {
		return g.R, g.Layer
	}
	return c.Grid[row][col], LayerNone
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, _ := c.Cell(col, row)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

var arrowGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// ArrowGlyph picks the arrow closest to angle. Rows grow with world y, so a
// positive angle points down the screen.
func ArrowGlyph(angle float64) rune {
	octant := int(math.Round(angle/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return arrowGlyphs[octant]
}
