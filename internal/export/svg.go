package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/efield/internal/geom"
	"github.com/san-kum/efield/internal/scene"
	"github.com/san-kum/efield/internal/trace"
)

// SVGOptions sets the image size and colors.
type SVGOptions struct {
	Width, Height int
	Background    string
	LineColor     string
	ArrowColor    string
	Positive      string
	Negative      string
	Dielectric    string
	Shield        string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:      800,
		Height:     600,
		Background: "#0a0a0a",
		LineColor:  "#cccccc",
		ArrowColor: "#ffffff",
		Positive:   "#ff4444",
		Negative:   "#4488ff",
		Dielectric: "#ccaa00",
		Shield:     "#888888",
	}
}

// SceneToSVG draws regions, field lines, arrow markers and charges. The
// viewport maps onto the whole image with rows following increasing y, the
// same orientation as the terminal canvas.
func SceneToSVG(snap scene.Snapshot, lines []trace.Line, viewport geom.Rect, opts SVGOptions) string {
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultSVGOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return ""
	}
	sx := float64(opts.Width) / viewport.Width
	sy := float64(opts.Height) / viewport.Height
	tx := func(p geom.Vec) (float64, float64) {
		return (p.X - viewport.X) * sx, (p.Y - viewport.Y) * sy
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.Background))

	sb.WriteString(fmt.Sprintf("<g id=\"dielectrics\" fill=\"%s\" fill-opacity=\"0.25\" stroke=\"%s\">\n", opts.Dielectric, opts.Dielectric))
	for _, d := range snap.Dielectrics {
		x, y := tx(d.Rect.Min())
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"><title>eps_r=%.2f</title></rect>
`, x, y, d.Rect.Width*sx, d.Rect.Height*sy, d.EpsilonR))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf("<g id=\"shields\" fill=\"%s\" fill-opacity=\"0.6\">\n", opts.Shield))
	for _, s := range snap.Shields {
		x, y := tx(s.Rect.Min())
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, x, y, s.Rect.Width*sx, s.Rect.Height*sy))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf("<g id=\"lines\" fill=\"none\" stroke=\"%s\" stroke-width=\"1\">\n", opts.LineColor))
	for _, l := range lines {
		if l.Degenerate() {
			continue
		}
		sb.WriteString(`<path d="M`)
		for i, p := range l.Points {
			x, y := tx(p)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf("<g id=\"arrows\" fill=\"%s\">\n", opts.ArrowColor))
	for _, l := range lines {
		for _, a := range l.Arrows {
			x, y := tx(a.Pos)
			sb.WriteString(arrowPolygon(x, y, a.Angle, sx, sy))
		}
	}
	sb.WriteString("</g>\n")

	sb.WriteString("<g id=\"charges\" font-family=\"monospace\" font-size=\"12\" text-anchor=\"middle\">\n")
	for _, c := range snap.Charges {
		x, y := tx(c.Pos)
		color, sign := opts.Positive, "+"
		if c.Q < 0 {
			color, sign = opts.Negative, "-"
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="8" fill="%s"/><text x="%.1f" y="%.1f" fill="#000000">%s</text>
`, x, y, color, x, y+4, sign))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// arrowPolygon is a small triangle at (x, y) pointing along angle. The
// angle is in world space, so the direction is scaled like the points.
func arrowPolygon(x, y, angle, sx, sy float64) string {
	const size = 6.0
	dx, dy := math.Cos(angle)*sx, math.Sin(angle)*sy
	n := math.Hypot(dx, dy)
	if n == 0 {
		return ""
	}
	dx, dy = dx/n, dy/n
	tipX, tipY := x+dx*size, y+dy*size
	lx, ly := x-dx*size/2-dy*size/2, y-dy*size/2+dx*size/2
	rx, ry := x-dx*size/2+dy*size/2, y-dy*size/2-dx*size/2
	return fmt.Sprintf("<polygon points=\"%.1f,%.1f %.1f,%.1f %.1f,%.1f\"/>\n", tipX, tipY, lx, ly, rx, ry)
}
