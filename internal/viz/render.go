package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/efield/internal/geom"
	"github.com/san-kum/efield/internal/scene"
	"github.com/san-kum/efield/internal/trace"
)

const (
	glyphPositive   = '+'
	glyphNegative   = '−'
	glyphDielectric = '░'
	glyphShield     = '▓'
	glyphCursor     = '✛'
	glyphAnchor     = '◇'
)

// Frame is everything drawn for one View: the snapshot it was computed from
// and the lines traced on it.
type Frame struct {
	Snapshot scene.Snapshot
	Lines    []trace.Line
	Canvas   *Canvas
}

// Draw renders the scene onto a fresh canvas. Lines are traced from scratch
// on every call.
func (s *Session) Draw() Frame {
	snap := s.scene.Snapshot()
	c := NewCanvas(s.canvasW, s.canvasH, s.vp.Bounds)

	for _, d := range snap.Dielectrics {
		c.FillRect(d.Rect, glyphDielectric, LayerDielectric)
	}
	for _, sh := range snap.Shields {
		c.FillRect(sh.Rect, glyphShield, LayerShield)
	}

	lines := s.tracer.Trace(snap, s.vp)
	for _, l := range lines {
		c.DrawPolyline(l.Points)
		for _, a := range l.Arrows {
			c.PutWorld(a.Pos, ArrowGlyph(a.Angle), LayerArrow)
		}
	}

	if s.showVectors {
		for _, smp := range s.ev.SampleGrid(snap, s.vp.Bounds, s.gridSpacing) {
			if smp.Zero {
				continue
			}
			c.PutWorld(smp.Pos, ArrowGlyph(smp.E.Angle()), LayerArrow)
		}
	}

	for _, ch := range snap.Charges {
		if ch.Q > 0 {
			c.PutWorld(ch.Pos, glyphPositive, LayerPositive)
		} else {
			c.PutWorld(ch.Pos, glyphNegative, LayerNegative)
		}
	}

	if s.anchor != nil {
		c.DrawRect(geom.RectFromCorners(*s.anchor, s.cursor))
		c.PutWorld(*s.anchor, glyphAnchor, LayerCursor)
	}
	c.PutWorld(s.cursor, glyphCursor, LayerCursor)

	return Frame{Snapshot: snap, Lines: lines, Canvas: c}
}

func (s *Session) View() string {
	f := s.Draw()

	canvas := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.theme.Muted).
		Render(s.st.renderCanvas(f.Canvas))

	side := s.st.panel.Width(sideWidth - 4).Render(s.sidePanel(f))

	status := s.st.muted.Render(s.status)
	if s.statusErr {
		status = s.st.err.Render(s.status)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, side) + "\n" + status
}

func (s *Session) sidePanel(f Frame) string {
	var b strings.Builder
	b.WriteString(s.st.header.Render("⚡ efield"))
	b.WriteString("\n")

	for i := Tool(0); i < numTools; i++ {
		line := fmt.Sprintf("%d %s", i+1, i)
		if i == s.tool {
			b.WriteString(s.st.active.Render("▸ " + line))
		} else {
			b.WriteString(s.st.muted.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString(s.st.separator(sideWidth - 6))
	b.WriteString("\n")

	stats := trace.Summarize(f.Lines)
	row := func(label, value string) {
		b.WriteString(s.st.label.Render(label))
		b.WriteString(s.st.value.Render(value))
		b.WriteString("\n")
	}
	row("cursor", fmt.Sprintf("(%.1f, %.1f)", s.cursor.X, s.cursor.Y))
	row("scene", fmt.Sprintf("%dq %dd %ds",
		len(f.Snapshot.Charges), len(f.Snapshot.Dielectrics), len(f.Snapshot.Shields)))
	row("lines", fmt.Sprintf("%d (%d pts)", stats.Lines, stats.Points))
	row("|E|", fmt.Sprintf("%.3e", s.ev.Magnitude(s.cursor, f.Snapshot)))

	if s.probe != nil {
		b.WriteString(s.st.separator(sideWidth - 6))
		b.WriteString("\n")
		lines := s.probe.Lines()
		end := min(s.probeScroll+s.probeRows(), len(lines))
		for _, l := range lines[s.probeScroll:end] {
			b.WriteString(s.st.value.Render(l))
			b.WriteString("\n")
		}
		if end < len(lines) || s.probeScroll > 0 {
			b.WriteString(s.st.help.Render(fmt.Sprintf("pgup/pgdn %d-%d of %d", s.probeScroll+1, end, len(lines))))
			b.WriteString("\n")
		}
	}

	if s.showHelp {
		b.WriteString(s.st.separator(sideWidth - 6))
		b.WriteString("\n")
		b.WriteString(s.st.help.Render(helpText))
	} else {
		b.WriteString(s.st.help.Render("? help"))
	}
	return b.String()
}

const helpText = `arrows/hjkl  move cursor
1-8          select tool
space/enter  apply tool
esc          cancel corner
v            vector grid
t            theme
c            clear scene
q            quit`
