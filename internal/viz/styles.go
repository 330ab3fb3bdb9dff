package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles is the set of lipgloss styles derived from a theme.
type styles struct {
	positive   lipgloss.Style
	negative   lipgloss.Style
	line       lipgloss.Style
	arrow      lipgloss.Style
	dielectric lipgloss.Style
	shield     lipgloss.Style
	cursor     lipgloss.Style

	panel  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	active lipgloss.Style
	muted  lipgloss.Style
	err    lipgloss.Style
	help   lipgloss.Style
}

func newStyles(t Theme) styles {
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	return styles{
		positive:   fg(t.Positive).Bold(true),
		negative:   fg(t.Negative).Bold(true),
		line:       fg(t.Line),
		arrow:      fg(t.Arrow),
		dielectric: fg(t.Dielectric),
		shield:     fg(t.Shield),
		cursor:     fg(t.Cursor).Bold(true),

		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		header: fg(t.Accent).Bold(true).MarginBottom(1),
		label:  fg(t.Muted).Width(10),
		value:  fg(t.Text),
		active: fg(t.Accent).Bold(true),
		muted:  fg(t.Muted),
		err:    fg(t.Error).Bold(true),
		help:   fg(t.Muted).Italic(true),
	}
}

func (s styles) forLayer(l Layer) lipgloss.Style {
	switch l {
	case LayerPositive:
		return s.positive
	case LayerNegative:
		return s.negative
	case LayerArrow:
		return s.arrow
	case LayerDielectric:
		return s.dielectric
	case LayerShield:
		return s.shield
	case LayerCursor:
		return s.cursor
	default:
		return s.line
	}
}

// renderCanvas colors each cell by its layer. Runs of one layer are rendered
// together to keep escape sequences down.
func (s styles) renderCanvas(c *Canvas) string {
	var b strings.Builder
	var run strings.Builder
	for row := 0; row < c.Height; row++ {
		cur := Layer(-1)
		for col := 0; col < c.Width; col++ {
			r, l := c.Cell(col, row)
			if l != cur && run.Len() > 0 {
				b.WriteString(s.forLayer(cur).Render(run.String()))
				run.Reset()
			}
			cur = l
			run.WriteRune(r)
		}
		if run.Len() > 0 {
			b.WriteString(s.forLayer(cur).Render(run.String()))
			run.Reset()
		}
		if row < c.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Separator draws a decorative rule
func (s styles) separator(width int) string {
	if width < 8 {
		return s.muted.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.muted.Render(left + " ◆ " + right)
}
