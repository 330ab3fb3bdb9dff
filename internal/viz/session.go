package viz

import (
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/geom"
	"github.com/san-kum/efield/internal/probe"
	"github.com/san-kum/efield/internal/scene"
	"github.com/san-kum/efield/internal/trace"
)

// Tool is the editing action applied at the cursor.
type Tool int

const (
	ToolAddPositive Tool = iota
	ToolAddNegative
	ToolErase
	ToolAddDielectric
	ToolRemoveDielectric
	ToolProbe
	ToolAddShield
	ToolRemoveShield
	numTools
)

var toolNames = [numTools]string{
	"add +q",
	"add -q",
	"erase",
	"dielectric",
	"remove dielectric",
	"probe",
	"shield",
	"remove shield",
}

func (t Tool) String() string {
	if t < 0 || t >= numTools {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

// twoCorner reports whether the tool needs an anchor and a second corner.
func (t Tool) twoCorner() bool {
	return t == ToolAddDielectric || t == ToolAddShield
}

const (
	// ChargeMagnitude is the |q| placed by the add tools.
	ChargeMagnitude = 1.0

	sideWidth  = 44
	minCanvasW = 10
	minCanvasH = 5
)

// Options configures a Session.
type Options struct {
	Evaluator      *field.Evaluator
	Tracer         *trace.Tracer
	Viewport       trace.Viewport
	EraseRadius    float64
	DielectricEpsR float64
	GridSpacing    float64
	Theme          Theme
	// ShowVectors starts with the vector grid visible.
	ShowVectors bool
}

// Session is the interactive lab. It owns the scene and every piece of UI
// state: the tool, the cursor, a pending drag corner, the probe result and
// the probe panel's scroll offset. The scene is edited only from Update.
type Session struct {
	scene  *scene.Scene
	ev     *field.Evaluator
	tracer *trace.Tracer
	vp     trace.Viewport

	eraseRadius float64
	epsR        float64
	gridSpacing float64

	tool        Tool
	cursor      geom.Vec
	anchor      *geom.Vec
	probe       *probe.Result
	probeScroll int
	showVectors bool
	showHelp    bool

	status    string
	statusErr bool

	width, height    int
	canvasW, canvasH int

	theme Theme
	st    styles
}

// NewSession returns a session editing sc. Zero options fall back to
// defaults; the tracer is required.
func NewSession(sc *scene.Scene, opts Options) (*Session, error) {
	if sc == nil {
		sc = scene.New()
	}
	if opts.Tracer == nil {
		return nil, fmt.Errorf("viz: session needs a tracer")
	}
	if !opts.Viewport.Bounds.IsValid() || opts.Viewport.Bounds.Width == 0 || opts.Viewport.Bounds.Height == 0 {
		return nil, fmt.Errorf("viz: empty viewport %+v", opts.Viewport.Bounds)
	}
	if opts.Evaluator == nil {
		opts.Evaluator = field.NewEvaluator()
	}
	if !(opts.EraseRadius > 0) {
		opts.EraseRadius = 20
	}
	if !(opts.DielectricEpsR > 0) {
		opts.DielectricEpsR = 10
	}
	if !(opts.GridSpacing > 0) {
		opts.GridSpacing = 40
	}
	if opts.Theme.Name == "" {
		opts.Theme = Themes[0]
	}

	s := &Session{
		scene:       sc,
		ev:          opts.Evaluator,
		tracer:      opts.Tracer,
		vp:          opts.Viewport,
		eraseRadius: opts.EraseRadius,
		epsR:        opts.DielectricEpsR,
		gridSpacing: opts.GridSpacing,
		showVectors: opts.ShowVectors,
		cursor:      opts.Viewport.Bounds.Center(),
		theme:       opts.Theme,
		st:          newStyles(opts.Theme),
	}
	s.resize(80, 24)
	return s, nil
}

func (s *Session) Scene() *scene.Scene { return s.scene }
func (s *Session) Tool() Tool          { return s.tool }
func (s *Session) Cursor() geom.Vec    { return s.cursor }

func (s *Session) Anchor() (geom.Vec, bool) {
	if s.anchor == nil {
		return geom.Vec{}, false
	}
	return *s.anchor, true
}

// Probe returns the last probe result, if the probe tool has one.
func (s *Session) Probe() (probe.Result, bool) {
	if s.probe == nil {
		return probe.Result{}, false
	}
	return *s.probe, true
}

func (s *Session) ProbeScroll() int { return s.probeScroll }
func (s *Session) Status() string   { return s.status }

// Run starts the lab on the terminal's alternate screen with mouse input.
func Run(s *Session) error {
	p := tea.NewProgram(s, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (s *Session) Init() tea.Cmd { return nil }

func (s *Session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return s, s.handleKey(msg)
	case tea.MouseMsg:
		s.handleMouse(msg)
	}
	return s, nil
}

func (s *Session) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch k := msg.String(); k {
	case "q", "ctrl+c":
		return tea.Quit
	case "up", "k":
		s.moveCursor(0, -1)
	case "down", "j":
		s.moveCursor(0, 1)
	case "left", "h":
		s.moveCursor(-1, 0)
	case "right", "l":
		s.moveCursor(1, 0)
	case "1", "2", "3", "4", "5", "6", "7", "8":
		s.SelectTool(Tool(k[0] - '1'))
	case " ", "enter":
		s.Apply()
	case "esc":
		if s.anchor != nil {
			s.anchor = nil
			s.setStatus("corner cancelled")
		}
	case "pgup":
		s.ScrollProbe(-1)
	case "pgdown":
		s.ScrollProbe(1)
	case "v":
		s.showVectors = !s.showVectors
	case "t":
		s.theme = nextTheme(s.theme)
		s.st = newStyles(s.theme)
		s.setStatus("theme: " + s.theme.Name)
	case "c":
		s.scene.Clear()
		s.anchor = nil
		s.refreshProbe()
		s.setStatus("scene cleared")
	case "?":
		s.showHelp = !s.showHelp
	}
	return nil
}

// handleMouse maps clicks on the canvas to the cursor. A press applies the
// tool; for two-corner tools the release commits the rectangle.
func (s *Session) handleMouse(msg tea.MouseMsg) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return
	}
	// one cell of border around the canvas
	col, row := msg.X-1, msg.Y-1
	if col < 0 || row < 0 || col >= s.canvasW || row >= s.canvasH {
		return
	}
	s.cursor = cellCenter(s.vp.Bounds, s.canvasW, s.canvasH, col, row)
	switch msg.Action {
	case tea.MouseActionPress:
		s.Apply()
	case tea.MouseActionRelease:
		if s.tool.twoCorner() && s.anchor != nil && *s.anchor != s.cursor {
			s.Apply()
		}
	}
}

func (s *Session) resize(w, h int) {
	s.width, s.height = w, h
	s.canvasW = max(w-sideWidth-2, minCanvasW)
	s.canvasH = max(h-3, minCanvasH)
	s.clampScroll()
}

// cellSize is the world extent of one canvas cell.
func (s *Session) cellSize() (float64, float64) {
	b := s.vp.Bounds
	return b.Width / float64(s.canvasW), b.Height / float64(s.canvasH)
}

func (s *Session) moveCursor(dx, dy int) {
	cw, ch := s.cellSize()
	b := s.vp.Bounds
	s.cursor = geom.Vec{
		X: math.Max(b.X, math.Min(b.X+b.Width, s.cursor.X+float64(dx)*cw)),
		Y: math.Max(b.Y, math.Min(b.Y+b.Height, s.cursor.Y+float64(dy)*ch)),
	}
}

// MoveCursorTo places the cursor at p, clamped to the viewport.
func (s *Session) MoveCursorTo(p geom.Vec) {
	s.cursor = p
	s.moveCursor(0, 0)
}

// SelectTool switches tools. Leaving the probe tool drops the probe result
// and resets its scroll; any pending corner is discarded.
func (s *Session) SelectTool(t Tool) {
	if t < 0 || t >= numTools {
		return
	}
	if t != ToolProbe {
		s.probe = nil
		s.probeScroll = 0
	}
	s.anchor = nil
	s.tool = t
	s.setStatus("tool: " + t.String())
}

// Apply runs the selected tool at the cursor.
func (s *Session) Apply() {
	p := s.cursor
	var err error
	switch s.tool {
	case ToolAddPositive:
		err = s.scene.AddCharge(p, ChargeMagnitude)
	case ToolAddNegative:
		err = s.scene.AddCharge(p, -ChargeMagnitude)
	case ToolErase:
		n := s.scene.RemoveChargesNear(p, s.eraseRadius)
		s.setStatus(fmt.Sprintf("removed %d charge(s)", n))
	case ToolAddDielectric, ToolAddShield:
		if s.anchor == nil {
			a := p
			s.anchor = &a
			s.setStatus("first corner set")
			return
		}
		a := *s.anchor
		s.anchor = nil
		if s.tool == ToolAddDielectric {
			err = s.scene.AddDielectric(a, p, s.epsR)
		} else {
			err = s.scene.AddShield(a, p)
		}
	case ToolRemoveDielectric:
		if !s.scene.RemoveDielectricAt(p) {
			s.setStatus("no dielectric here")
		}
	case ToolRemoveShield:
		if !s.scene.RemoveShieldAt(p) {
			s.setStatus("no shield here")
		}
	case ToolProbe:
		r := probe.Probe(s.ev, p, s.scene.Snapshot())
		s.probe = &r
		s.probeScroll = 0
		return
	}
	if err != nil {
		s.status, s.statusErr = err.Error(), true
		return
	}
	if s.statusErr {
		s.setStatus("")
	}
	s.refreshProbe()
}

// refreshProbe re-evaluates the probe at its point after the scene changed.
func (s *Session) refreshProbe() {
	if s.probe == nil {
		return
	}
	r := probe.Probe(s.ev, s.probe.Point, s.scene.Snapshot())
	s.probe = &r
	s.clampScroll()
}

// ScrollProbe moves the probe panel by delta lines.
func (s *Session) ScrollProbe(delta int) {
	if s.probe == nil {
		return
	}
	s.probeScroll += delta
	s.clampScroll()
}

func (s *Session) clampScroll() {
	if s.probe == nil {
		s.probeScroll = 0
		return
	}
	maxScroll := max(len(s.probe.Lines())-s.probeRows(), 0)
	s.probeScroll = max(0, min(s.probeScroll, maxScroll))
}

// probeRows is how many probe lines fit in the side panel.
func (s *Session) probeRows() int {
	return max(s.height-22, 3)
}

func (s *Session) setStatus(msg string) {
	s.status, s.statusErr = msg, false
}
