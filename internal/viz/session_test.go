package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/gomega"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/geom"
	"github.com/san-kum/efield/internal/scene"
	"github.com/san-kum/efield/internal/trace"
)

func newSession(t *testing.T, sc *scene.Scene) *Session {
	t.Helper()
	tr, err := trace.New(field.NewEvaluator(), trace.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSession(sc, Options{
		Tracer:   tr,
		Viewport: trace.NewViewport(geom.V(-400, -300), geom.V(400, 300)),
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(s *Session, keys ...string) {
	for _, k := range keys {
		s.Update(key(k))
	}
}

func TestNewSession_RequiresTracer(t *testing.T) {
	_, err := NewSession(nil, Options{Viewport: trace.NewViewport(geom.V(0, 0), geom.V(1, 1))})
	if err == nil {
		t.Fatal("expected error without tracer")
	}
}

func TestNewSession_RejectsEmptyViewport(t *testing.T) {
	tr, _ := trace.New(nil, trace.DefaultConfig())
	_, err := NewSession(nil, Options{Tracer: tr})
	if err == nil {
		t.Fatal("expected error for empty viewport")
	}
}

func TestSession_AddAndEraseCharges(t *testing.T) {
	g := NewWithT(t)
	s := newSession(t, nil)
	g.Expect(s.Cursor()).To(Equal(geom.V(0, 0)))

	send(s, "1", " ")
	send(s, "2", "right", "right", "right", "right", " ")
	snap := s.Scene().Snapshot()
	g.Expect(snap.Charges).To(HaveLen(2))
	g.Expect(snap.Charges[0]).To(Equal(scene.Charge{Pos: geom.V(0, 0), Q: ChargeMagnitude}))
	g.Expect(snap.Charges[1].Q).To(Equal(-ChargeMagnitude))
	g.Expect(snap.Charges[1].Pos.X).To(BeNumerically(">", 20))

	// erase radius covers only the charge under the cursor
	send(s, "3", " ")
	g.Expect(s.Scene().NumCharges()).To(Equal(1))
	g.Expect(s.Scene().Snapshot().Charges[0].Q).To(Equal(ChargeMagnitude))
	g.Expect(s.Status()).To(ContainSubstring("removed 1"))
}

func TestSession_DielectricTwoCorners(t *testing.T) {
	g := NewWithT(t)
	s := newSession(t, nil)

	send(s, "4", " ")
	a, ok := s.Anchor()
	g.Expect(ok).To(BeTrue())
	g.Expect(a).To(Equal(geom.V(0, 0)))
	g.Expect(s.Scene().NumDielectrics()).To(Equal(0))

	send(s, "right", "right", "down", "down", " ")
	_, ok = s.Anchor()
	g.Expect(ok).To(BeFalse())

	snap := s.Scene().Snapshot()
	g.Expect(snap.Dielectrics).To(HaveLen(1))
	d := snap.Dielectrics[0]
	g.Expect(d.EpsilonR).To(Equal(10.0))
	g.Expect(d.Rect.X).To(Equal(0.0))
	g.Expect(d.Rect.Width).To(BeNumerically(">", 0))

	send(s, "5", " ")
	g.Expect(s.Scene().NumDielectrics()).To(Equal(0))
}

func TestSession_EscCancelsCorner(t *testing.T) {
	g := NewWithT(t)
	s := newSession(t, nil)

	send(s, "7", " ", "esc")
	_, ok := s.Anchor()
	g.Expect(ok).To(BeFalse())

	send(s, "right", " ")
	g.Expect(s.Scene().NumShields()).To(Equal(0))
	send(s, "down", " ")
	g.Expect(s.Scene().NumShields()).To(Equal(1))

	// the cursor sits on the shield's far corner
	send(s, "8", " ")
	g.Expect(s.Scene().NumShields()).To(Equal(0))
}

func TestSession_ZeroSizeRegionAccepted(t *testing.T) {
	g := NewWithT(t)
	s := newSession(t, nil)

	// a degenerate rectangle is a valid closed region
	send(s, "4", " ", " ")
	g.Expect(s.Scene().NumDielectrics()).To(Equal(1))
	g.Expect(s.statusErr).To(BeFalse())
}

func TestSession_ProbeLifecycle(t *testing.T) {
	g := NewWithT(t)
	sc := scene.New()
	g.Expect(sc.AddCharge(geom.V(-100, 0), 1)).To(Succeed())
	g.Expect(sc.AddCharge(geom.V(100, 0), -1)).To(Succeed())
	s := newSession(t, sc)

	send(s, "6", " ")
	r, ok := s.Probe()
	g.Expect(ok).To(BeTrue())
	g.Expect(r.Contributions).To(HaveLen(2))
	g.Expect(r.E.X).To(BeNumerically(">", 0))

	s.Update(tea.WindowSizeMsg{Width: 100, Height: 26})
	send(s, "pgdown", "pgdown", "pgdown")
	g.Expect(s.ProbeScroll()).To(Equal(3))
	for i := 0; i < 100; i++ {
		send(s, "pgdown")
	}
	g.Expect(s.ProbeScroll()).To(Equal(len(r.Lines()) - s.probeRows()))
	send(s, "pgup")
	g.Expect(s.ProbeScroll()).To(Equal(len(r.Lines()) - s.probeRows() - 1))

	// clearing the scene refreshes the probe in place
	send(s, "c")
	r, ok = s.Probe()
	g.Expect(ok).To(BeTrue())
	g.Expect(r.Contributions).To(BeEmpty())
	g.Expect(s.ProbeScroll()).To(BeNumerically("<=", max(len(r.Lines())-s.probeRows(), 0)))

	send(s, "1")
	_, ok = s.Probe()
	g.Expect(ok).To(BeFalse())
	g.Expect(s.ProbeScroll()).To(Equal(0))
}

func TestSession_CursorClampedToViewport(t *testing.T) {
	g := NewWithT(t)
	s := newSession(t, nil)
	for i := 0; i < 200; i++ {
		send(s, "right", "down")
	}
	g.Expect(s.Cursor()).To(Equal(geom.V(400, 300)))

	s.MoveCursorTo(geom.V(-1000, 50))
	g.Expect(s.Cursor()).To(Equal(geom.V(-400, 50)))
}

func TestSession_InvalidEditReportsError(t *testing.T) {
	g := NewWithT(t)
	tr, _ := trace.New(nil, trace.DefaultConfig())
	s, err := NewSession(nil, Options{
		Tracer:         tr,
		Viewport:       trace.NewViewport(geom.V(-400, -300), geom.V(400, 300)),
		DielectricEpsR: 2,
	})
	g.Expect(err).NotTo(HaveOccurred())
	s.epsR = -1

	send(s, "4", " ", "right", " ")
	g.Expect(s.Scene().NumDielectrics()).To(Equal(0))
	g.Expect(s.statusErr).To(BeTrue())
	g.Expect(s.Status()).To(ContainSubstring("permittivity"))
}

func TestSession_MouseClickPlacesCharge(t *testing.T) {
	g := NewWithT(t)
	s := newSession(t, nil)
	s.Update(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	snap := s.Scene().Snapshot()
	g.Expect(snap.Charges).To(HaveLen(1))
	cw, ch := s.cellSize()
	g.Expect(snap.Charges[0].Pos.X).To(BeNumerically("~", -400+cw/2, 1e-9))
	g.Expect(snap.Charges[0].Pos.Y).To(BeNumerically("~", -300+ch/2, 1e-9))

	// outside the canvas
	s.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	g.Expect(s.Scene().NumCharges()).To(Equal(1))
}

func TestSession_MouseDragAddsShield(t *testing.T) {
	g := NewWithT(t)
	s := newSession(t, nil)
	s.SelectTool(ToolAddShield)

	s.Update(tea.MouseMsg{X: 2, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	s.Update(tea.MouseMsg{X: 6, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	g.Expect(s.Scene().NumShields()).To(Equal(1))
}

func TestSession_QuitKey(t *testing.T) {
	s := newSession(t, nil)
	_, cmd := s.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestSession_View(t *testing.T) {
	g := NewWithT(t)
	sc := scene.New()
	g.Expect(sc.AddCharge(geom.V(-100, 0), 1)).To(Succeed())
	g.Expect(sc.AddCharge(geom.V(100, 0), -1)).To(Succeed())
	g.Expect(sc.AddShield(geom.V(200, -50), geom.V(260, 50))).To(Succeed())
	s := newSession(t, sc)
	s.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	f := s.Draw()
	g.Expect(f.Canvas.Width).To(Equal(120 - sideWidth - 2))
	g.Expect(f.Canvas.Height).To(Equal(37))
	g.Expect(f.Lines).To(HaveLen(2 * trace.DefaultLinesPerCharge))

	out := f.Canvas.String()
	g.Expect(out).To(ContainSubstring(string(glyphPositive)))
	g.Expect(out).To(ContainSubstring(string(glyphNegative)))
	g.Expect(out).To(ContainSubstring(string(glyphShield)))
	g.Expect(out).To(ContainSubstring(string(glyphCursor)))

	view := s.View()
	g.Expect(view).To(ContainSubstring("efield"))
	g.Expect(view).To(ContainSubstring("remove shield"))

	send(s, "v")
	g.Expect(strings.ContainsAny(s.Draw().Canvas.String(), "→↘↓↙←↖↑↗")).To(BeTrue())
}
