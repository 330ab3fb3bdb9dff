package field

import (
	"testing"
	"time"

	"github.com/san-kum/efield/internal/geom"
	"github.com/san-kum/efield/internal/scene"
)

func TestSampleGrid(t *testing.T) {
	ev := NewEvaluator()
	snap := single(1)
	bounds := geom.Rect{X: -10, Y: -10, Width: 20, Height: 20}

	samples := ev.SampleGrid(snap, bounds, 5)
	if len(samples) != 16 {
		t.Fatalf("expected 16 samples, got %d", len(samples))
	}
	if samples[0].Pos != geom.V(-7.5, -7.5) {
		t.Errorf("first sample at %v", samples[0].Pos)
	}
	for _, s := range samples {
		if s.Zero {
			t.Errorf("unexpected zero field at %v", s.Pos)
		}
		if s.E != ev.Evaluate(s.Pos, snap) {
			t.Errorf("sample at %v disagrees with Evaluate", s.Pos)
		}
	}
}

func TestSampleGrid_Degenerate(t *testing.T) {
	ev := NewEvaluator()
	bounds := geom.Rect{Width: 10, Height: 10}

	if s := ev.SampleGrid(scene.Snapshot{}, bounds, 0); s != nil {
		t.Error("zero spacing should give no samples")
	}
	if s := ev.SampleGrid(scene.Snapshot{}, geom.Rect{Width: -1, Height: 1}, 1); s != nil {
		t.Error("invalid bounds should give no samples")
	}

	s := ev.SampleGrid(scene.Snapshot{}, bounds, 5)
	for _, sample := range s {
		if !sample.Zero {
			t.Errorf("empty scene should have zero field at %v", sample.Pos)
		}
	}
}

func TestSampleGrid_Capped(t *testing.T) {
	ev := NewEvaluator()
	samples := ev.SampleGrid(scene.Snapshot{}, geom.Rect{Width: 1000, Height: 1000}, 0.1)
	if len(samples) > MaxGridSamples {
		t.Errorf("grid has %d samples, cap is %d", len(samples), MaxGridSamples)
	}
	if len(samples) == 0 {
		t.Error("expected a widened grid, got none")
	}
}

func TestSampleGrid_TinySpacing(t *testing.T) {
	ev := NewEvaluator()
	bounds := geom.Rect{X: -400, Y: -300, Width: 800, Height: 600}

	done := make(chan []Sample, 1)
	go func() { done <- ev.SampleGrid(single(1), bounds, 7e-17) }()
	select {
	case samples := <-done:
		if len(samples) == 0 || len(samples) > MaxGridSamples {
			t.Errorf("expected a widened grid within the cap, got %d samples", len(samples))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("SampleGrid did not return for a tiny spacing")
	}
}
