package doodle

import (
	"image"
	"testing"

	"github.com/rook-computer/doodler/internal/random"
	"github.com/rook-computer/doodler/internal/render"
	"github.com/rook-computer/doodler/internal/settings"
	"github.com/rook-computer/doodler/internal/state"
	"github.com/rook-computer/doodler/internal/walk"
)

type fakeSurface struct {
	resets  []walk.Dimensions
	styles  []render.Style
	strokes int
	events  []string
}

func (s *fakeSurface) Reset(dims walk.Dimensions, style render.Style) {
	s.resets = append(s.resets, dims)
	s.styles = append(s.styles, style)
	s.events = append(s.events, "reset")
}
func (s *fakeSurface) BeginPath()          {}
func (s *fakeSurface) MoveTo(x, y float64) {}
func (s *fakeSurface) LineTo(x, y float64) {}
func (s *fakeSurface) Stroke() {
	s.strokes++
	s.events = append(s.events, "stroke")
}
func (s *fakeSurface) Image() image.Image { return nil }

type fixedViewport walk.Dimensions

func (v fixedViewport) Viewport() walk.Dimensions { return walk.Dimensions(v) }

func newDirector(t *testing.T, mutate func(*settings.Settings)) (*Director, *fakeSurface, *state.Store) {
	t.Helper()
	current := settings.Defaults()
	current.Mirror = false
	current.LineCount = 5
	current.MaxLineLength = 5
	if mutate != nil {
		mutate(&current)
	}
	surface := &fakeSurface{}
	status := state.NewStore()
	director := New(settings.NewStoreWith(current), surface, fixedViewport{Width: 1000, Height: 1000}, random.New(99))
	director.Status = status
	return director, surface, status
}

func TestBatchDrawDrawsLineCountSegments(t *testing.T) {
	director, surface, status := newDirector(t, func(s *settings.Settings) { s.LineCount = 40 })

	readyCalls := 0
	director.OnReady = func() {
		readyCalls++
		if len(surface.resets) != 1 || surface.strokes != 0 {
			t.Errorf("Expected OnReady after reset and before strokes, resets=%d strokes=%d", len(surface.resets), surface.strokes)
		}
	}

	if !director.Tap() {
		t.Fatal("Expected first tap to draw")
	}
	if surface.strokes != 40 {
		t.Errorf("Expected 40 strokes, got %d", surface.strokes)
	}
	if readyCalls != 1 {
		t.Errorf("Expected OnReady once, got %d", readyCalls)
	}
	if director.Phase() != state.IDLE || status.Snapshot().Phase != state.IDLE {
		t.Errorf("Expected IDLE after batch draw, got %v", director.Phase())
	}
	if got := status.Snapshot().Walk.Segments; got != 40 {
		t.Errorf("Expected status to report 40 segments, got %d", got)
	}
	if director.Frame() {
		t.Error("Expected Frame to be a no-op while idle")
	}
}

func TestZeroLineCountOnlyResets(t *testing.T) {
	director, surface, _ := newDirector(t, func(s *settings.Settings) { s.LineCount = 0 })

	director.Tap()
	if len(surface.resets) != 1 {
		t.Errorf("Expected one reset, got %d", len(surface.resets))
	}
	if surface.strokes != 0 {
		t.Errorf("Expected no strokes, got %d", surface.strokes)
	}
	if director.Phase() != state.IDLE {
		t.Errorf("Expected IDLE, got %v", director.Phase())
	}
}

func TestLiveDrawCompletes(t *testing.T) {
	director, surface, _ := newDirector(t, func(s *settings.Settings) { s.DrawLive = true })

	director.Tap()
	if director.Phase() != state.DRAWING {
		t.Fatalf("Expected DRAWING, got %v", director.Phase())
	}
	if surface.strokes != 0 {
		t.Fatalf("Expected no strokes before the first frame, got %d", surface.strokes)
	}

	frames := 0
	for director.Phase() == state.DRAWING {
		director.Frame()
		frames++
		if frames > 100 {
			t.Fatal("Live drawing never finished")
		}
	}
	if surface.strokes != 5 {
		t.Errorf("Expected 5 strokes, got %d", surface.strokes)
	}
	// five drawing frames plus the one that notices the count is exhausted
	if frames != 6 {
		t.Errorf("Expected 6 frames, got %d", frames)
	}
}

func TestTapCancelsLiveDrawing(t *testing.T) {
	director, surface, status := newDirector(t, func(s *settings.Settings) { s.DrawLive = true })

	director.Tap()
	director.Frame()
	director.Frame()

	if director.Tap() {
		t.Error("Expected cancel tap not to change the surface")
	}
	if surface.strokes != 2 {
		t.Errorf("Expected exactly 2 strokes, got %d", surface.strokes)
	}
	if director.Phase() != state.IDLE {
		t.Errorf("Expected IDLE after cancel, got %v", director.Phase())
	}
	if status.Snapshot().Walk.Remaining != 0 {
		t.Errorf("Expected no remaining segments, got %d", status.Snapshot().Walk.Remaining)
	}
	if director.Frame() || surface.strokes != 2 {
		t.Error("Expected no more strokes after cancel")
	}

	// The next tap starts a fresh walk.
	director.Tap()
	if len(surface.resets) != 2 {
		t.Errorf("Expected a second reset, got %d", len(surface.resets))
	}
	if director.Phase() != state.DRAWING {
		t.Errorf("Expected DRAWING again, got %v", director.Phase())
	}
	if got := status.Snapshot().Walk.Drawings; got != 2 {
		t.Errorf("Expected 2 drawings, got %d", got)
	}
}

func TestSettingsAreReadAtDrawTime(t *testing.T) {
	director, surface, _ := newDirector(t, func(s *settings.Settings) { s.DrawLive = true; s.LineCount = 3 })

	director.Tap()
	director.Settings.Set(settings.LineCount, 50)
	director.Settings.Set(settings.LineColor, "#ff0000")
	for director.Phase() == state.DRAWING {
		director.Frame()
	}
	if surface.strokes != 3 {
		t.Errorf("Expected the running drawing to keep 3 segments, got %d", surface.strokes)
	}

	director.Settings.Set(settings.DrawLive, false)
	director.Tap()
	if surface.strokes != 53 {
		t.Errorf("Expected the next drawing to use 50 segments, got %d total", surface.strokes)
	}
	if director.Current().LineColor != "#ff0000" {
		t.Errorf("Expected the new colour to be picked up, got %q", director.Current().LineColor)
	}
	last := surface.styles[len(surface.styles)-1]
	if r, g, b, _ := last.Line.RGBA(); r != 0xFFFF || g != 0 || b != 0 {
		t.Errorf("Expected red stroke style, got %v", last.Line)
	}
}

func TestEachDrawingUsesCurrentViewport(t *testing.T) {
	director, surface, _ := newDirector(t, nil)
	director.Tap()
	director.Viewport = fixedViewport{Width: 300, Height: 200}
	director.Tap()

	if surface.resets[1] != (walk.Dimensions{Width: 300, Height: 200}) {
		t.Errorf("Expected second drawing to use 300x200, got %+v", surface.resets[1])
	}
}
