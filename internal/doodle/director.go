// Package doodle runs the draw lifecycle: it resets the surface, walks the
// configured number of segments either at once or one per frame, and reacts
// to taps.
package doodle

import (
	"github.com/rook-computer/doodler/internal/random"
	"github.com/rook-computer/doodler/internal/render"
	"github.com/rook-computer/doodler/internal/settings"
	"github.com/rook-computer/doodler/internal/state"
	"github.com/rook-computer/doodler/internal/walk"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Viewport reports the drawable area at the moment a drawing starts.
type Viewport interface {
	Viewport() walk.Dimensions
}

// Director owns one surface and the walk drawn on it. It is not safe for
// concurrent use; the app calls it from its event loop only.
type Director struct {
	Settings *settings.Store
	Surface  render.Surface
	Viewport Viewport
	Rand     *random.Source
	Logger   Logger
	// Status receives phase and progress updates when set.
	Status *state.Store
	// OnReady runs after the surface is reset and before the first segment.
	OnReady func()
	// MaxRetries is passed to each walker; zero means unbounded.
	MaxRetries int

	phase     state.Phase
	current   settings.Settings
	walker    *walk.Walker
	walk      walk.State
	remaining int
	drawings  int
}

func New(store *settings.Store, surface render.Surface, viewport Viewport, rng *random.Source) *Director {
	return &Director{
		Settings: store,
		Surface:  surface,
		Viewport: viewport,
		Rand:     rng,
		phase:    state.WELCOME,
	}
}

func (d *Director) Phase() state.Phase { return d.phase }

// Current returns the settings the latest drawing was started with.
func (d *Director) Current() settings.Settings { return d.current }

// Tap starts a drawing from Welcome or Idle and cancels a live drawing.
// It reports whether the surface changed.
func (d *Director) Tap() bool {
	switch d.phase {
	case state.DRAWING:
		d.remaining = 0
		d.infof("drawing cancelled after %d segments", d.walker.Segments)
		d.finish()
		return false
	default:
		d.Draw(d.OnReady)
		return true
	}
}

// Draw starts a fresh drawing with the current settings. In batch mode every
// segment is drawn before it returns; in live mode segments follow on Frame.
func (d *Director) Draw(onReady func()) {
	dims := d.Viewport.Viewport()
	d.current = d.Settings.Snapshot()
	d.walk = walk.NewState(dims, d.current, d.Rand)
	d.walker = walk.NewWalker(d.current, d.Rand)
	d.walker.Logger = d.Logger
	d.walker.MaxRetries = d.MaxRetries
	d.drawings++

	d.Surface.Reset(dims, render.StyleFromSettings(d.current))
	if onReady != nil {
		onReady()
	}

	if !d.current.DrawLive {
		for i := 0; i < d.current.LineCount; i++ {
			d.walk.Last = d.walker.AddLine(d.Surface, d.walk)
		}
		d.remaining = 0
		d.infof("drew %d segments at once on %dx%d", d.walker.Segments, dims.Width, dims.Height)
		d.finish()
		return
	}

	d.remaining = d.current.LineCount
	d.setPhase(state.DRAWING)
	d.publish()
}

// Frame advances a live drawing by one segment. It reports whether the
// surface changed.
func (d *Director) Frame() bool {
	if d.phase != state.DRAWING {
		return false
	}
	d.remaining--
	if d.remaining < 0 {
		d.remaining = 0
		d.infof("stopping, reached line count")
		d.finish()
		return false
	}
	d.walk.Last = d.walker.AddLine(d.Surface, d.walk)
	d.publish()
	return true
}

func (d *Director) finish() {
	d.setPhase(state.IDLE)
	d.publish()
}

func (d *Director) setPhase(phase state.Phase) {
	d.phase = phase
	if d.Status != nil {
		d.Status.SetPhase(phase)
	}
}

func (d *Director) publish() {
	if d.Status == nil || d.walker == nil {
		return
	}
	d.Status.UpdateWalk(state.WalkInfo{
		Drawings:  d.drawings,
		Segments:  d.walker.Segments,
		Remaining: d.remaining,
		Origin:    d.walk.Origin,
		Viewport: walk.Dimensions{
			Width:  int(d.walk.Max.X),
			Height: int(d.walk.Max.Y),
		},
	})
}

func (d *Director) infof(format string, args ...interface{}) {
	if d.Logger != nil {
		d.Logger.Infof("doodle", format, args...)
	}
}
