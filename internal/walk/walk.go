// Package walk generates the random line walk that makes up a doodle.
//
// A walk starts at an origin and is extended one segment at a time. Each
// segment moves the pen along one or both axes by a random delta and is
// rejected if it would leave the open drawable area.
package walk

import (
	"github.com/rook-computer/doodler/internal/random"
	"github.com/rook-computer/doodler/internal/settings"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// State is rebuilt for every drawing and never shared between drawings.
type State struct {
	Origin Point
	Last   Point
	Max    Point
}

// Pen is the subset of a 2D drawing context the walk strokes with.
type Pen interface {
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// NewState places the origin in the centre of dims, or at a random integer
// point strictly inside dims when BeginInCenter is off.
func NewState(dims Dimensions, current settings.Settings, rng *random.Source) State {
	origin := Point{X: float64(dims.Width) / 2, Y: float64(dims.Height) / 2}
	if !current.BeginInCenter {
		origin = Point{
			X: float64(rng.Int(1, dims.Width-1)),
			Y: float64(rng.Int(1, dims.Height-1)),
		}
	}
	return State{
		Origin: origin,
		Last:   origin,
		Max:    Point{X: float64(dims.Width), Y: float64(dims.Height)},
	}
}

// Inside reports whether p lies strictly inside the drawable area.
func (state State) Inside(p Point) bool {
	return p.X > 0 && p.X < state.Max.X && p.Y > 0 && p.Y < state.Max.Y
}

// Walker extends a walk using the settings captured when the drawing began.
type Walker struct {
	Settings settings.Settings
	Rand     *random.Source
	Logger   Logger

	// MaxRetries caps out-of-bounds retries per segment when positive.
	// Zero keeps retrying until a candidate fits.
	MaxRetries int

	// Segments counts primary segments drawn so far.
	Segments int
}

func NewWalker(current settings.Settings, rng *random.Source) *Walker {
	return &Walker{Settings: current, Rand: rng}
}

// AddLine draws the next segment from state.Last and returns the new pen
// position. When a candidate leaves the view and OutsideResetsToBeginning is
// set, nothing is drawn and the origin is returned.
func (w *Walker) AddLine(pen Pen, state State) Point {
	last := state.Last
	for attempt := 1; ; attempt++ {
		alterX, alterY := w.axes()
		next := last
		if alterX {
			next.X = last.X + float64(w.delta())
		}
		if alterY {
			next.Y = last.Y + float64(w.delta())
		}

		if !state.Inside(next) {
			if w.Settings.OutsideResetsToBeginning {
				return state.Origin
			}
			if w.MaxRetries > 0 && attempt >= w.MaxRetries {
				w.errorf("gave up after %d out-of-bounds attempts at (%.1f, %.1f)", attempt, last.X, last.Y)
				return last
			}
			continue
		}

		stroke(pen, last, next)
		if w.Settings.Mirror {
			stroke(pen, Mirror(last, state.Max.X), Mirror(next, state.Max.X))
		}
		w.Segments++
		return next
	}
}

// Mirror reflects p across the vertical centre line of a canvas width wide.
func Mirror(p Point, width float64) Point {
	return Point{X: width - p.X, Y: p.Y}
}

func (w *Walker) axes() (alterX, alterY bool) {
	switch w.Settings.AllowDiagonals {
	case settings.DiagonalsOnly:
		return true, true
	case settings.DiagonalsNo:
		if w.Rand.Coin() {
			return true, false
		}
		return false, true
	case settings.DiagonalsYes:
		alterX = w.Rand.Coin()
		alterY = w.Rand.Coin()
		if !alterX && !alterY {
			if w.Rand.Coin() {
				alterX = true
			} else {
				alterY = true
			}
		}
		return alterX, alterY
	default:
		w.errorf("unhandled diagonal setting %q", w.Settings.AllowDiagonals)
		return false, false
	}
}

// delta returns a non-zero step. With varying lengths a drawn zero becomes ±1,
// which makes a magnitude of 1 twice as likely as any other.
func (w *Walker) delta() int {
	maxLength := w.Settings.MaxLineLength
	if w.Settings.AllowDifferentLineLengths {
		d := w.Rand.Int(-maxLength, maxLength)
		if d == 0 {
			if w.Rand.Coin() {
				return -1
			}
			return 1
		}
		return d
	}
	if w.Rand.Coin() {
		return -maxLength
	}
	return maxLength
}

func (w *Walker) errorf(format string, args ...interface{}) {
	if w.Logger != nil {
		w.Logger.Errorf("walk", format, args...)
	}
}

func stroke(pen Pen, from, to Point) {
	pen.BeginPath()
	pen.MoveTo(from.X, from.Y)
	pen.LineTo(to.X, to.Y)
	pen.Stroke()
}
