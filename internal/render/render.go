package render

import (
	"context"
	"image"
	"image/color"

	"github.com/rook-computer/doodler/internal/settings"
	"github.com/rook-computer/doodler/internal/state"
	"github.com/rook-computer/doodler/internal/walk"
)

// Renderer is an output device for finished canvas frames.
type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	// Viewport is the drawable area, read at the start of every drawing.
	Viewport() walk.Dimensions
	Present(frame image.Image) error
}

// Surface is the 2D drawing context a doodle is drawn on.
type Surface interface {
	walk.Pen
	Reset(dims walk.Dimensions, style Style)
	Image() image.Image
}

type Screen interface {
	Draw(d Drawer, s state.State)
}

// Drawer is what the canvas offers to screens that are not the doodle itself.
type Drawer interface {
	// Size returns the canvas size in pixels.
	Size() (width int, height int)

	FillBackground()
	DrawTextCentered(text string, rect image.Rectangle, style TextStyle)
	DrawImageInRect(img image.Image, rect image.Rectangle)
}

// Style is applied to the surface when it is reset.
type Style struct {
	Background color.Color
	Line       color.Color
	LineWidth  float64
}

func StyleFromSettings(current settings.Settings) Style {
	return Style{
		Background: settings.ParseColor(current.BackgroundColor, Background),
		Line:       settings.ParseColor(current.LineColor, Foreground),
		LineWidth:  current.LineWidth,
	}
}

type TextStyle struct {
	Color color.Color
	Size  float64 // points; 0 means renderer default
}

type NoopRenderer struct{}

func (n *NoopRenderer) Start(ctx context.Context) error { return nil }
func (n *NoopRenderer) Stop() error                     { return nil }
func (n *NoopRenderer) Viewport() walk.Dimensions {
	return walk.Dimensions{Width: CanvasWidth, Height: CanvasHeight}
}
func (n *NoopRenderer) Present(frame image.Image) error { return nil }
