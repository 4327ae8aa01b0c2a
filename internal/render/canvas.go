package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/rook-computer/doodler/internal/walk"
	xdraw "golang.org/x/image/draw"
)

// Canvas is an offscreen RGBA surface with a canvas-like stroking API.
type Canvas struct {
	dc    *gg.Context
	style Style
	fonts *faceCache
}

func NewCanvas(dims walk.Dimensions) *Canvas {
	canvas := &Canvas{fonts: newFaceCache()}
	canvas.Reset(dims, Style{Background: Background, Line: Foreground, LineWidth: 1})
	return canvas
}

// Reset clears the canvas, resizes it to dims and applies style.
func (c *Canvas) Reset(dims walk.Dimensions, style Style) {
	if c.dc == nil || c.dc.Width() != dims.Width || c.dc.Height() != dims.Height {
		c.dc = gg.NewContext(dims.Width, dims.Height)
	}
	if style.Background == nil {
		style.Background = Background
	}
	if style.Line == nil {
		style.Line = Foreground
	}
	c.style = style

	c.FillBackground()
	c.dc.SetColor(style.Line)
	c.dc.SetLineWidth(style.LineWidth)
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.SetLineJoin(gg.LineJoinRound)
}

func (c *Canvas) BeginPath()          { c.dc.ClearPath() }
func (c *Canvas) MoveTo(x, y float64) { c.dc.MoveTo(x, y) }
func (c *Canvas) LineTo(x, y float64) { c.dc.LineTo(x, y) }
func (c *Canvas) Stroke()             { c.dc.Stroke() }

func (c *Canvas) Image() image.Image { return c.dc.Image() }

func (c *Canvas) Size() (int, int) { return c.dc.Width(), c.dc.Height() }

func (c *Canvas) FillBackground() {
	c.dc.ClearPath()
	c.dc.SetColor(c.style.Background)
	c.dc.Clear()
	c.dc.SetColor(c.style.Line)
}

func (c *Canvas) DrawTextCentered(text string, rect image.Rectangle, style TextStyle) {
	size := style.Size
	if size <= 0 {
		size = defaultTextSize
	}
	var textColor color.Color = c.style.Line
	if style.Color != nil {
		textColor = style.Color
	}
	c.dc.SetFontFace(c.fonts.face(size))
	c.dc.SetColor(textColor)
	center := rect.Min.Add(rect.Max).Div(2)
	c.dc.DrawStringAnchored(text, float64(center.X), float64(center.Y), 0.5, 0.5)
	c.dc.SetColor(c.style.Line)
}

// DrawImageInRect scales img into rect with nearest-neighbour sampling so QR
// modules stay crisp.
func (c *Canvas) DrawImageInRect(img image.Image, rect image.Rectangle) {
	if img == nil || rect.Empty() {
		return
	}
	dst, ok := c.dc.Image().(*image.RGBA)
	if !ok {
		return
	}
	xdraw.NearestNeighbor.Scale(dst, rect, img, img.Bounds(), xdraw.Over, nil)
}
