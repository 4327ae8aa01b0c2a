package render

import (
	"context"
	"image"
	"image/color"
	"sync/atomic"

	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/doodler/internal/walk"
)

const DefaultFramebuffer = "/dev/fb0"

// FBRenderer shows frames on a Linux framebuffer device. Its viewport is the
// device resolution, so canvases are drawn pixel for pixel.
type FBRenderer struct {
	Path   string
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	dev     *fb.Device
	running atomic.Bool
}

func NewFBRenderer(path string) *FBRenderer {
	if path == "" {
		path = DefaultFramebuffer
	}
	return &FBRenderer{Path: path}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	dev, err := fb.Open(r.Path)
	if err != nil {
		return err
	}
	r.dev = dev
	if r.Logger != nil {
		bounds := dev.Bounds()
		r.Logger.Infof("fb", "framebuffer %s open, bounds=%dx%d", r.Path, bounds.Dx(), bounds.Dy())
	}
	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	if r.dev != nil {
		r.dev.Close()
	}
	return nil
}

func (r *FBRenderer) Viewport() walk.Dimensions {
	if r.dev == nil {
		return walk.Dimensions{Width: CanvasWidth, Height: CanvasHeight}
	}
	bounds := r.dev.Bounds()
	return walk.Dimensions{Width: bounds.Dx(), Height: bounds.Dy()}
}

func (r *FBRenderer) Present(frame image.Image) error {
	if !r.running.Load() || r.dev == nil || frame == nil {
		return nil
	}
	blitToFB(r.dev, frame)
	return nil
}

// blitToFB copies frame onto the device, sampling nearest neighbours when the
// sizes differ.
func blitToFB(dev *fb.Device, frame image.Image) {
	bounds := dev.Bounds()
	src := frame.Bounds()
	fbWidth, fbHeight := bounds.Dx(), bounds.Dy()
	if fbWidth == 0 || fbHeight == 0 || src.Empty() {
		return
	}
	rgba, isRGBA := frame.(*image.RGBA)
	for y := 0; y < fbHeight; y++ {
		sy := src.Min.Y + (y*src.Dy())/fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := src.Min.X + (x*src.Dx())/fbWidth
			var pixel color.RGBA
			if isRGBA {
				pixel = rgba.RGBAAt(sx, sy)
			} else {
				pixel = color.RGBAModel.Convert(frame.At(sx, sy)).(color.RGBA)
			}
			pixel.A = 0xFF
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, pixel)
		}
	}
}
