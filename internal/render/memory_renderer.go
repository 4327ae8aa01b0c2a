package render

import (
	"context"
	"image"
	"image/draw"
	"sync"

	"github.com/rook-computer/doodler/internal/walk"
)

// MemoryRenderer keeps the last presented frame in memory. Present is called
// from the app loop while Snapshot may be called from any goroutine.
type MemoryRenderer struct {
	dims walk.Dimensions

	mu     sync.RWMutex
	frame  *image.RGBA
	frames int
}

func NewMemoryRenderer(width, height int) *MemoryRenderer {
	return &MemoryRenderer{dims: walk.Dimensions{Width: width, Height: height}}
}

func (r *MemoryRenderer) Start(ctx context.Context) error { return nil }
func (r *MemoryRenderer) Stop() error                     { return nil }

func (r *MemoryRenderer) Viewport() walk.Dimensions { return r.dims }

func (r *MemoryRenderer) Present(frame image.Image) error {
	if frame == nil {
		return nil
	}
	copied := image.NewRGBA(frame.Bounds())
	draw.Draw(copied, copied.Bounds(), frame, frame.Bounds().Min, draw.Src)

	r.mu.Lock()
	r.frame = copied
	r.frames++
	r.mu.Unlock()
	return nil
}

// Snapshot returns the last presented frame, or nil before the first one.
// The returned image is not modified afterwards.
func (r *MemoryRenderer) Snapshot() *image.RGBA {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frame
}

// Frames counts calls to Present.
func (r *MemoryRenderer) Frames() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frames
}
