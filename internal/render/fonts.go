package render

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/doodler/internal/assets"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var (
	parseOnce  sync.Once
	parsedFont *truetype.Font
	parseErr   error
)

func loadFont() (*truetype.Font, error) {
	parseOnce.Do(func() {
		parsedFont, parseErr = truetype.Parse(assets.FontTTF)
	})
	return parsedFont, parseErr
}

// faceCache keeps one face per point size.
type faceCache struct {
	mu    sync.Mutex
	faces map[float64]font.Face
}

func newFaceCache() *faceCache {
	return &faceCache{faces: map[float64]font.Face{}}
}

func (cache *faceCache) face(size float64) font.Face {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if face, ok := cache.faces[size]; ok {
		return face
	}
	var face font.Face = basicfont.Face7x13
	if ttf, err := loadFont(); err == nil {
		face = truetype.NewFace(ttf, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	}
	cache.faces[size] = face
	return face
}
