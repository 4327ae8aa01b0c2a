package render

import "image/color"

// Fallback colours, used for the welcome screen and for unparseable settings.
var (
	Foreground = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	Background = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	// Canvas size used when no device reports its own.
	CanvasWidth  = 1920
	CanvasHeight = 1080
)

const defaultTextSize = 48
