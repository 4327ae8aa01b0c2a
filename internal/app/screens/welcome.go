package screens

import (
	"image"

	"github.com/rook-computer/doodler/internal/render"
	"github.com/rook-computer/doodler/internal/render/layout"
	"github.com/rook-computer/doodler/internal/state"
	qrcode "github.com/skip2/go-qrcode"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// WelcomeScreen is shown until the first tap. It tells the user to tap and,
// when the settings page is reachable, shows its address as text and QR code.
type WelcomeScreen struct {
	Logger Logger

	qrPayload string
	qrImage   image.Image
}

func (screen *WelcomeScreen) Draw(d render.Drawer, st state.State) {
	d.FillBackground()

	width, height := d.Size()
	bounds := layout.Inset(image.Rect(0, 0, width, height), height/20)
	top, bottom := layout.SplitHorizontal(bounds, bounds.Dy()/4)
	title, hint := layout.SplitHorizontal(top, top.Dy()*2/3)

	d.DrawTextCentered("doodler", title, render.TextStyle{Size: float64(height) / 12})
	d.DrawTextCentered("tap anywhere to draw", hint, render.TextStyle{Size: float64(height) / 30})

	if st.SettingsURL == "" {
		return
	}
	qrArea, caption := layout.SplitHorizontal(bottom, bottom.Dy()*5/6)
	if qr := screen.qr(st.SettingsURL); qr != nil {
		d.DrawImageInRect(qr, layout.CenterSquare(qrArea))
	}
	d.DrawTextCentered("settings: "+st.SettingsURL, caption, render.TextStyle{Size: float64(height) / 36})
}

// qr caches the code for the last payload; the URL rarely changes.
func (screen *WelcomeScreen) qr(payload string) image.Image {
	if payload == screen.qrPayload && screen.qrImage != nil {
		return screen.qrImage
	}
	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		if screen.Logger != nil {
			screen.Logger.Errorf("welcome", "qr code for %q: %v", payload, err)
		}
		return nil
	}
	// One pixel per module; DrawImageInRect scales it up.
	screen.qrPayload = payload
	screen.qrImage = code.Image(-1)
	return screen.qrImage
}
