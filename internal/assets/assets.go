package assets

import (
	"embed"

	"golang.org/x/image/font/gofont/goregular"
)

// FontTTF is the face used for on-screen text.
var FontTTF = goregular.TTF

//go:embed web/*.html
var webFS embed.FS

// SettingsPage is the HTML template for the generated settings form.
var SettingsPage string

func init() {
	page, err := webFS.ReadFile("web/settings.html")
	if err != nil {
		panic(err)
	}
	SettingsPage = string(page)
}
