package web

import (
	"context"
	"net/http"

	"github.com/rook-computer/doodler/internal/settings"
	"github.com/rook-computer/doodler/internal/state"
)

type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Deps are the collaborators behind the settings page and API.
type Deps struct {
	Settings *settings.Store
	// Schema defaults to settings.DefaultSchema.
	Schema settings.Schema
	// Status is optional; without it /api/v1/state reports the zero state.
	Status *state.Store
	// TapFunc forwards a tap to the running app, as if the screen was tapped.
	TapFunc func(ctx context.Context) error
	Logger  logger
}

func (d Deps) schema() settings.Schema {
	if d.Schema == nil {
		return settings.DefaultSchema()
	}
	return d.Schema
}

func (d Deps) status() state.State {
	if d.Status == nil {
		return state.State{}
	}
	return d.Status.Snapshot()
}

// RegisterAPIV1 registers the public API routes under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, deps Deps) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(deps)))
}

// RegisterUI serves the generated settings page at "/".
func RegisterUI(mux *http.ServeMux, deps Deps) {
	mux.Handle("/", settingsPageHandler(deps))
}

// NewDefaultMux builds the standard mux used by both the appliance and simulator:
// - /api/v1/* for the API
// - / for the settings page
func NewDefaultMux(deps Deps) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, deps)
	RegisterUI(mux, deps)
	return mux
}
