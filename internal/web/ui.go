package web

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/rook-computer/doodler/internal/assets"
	"github.com/rook-computer/doodler/internal/settings"
	"github.com/rook-computer/doodler/internal/state"
)

var settingsTemplate = template.Must(template.New("settings").Parse(assets.SettingsPage))

type settingsPage struct {
	Theme    state.Theme
	Phase    string
	Error    string
	Sections []settings.FormSection
}

func settingsPageHandler(deps Deps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			renderSettingsPage(w, deps, http.StatusOK, "")
		case http.MethodPost:
			if err := r.ParseForm(); err != nil {
				renderSettingsPage(w, deps, http.StatusBadRequest, "invalid form")
				return
			}
			if err := applyRawSettings(deps, formValues(deps.schema(), r)); err != nil {
				renderSettingsPage(w, deps, http.StatusBadRequest, err.Error())
				return
			}
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		}
	})
}

// formValues collects submitted values for every row in schema. Browsers omit
// unchecked checkboxes, so a missing checkbox means false; any other missing
// row is left alone.
func formValues(schema settings.Schema, r *http.Request) map[settings.Key]string {
	raw := map[settings.Key]string{}
	for _, section := range schema {
		for _, row := range section.Rows {
			values, ok := r.PostForm[string(row.Key)]
			switch {
			case ok && len(values) > 0:
				raw[row.Key] = values[0]
			case row.Value.Kind == settings.KindCheckbox:
				raw[row.Key] = ""
			}
		}
	}
	return raw
}

func renderSettingsPage(w http.ResponseWriter, deps Deps, status int, message string) {
	current := deps.Settings.Snapshot()
	sections, err := settings.BuildForm(deps.schema(), current)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "schema", err.Error())
		return
	}

	snapshot := deps.status()
	theme := snapshot.Theme
	if theme.Background == "" || theme.Line == "" {
		theme = state.Theme{Background: current.BackgroundColor, Line: current.LineColor}
	}

	var buf bytes.Buffer
	err = settingsTemplate.Execute(&buf, settingsPage{
		Theme:    theme,
		Phase:    snapshot.Phase.String(),
		Error:    message,
		Sections: sections,
	})
	if err != nil {
		if deps.Logger != nil {
			deps.Logger.Errorf("web", "render settings page: %v", err)
		}
		writeAPIError(w, http.StatusInternalServerError, "template", err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
