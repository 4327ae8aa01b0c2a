package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rook-computer/doodler/internal/settings"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type schemaRowResponse struct {
	Key         settings.Key  `json:"key"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Kind        settings.Kind `json:"kind"`
	Min         *int          `json:"min,omitempty"`
	Options     []string      `json:"options,omitempty"`
}

type schemaSectionResponse struct {
	Name string              `json:"name"`
	Rows []schemaRowResponse `json:"rows"`
}

func apiV1Router(deps Deps) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/settings", func(w http.ResponseWriter, r *http.Request) { handleSettings(w, r, deps) })
	mux.HandleFunc("/settings/schema", func(w http.ResponseWriter, r *http.Request) { handleSchema(w, r, deps) })
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) { handleState(w, r, deps) })
	mux.HandleFunc("/tap", func(w http.ResponseWriter, r *http.Request) { handleTap(w, r, deps) })
	return mux
}

func handleSettings(w http.ResponseWriter, r *http.Request, deps Deps) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, deps.Settings.Snapshot())
	case http.MethodPatch, http.MethodPost:
		var patch map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_json", "invalid json")
			return
		}
		raw := make(map[settings.Key]string, len(patch))
		for key, value := range patch {
			text, err := rawJSONValue(value)
			if err != nil {
				writeAPIError(w, http.StatusBadRequest, "invalid_value", fmt.Sprintf("%s: %v", key, err))
				return
			}
			raw[settings.Key(key)] = text
		}
		if err := applyRawSettings(deps, raw); err != nil {
			writeSettingsError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, deps.Settings.Snapshot())
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func handleSchema(w http.ResponseWriter, r *http.Request, deps Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	schema := deps.schema()
	out := make([]schemaSectionResponse, 0, len(schema))
	for _, section := range schema {
		rows := make([]schemaRowResponse, 0, len(section.Rows))
		for _, row := range section.Rows {
			rows = append(rows, schemaRowResponse{
				Key:         row.Key,
				Name:        row.Name,
				Description: row.Description,
				Kind:        row.Value.Kind,
				Min:         row.Value.Min,
				Options:     row.Value.Options,
			})
		}
		out = append(out, schemaSectionResponse{Name: section.Name, Rows: rows})
	}
	writeJSON(w, http.StatusOK, out)
}

func handleState(w http.ResponseWriter, r *http.Request, deps Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, deps.status())
}

func handleTap(w http.ResponseWriter, r *http.Request, deps Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.TapFunc == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "tap not configured")
		return
	}
	if err := deps.TapFunc(r.Context()); err != nil {
		writeAPIError(w, http.StatusServiceUnavailable, "tap_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

// applyRawSettings parses every value before writing any, so a bad field
// leaves the store untouched.
func applyRawSettings(deps Deps, raw map[settings.Key]string) error {
	schema := deps.schema()
	parsed := make(map[settings.Key]any, len(raw))
	for key, value := range raw {
		row, ok := schema.Row(key)
		if !ok {
			return fmt.Errorf("%w: %q", settings.ErrUnknownKey, key)
		}
		typed, err := settings.ParseValue(row, value)
		if err != nil {
			return err
		}
		parsed[key] = typed
	}
	deps.Settings.Update(parsed)
	if deps.Logger != nil && len(parsed) > 0 {
		deps.Logger.Infof("web", "updated %d setting(s)", len(parsed))
	}
	return nil
}

// rawJSONValue turns a JSON scalar into the text a form field would submit.
// null is rejected; it would otherwise decode as an empty string.
func rawJSONValue(value json.RawMessage) (string, error) {
	if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return "", errors.New("null is not a value")
	}
	var text string
	if err := json.Unmarshal(value, &text); err == nil {
		return text, nil
	}
	var flag bool
	if err := json.Unmarshal(value, &flag); err == nil {
		return fmt.Sprint(flag), nil
	}
	var number json.Number
	if err := json.Unmarshal(value, &number); err == nil {
		return number.String(), nil
	}
	return "", errors.New("expected a string, number or boolean")
}

func writeSettingsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, settings.ErrUnknownKey):
		writeAPIError(w, http.StatusBadRequest, "unknown_setting", err.Error())
	case errors.Is(err, settings.ErrBelowMinimum):
		writeAPIError(w, http.StatusBadRequest, "below_minimum", err.Error())
	default:
		writeAPIError(w, http.StatusBadRequest, "invalid_value", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
