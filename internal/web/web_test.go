package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rook-computer/doodler/internal/settings"
	"github.com/rook-computer/doodler/internal/state"
)

func newTestDeps() Deps {
	return Deps{
		Settings: settings.NewStore(),
		Status:   state.NewStore(),
	}
}

func serve(t *testing.T, deps Deps, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	NewDefaultMux(deps).ServeHTTP(rec, req)
	return rec
}

func TestGetSettings(t *testing.T) {
	rec := serve(t, newTestDeps(), http.MethodGet, "/api/v1/settings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var got settings.Settings
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != settings.Defaults() {
		t.Errorf("Expected defaults, got %+v", got)
	}
}

func TestPatchSettings(t *testing.T) {
	deps := newTestDeps()
	body := `{"lineCount": 40, "lineColor": "#F00", "mirror": false, "allowDiagonals": "Only", "lineWidth": "2.5"}`
	rec := serve(t, deps, http.MethodPatch, "/api/v1/settings", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got := deps.Settings.Snapshot()
	if got.LineCount != 40 {
		t.Errorf("Expected lineCount 40, got %d", got.LineCount)
	}
	if got.LineColor != "#ff0000" {
		t.Errorf("Expected #ff0000, got %s", got.LineColor)
	}
	if got.Mirror {
		t.Error("Expected mirror off")
	}
	if got.AllowDiagonals != settings.DiagonalsOnly {
		t.Errorf("Expected only, got %s", got.AllowDiagonals)
	}
	if got.LineWidth != 2.5 {
		t.Errorf("Expected 2.5, got %v", got.LineWidth)
	}
}

func TestPatchSettingsIsAllOrNothing(t *testing.T) {
	cases := []struct {
		name string
		body string
		code string
	}{
		{"unknown key", `{"lineCount": 5, "nope": 1}`, "unknown_setting"},
		{"below minimum", `{"lineCount": 5, "maxLineLength": 0}`, "below_minimum"},
		{"bad option", `{"lineCount": 5, "allowDiagonals": "sometimes"}`, "invalid_value"},
		{"bad colour", `{"lineCount": 5, "backgroundColor": "blue"}`, "invalid_value"},
		{"nested value", `{"lineCount": {"n": 5}}`, "invalid_value"},
		{"null checkbox", `{"lineCount": 5, "mirror": null}`, "invalid_value"},
		{"null number", `{"lineCount": null}`, "invalid_value"},
		{"infinite width", `{"lineCount": 5, "lineWidth": "Inf"}`, "invalid_value"},
		{"not json", `{`, "invalid_json"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			deps := newTestDeps()
			rec := serve(t, deps, http.MethodPatch, "/api/v1/settings", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", rec.Code)
			}
			var apiErr apiError
			if err := json.Unmarshal(rec.Body.Bytes(), &apiErr); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if apiErr.Error != tc.code {
				t.Errorf("Expected error %q, got %q", tc.code, apiErr.Error)
			}
			if got := deps.Settings.Snapshot(); got != settings.Defaults() {
				t.Errorf("Expected store untouched, got %+v", got)
			}
		})
	}
}

func TestSchemaEndpoint(t *testing.T) {
	rec := serve(t, newTestDeps(), http.MethodGet, "/api/v1/settings/schema", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var sections []schemaSectionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &sections); err != nil {
		t.Fatalf("decode: %v", err)
	}
	rows := 0
	for _, section := range sections {
		rows += len(section.Rows)
	}
	if rows != len(settings.Keys) {
		t.Errorf("Expected %d rows, got %d", len(settings.Keys), rows)
	}
}

func TestStateEndpoint(t *testing.T) {
	deps := newTestDeps()
	deps.Status.SetPhase(state.DRAWING)
	rec := serve(t, deps, http.MethodGet, "/api/v1/state", "")
	var got struct {
		Phase string `json:"phase"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Phase != "drawing" {
		t.Errorf("Expected drawing, got %q", got.Phase)
	}
}

func TestTapEndpoint(t *testing.T) {
	deps := newTestDeps()
	taps := 0
	deps.TapFunc = func(ctx context.Context) error {
		taps++
		return nil
	}
	if rec := serve(t, deps, http.MethodGet, "/api/v1/tap", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for GET, got %d", rec.Code)
	}
	if rec := serve(t, deps, http.MethodPost, "/api/v1/tap", ""); rec.Code != http.StatusAccepted {
		t.Errorf("Expected 202, got %d", rec.Code)
	}
	if taps != 1 {
		t.Errorf("Expected 1 tap, got %d", taps)
	}

	deps.TapFunc = func(ctx context.Context) error { return errors.New("stopped") }
	if rec := serve(t, deps, http.MethodPost, "/api/v1/tap", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", rec.Code)
	}

	deps.TapFunc = nil
	if rec := serve(t, deps, http.MethodPost, "/api/v1/tap", ""); rec.Code != http.StatusNotImplemented {
		t.Errorf("Expected 501, got %d", rec.Code)
	}
}

func TestSettingsPageRendersControls(t *testing.T) {
	rec := serve(t, newTestDeps(), http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`type="color" name="backgroundColor" value="#ffffff"`,
		`type="number" name="lineCount" value="518400"`,
		`type="checkbox" name="mirror" checked`,
		`<option value="yes" selected>Yes</option>`,
		`min="1"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected page to contain %q", want)
		}
	}
}

func TestSettingsPageUnknownPath(t *testing.T) {
	if rec := serve(t, newTestDeps(), http.MethodGet, "/missing", ""); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestSettingsFormPost(t *testing.T) {
	deps := newTestDeps()
	form := url.Values{
		"lineCount":      {"12"},
		"allowDiagonals": {"no"},
		"drawLive":       {"on"},
		"_form":          {"settings"},
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	NewDefaultMux(deps).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	got := deps.Settings.Snapshot()
	if got.LineCount != 12 || got.AllowDiagonals != settings.DiagonalsNo || !got.DrawLive {
		t.Errorf("Expected submitted values, got %+v", got)
	}
	// Unchecked boxes are omitted by browsers.
	if got.Mirror || got.BeginInCenter {
		t.Errorf("Expected omitted checkboxes to be false, got %+v", got)
	}
	if got.LineColor != "#000000" {
		t.Errorf("Expected untouched colour, got %s", got.LineColor)
	}
}

func TestSettingsFormPostInvalid(t *testing.T) {
	deps := newTestDeps()
	form := url.Values{"lineCount": {"0"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	NewDefaultMux(deps).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `class="error"`) {
		t.Error("Expected error message on page")
	}
	if got := deps.Settings.Snapshot(); got != settings.Defaults() {
		t.Errorf("Expected store untouched, got %+v", got)
	}
}

func TestDevCORSPreflight(t *testing.T) {
	handler := WithDevCORS(NewDefaultMux(newTestDeps()))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/settings", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Expected origin echoed, got %q", got)
	}
}

func TestSettingsURL(t *testing.T) {
	cases := []struct {
		listen string
		host   string
		want   string
	}{
		{":80", "10.0.0.2", "http://10.0.0.2/"},
		{":8080", "10.0.0.2", "http://10.0.0.2:8080/"},
		{"192.168.1.5:8080", "10.0.0.2", "http://192.168.1.5:8080/"},
		{":80", "", "http://127.0.0.1/"},
	}
	for _, tc := range cases {
		got := ServerConfig{ListenAddr: tc.listen}.SettingsURL(tc.host)
		if got != tc.want {
			t.Errorf("%s: Expected %s, got %s", tc.listen, tc.want, got)
		}
	}
}

func TestHTTPServerStartStop(t *testing.T) {
	server := NewHTTPServer(ServerConfig{ListenAddr: "127.0.0.1:0"}, newTestDeps())
	if err := server.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	resp, err := http.Get("http://" + server.Addr + "/api/v1/state")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
	if err := server.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
	if err := server.Start(context.Background()); err == nil {
		t.Error("Expected error restarting a stopped server")
	}
}

func TestHTTPServerRejectsBadSchema(t *testing.T) {
	deps := newTestDeps()
	deps.Schema = settings.Schema{{Name: "Broken", Rows: []settings.Row{
		{Key: settings.LineCount, Name: "Line count", Value: settings.Value{Kind: "slider"}},
	}}}
	server := NewHTTPServer(ServerConfig{ListenAddr: "127.0.0.1:0"}, deps)
	if err := server.Start(context.Background()); !errors.Is(err, settings.ErrUnhandledKind) {
		t.Errorf("Expected ErrUnhandledKind, got %v", err)
	}
}
