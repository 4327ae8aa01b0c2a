package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"

	"github.com/rook-computer/doodler/internal/render"
	"github.com/rook-computer/doodler/internal/settings"
)

// SimControl exposes what the framebuffer would show, plus a few knobs that
// make manual testing quicker.
type SimControl struct {
	Renderer *render.MemoryRenderer
	Settings *settings.Store

	startup settings.Settings
}

func NewSimControl(renderer *render.MemoryRenderer, store *settings.Store) *SimControl {
	return &SimControl{Renderer: renderer, Settings: store, startup: store.Snapshot()}
}

// Reset restores the settings the simulator started with.
func (c *SimControl) Reset() settings.Settings {
	c.Settings.Replace(c.startup)
	return c.startup
}

// FramePNG encodes the last presented frame. It returns nil before the app
// has presented anything.
func (c *SimControl) FramePNG() ([]byte, error) {
	frame := c.Renderer.Snapshot()
	if frame == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	mux.HandleFunc("/sim/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sim/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(viewerPage))
	})

	mux.HandleFunc("/sim/frame.png", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		data, err := control.FramePNG()
		if err != nil {
			writeSimError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if data == nil {
			writeSimError(w, http.StatusServiceUnavailable, "no frame yet")
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(data)
	})

	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeSimJSON(w, http.StatusOK, control.Reset())
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": "sim", "message": message})
}

// viewerPage polls the frame and forwards clicks as taps.
const viewerPage = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>doodler simulator</title>
<style>
  body { margin: 0; background: #222; color: #eee; font-family: sans-serif; }
  header { padding: 0.5rem 1rem; display: flex; gap: 1rem; align-items: center; }
  img { display: block; max-width: 100vw; max-height: calc(100vh - 3rem); margin: 0 auto; cursor: pointer; }
  a { color: #9cf; }
</style>
</head>
<body>
<header>
  <span id="phase">…</span>
  <a href="/" target="_blank">settings</a>
  <button id="reset" type="button">reset settings</button>
</header>
<img id="frame" alt="screen">
<script>
  const frame = document.getElementById("frame");
  const phase = document.getElementById("phase");
  async function refresh() {
    const response = await fetch("/api/v1/state");
    if (response.ok) {
      const body = await response.json();
      phase.textContent = body.phase + " (" + body.walk.segments + " segments)";
    }
    frame.src = "/sim/frame.png?t=" + Date.now();
  }
  frame.addEventListener("click", async () => {
    await fetch("/api/v1/tap", { method: "POST" });
    refresh();
  });
  document.getElementById("reset").addEventListener("click", async () => {
    await fetch("/sim/reset", { method: "POST" });
  });
  setInterval(refresh, 100);
  refresh();
</script>
</body>
</html>
`
