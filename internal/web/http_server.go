package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rook-computer/doodler/internal/settings"
)

type HTTPServer struct {
	Config ServerConfig
	Deps   Deps

	// Handler overrides the default mux when set. Dev mode CORS is applied on
	// top of it either way.
	Handler http.Handler

	// Addr is the bound address once Start succeeds.
	Addr string

	mu     sync.Mutex
	srv    *http.Server
	ln     net.Listener
	closed bool
}

func NewHTTPServer(config ServerConfig, deps Deps) *HTTPServer {
	return &HTTPServer{Config: config, Deps: deps}
}

// Start validates the settings schema and begins serving. A schema the form
// generator cannot render is a hard failure.
func (s *HTTPServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("web server already stopped")
	}
	if s.srv != nil {
		return nil
	}
	if s.Deps.Settings == nil {
		return errors.New("web server has no settings store")
	}
	if _, err := settings.BuildForm(s.Deps.schema(), s.Deps.Settings.Snapshot()); err != nil {
		return fmt.Errorf("settings schema: %w", err)
	}

	addr := s.Config.ListenAddr
	if addr == "" {
		addr = ":80"
	}

	handler := s.Handler
	if handler == nil {
		handler = NewDefaultMux(s.Deps)
	}
	if s.Config.DevMode {
		handler = WithDevCORS(handler)
	}

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		s.srv = nil
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.ln = ln
	s.Addr = ln.Addr().String()

	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()

	srv := s.srv
	logger := s.Deps.Logger
	go func() {
		err := srv.Serve(ln)
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		if logger != nil {
			logger.Errorf("web", "serve: %v", err)
		}
	}()

	if logger != nil {
		logger.Infof("web", "listening on %s", s.Addr)
	}
	return nil
}

func (s *HTTPServer) Stop() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	srv := s.srv
	ln := s.ln
	s.srv = nil
	s.ln = nil
	s.mu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
