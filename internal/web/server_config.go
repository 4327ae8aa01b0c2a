package web

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvListenAddr = "DOODLER_LISTEN"
	EnvDevMode    = "DOODLER_DEV"
)

// ServerConfig contains settings for running the HTTP server.
//
// The intended defaults differ per binary:
// - appliance: :80
// - simulator: :8080
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

func DefaultServerConfigFromEnv(defaultListenAddr string) (ServerConfig, error) {
	listenAddr := os.Getenv(EnvListenAddr)
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	devMode := false
	if raw := os.Getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		devMode = parsed
	}

	return ServerConfig{ListenAddr: listenAddr, DevMode: devMode}, nil
}

// SettingsURL is the address shown to users for reaching the settings page
// from another device on the network.
func (config ServerConfig) SettingsURL(host string) string {
	port := ""
	if i := strings.LastIndex(config.ListenAddr, ":"); i >= 0 {
		port = config.ListenAddr[i+1:]
		if configured := config.ListenAddr[:i]; configured != "" && configured != "0.0.0.0" {
			host = configured
		}
	}
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" || port == "80" {
		return "http://" + host + "/"
	}
	return "http://" + host + ":" + port + "/"
}
