package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/doodler/internal/app"
	"github.com/rook-computer/doodler/internal/render"
	"github.com/rook-computer/doodler/internal/settings"
	"github.com/rook-computer/doodler/internal/state"
	"github.com/rook-computer/doodler/internal/system"
	"github.com/rook-computer/doodler/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	width := flag.Int("width", 1280, "simulated screen width")
	height := flag.Int("height", 720, "simulated screen height")
	fps := flag.Int("fps", app.DefaultFPS, "frames per second while drawing live")
	seed := flag.Int64("seed", 0, "random seed; 0 seeds from the clock")
	maxRetries := flag.Int("max-retries", 0, "give up on a segment after this many out-of-bounds attempts; 0 retries forever")
	verbose := flag.Bool("v", false, "log to stdout")
	flag.Parse()

	if *width < 2 || *height < 2 {
		fmt.Println("width and height must be at least 2")
		os.Exit(2)
	}

	var logger app.Logger = app.NoopLogger{}
	if *verbose {
		logger = app.NewFileLogger(os.Stdout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode}
	store := settings.NewStoreWith(settings.DefaultsFor(*width, *height))
	status := state.NewStore()
	host, _ := system.StaticNetInfo("127.0.0.1").IP(ctx)
	status.SetSettingsURL(config.SettingsURL(host))

	renderer := render.NewMemoryRenderer(*width, *height)
	a := app.New(store, status, renderer, nil)
	a.Logger = logger
	a.FPS = *fps
	a.Seed = *seed
	a.MaxRetries = *maxRetries

	deps := web.Deps{Settings: store, Status: status, TapFunc: a.Tap, Logger: logger}
	server := web.NewHTTPServer(config, deps)
	mux := web.NewDefaultMux(deps)
	registerSimEndpoints(mux, NewSimControl(renderer, store))
	server.Handler = mux
	a.Web = server

	fmt.Println("doodler simulator")
	fmt.Println("Screen:", status.Snapshot().SettingsURL+"sim/")
	fmt.Println("Settings:", status.Snapshot().SettingsURL)

	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("simulator error:", err)
		os.Exit(1)
	}
}
