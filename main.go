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
	"github.com/rook-computer/doodler/internal/buttons"
	"github.com/rook-computer/doodler/internal/render"
	"github.com/rook-computer/doodler/internal/settings"
	"github.com/rook-computer/doodler/internal/state"
	"github.com/rook-computer/doodler/internal/system"
	"github.com/rook-computer/doodler/internal/web"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging to ./doodler-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via DOODLER_STDIO_LOG")
	listen := flag.String("listen", "", "settings page listen address (default :80, or DOODLER_LISTEN)")
	dev := flag.Bool("dev", false, "enable permissive CORS for local development (or DOODLER_DEV)")
	fbPath := flag.String("fb", render.DefaultFramebuffer, "framebuffer device")
	fps := flag.Int("fps", app.DefaultFPS, "frames per second while drawing live")
	seed := flag.Int64("seed", 0, "random seed; 0 seeds from the clock")
	maxRetries := flag.Int("max-retries", 0, "give up on a segment after this many out-of-bounds attempts; 0 retries forever")
	noWelcome := flag.Bool("no-welcome", false, "start drawing immediately")
	flag.Parse()

	// Redirect early so panics are captured even with the console in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("DOODLER_STDIO_LOG")
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./doodler-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	config, err := web.DefaultServerConfigFromEnv(":80")
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	if *listen != "" {
		config.ListenAddr = *listen
	}
	if *dev {
		config.DevMode = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store := settings.NewStore()
	status := state.NewStore()

	host, err := system.NewInterfaceNetInfo().IP(ctx)
	if err != nil {
		logger.Errorf("main", "no address for the settings page: %v", err)
	}
	status.SetSettingsURL(config.SettingsURL(host))

	renderer := render.NewFBRenderer(*fbPath)
	a := app.New(store, status, renderer, nil, buttons.NewEvdevButtons(logger))
	a.Logger = logger
	a.Console = system.NewConsole(logger)
	a.FPS = *fps
	a.Seed = *seed
	a.MaxRetries = *maxRetries
	a.NoWelcome = *noWelcome
	a.ViewportDefaults = true
	a.Web = web.NewHTTPServer(config, web.Deps{
		Settings: store,
		Status:   status,
		TapFunc:  a.Tap,
		Logger:   logger,
	})

	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("main", "app error: %v", err)
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}
