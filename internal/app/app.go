package app

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rook-computer/doodler/internal/app/screens"
	"github.com/rook-computer/doodler/internal/buttons"
	"github.com/rook-computer/doodler/internal/doodle"
	"github.com/rook-computer/doodler/internal/random"
	"github.com/rook-computer/doodler/internal/render"
	"github.com/rook-computer/doodler/internal/settings"
	"github.com/rook-computer/doodler/internal/state"
	"github.com/rook-computer/doodler/internal/web"
)

const DefaultFPS = 60

var ErrStopped = errors.New("app is not running")

// Console is the display console the app takes over while running.
type Console interface {
	EnterGraphics() (restore func())
}

type App struct {
	Settings *settings.Store
	Status   *state.Store
	Render   render.Renderer
	Web      web.Server
	// Buttons are physical inputs. Taps sent through Tap are merged with them.
	Buttons []buttons.Buttons
	Console Console
	Logger  Logger

	// FPS drives live drawing; zero means DefaultFPS.
	FPS int
	// Seed for the walk; zero seeds from the clock.
	Seed int64
	// MaxRetries caps attempts to find an in-bounds segment; zero is unbounded.
	MaxRetries int
	// NoWelcome starts drawing right away instead of waiting for a tap.
	NoWelcome bool
	// ViewportDefaults resets Settings to settings.DefaultsFor the renderer's
	// viewport once it has started, before the settings UI is served.
	ViewportDefaults bool

	taps     *buttons.ChannelButtons
	loopCtx  context.Context
	canvas   *render.Canvas
	director *doodle.Director
	welcome  *screens.WelcomeScreen

	running  atomic.Bool
	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *settings.Store, status *state.Store, renderer render.Renderer, webServer web.Server, inputs ...buttons.Buttons) *App {
	return &App{
		Settings: store,
		Status:   status,
		Render:   renderer,
		Web:      webServer,
		Buttons:  inputs,
		Logger:   NoopLogger{},
		taps:     buttons.NewChannelButtons(8),
		exitCh:   make(chan error, 1),
	}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Tap queues a tap as if the screen had been touched. Safe to call from any
// goroutine, typically the web server.
func (app *App) Tap(ctx context.Context) error {
	if !app.running.Load() {
		return ErrStopped
	}
	// Give up once the loop is gone so a full queue cannot block shutdown.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(app.loopCtx, cancel)
	defer stop()
	return app.taps.Send(ctx, buttons.Tap)
}

func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	if app.taps == nil {
		app.taps = buttons.NewChannelButtons(8)
	}
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.Settings == nil {
		app.Settings = settings.NewStore()
	}
	if app.Status == nil {
		app.Status = state.NewStore()
	}
	app.exitOnce.Store(false)

	if app.Render == nil {
		app.Render = render.NewFBRenderer(render.DefaultFramebuffer)
	}
	if fb, ok := app.Render.(*render.FBRenderer); ok {
		fb.Logger = app.Logger
	}
	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		return err
	}
	defer app.Render.Stop()

	if app.ViewportDefaults {
		vp := app.Render.Viewport()
		app.Settings.Replace(settings.DefaultsFor(vp.Width, vp.Height))
	}

	if app.Console != nil {
		restore := app.Console.EnterGraphics()
		defer restore()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sources := append([]buttons.Buttons{app.taps}, app.Buttons...)
	for _, source := range sources {
		if err := source.Start(loopCtx); err != nil {
			app.Logger.Errorf("input", "start error: %v", err)
			return err
		}
		defer source.Stop()
	}
	events := buttons.Merge(loopCtx, sources...)

	app.loopCtx = loopCtx
	app.running.Store(true)
	defer app.running.Store(false)

	if app.Web != nil {
		if err := app.Web.Start(loopCtx); err != nil {
			app.Logger.Errorf("web", "start error: %v", err)
			return err
		}
		defer app.Web.Stop()
	}

	app.setup()
	if app.NoWelcome {
		app.director.Draw(app.director.OnReady)
	} else {
		app.Status.SetPhase(state.WELCOME)
		app.drawWelcome()
	}
	app.present()

	err := app.loop(loopCtx, events)
	cancel()
	return err
}

func (app *App) setup() {
	viewport := app.Render.Viewport()
	app.canvas = render.NewCanvas(viewport)
	app.welcome = &screens.WelcomeScreen{Logger: app.Logger}

	app.director = doodle.New(app.Settings, app.canvas, app.Render, random.New(app.Seed))
	app.director.Logger = app.Logger
	app.director.Status = app.Status
	app.director.MaxRetries = app.MaxRetries
	app.director.OnReady = app.syncTheme
}

// loop is the only goroutine touching the director and canvas.
func (app *App) loop(ctx context.Context, events <-chan buttons.Event) error {
	fps := app.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-app.exitCh:
			return err
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			switch event {
			case buttons.Tap:
				if app.director.Tap() {
					app.present()
				}
			case buttons.Exit:
				app.Logger.Infof("app", "exit requested")
				return nil
			}
		case <-ticker.C:
			if app.director.Frame() {
				app.present()
			}
		}
	}
}

// syncTheme publishes the colours of the drawing that is about to start so
// the settings page can follow them.
func (app *App) syncTheme() {
	current := app.director.Current()
	app.Status.UpdateTheme(state.Theme{
		Background: current.BackgroundColor,
		Line:       current.LineColor,
	})
}

func (app *App) drawWelcome() {
	current := app.Settings.Snapshot()
	app.canvas.Reset(app.Render.Viewport(), render.StyleFromSettings(current))
	app.welcome.Draw(app.canvas, app.Status.Snapshot())
}

func (app *App) present() {
	if err := app.Render.Present(app.canvas.Image()); err != nil {
		app.Logger.Errorf("render", "present error: %v", err)
	}
}
