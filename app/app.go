package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/vision-overlay-go/config"
	"github.com/soocke/vision-overlay-go/debug"
	"github.com/soocke/vision-overlay-go/ui/theme"
)

const (
	tick = 40 * time.Millisecond
)

type app struct {
	c           *AppContainer
	width       int
	height      int
	afterID     string
	watcher     *config.Watcher
	stopRuntime context.CancelFunc
	exiting     bool
}

func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{width: width, height: height}
	a.c = BuildContainer(cfg, logger, cfgPath)

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the UI, starts background helpers and blocks in the Tk loop.
func (a *app) Start() {
	c := a.c
	theme.InitStyles()
	c.RootView.Build(a.toggleCapture, a.configApplied, a.exitHandler)
	c.WirePresenters(a.scheduleUpdate)

	if w, err := config.Watch(c.ConfigPath, c.Logger, func(nc *config.Config) {
		c.UI.Post(func() { a.configReloaded(nc) })
	}); err != nil {
		if c.Logger != nil {
			c.Logger.Warn("config watch disabled", "path", c.ConfigPath, "error", err)
		}
	} else {
		a.watcher = w
	}

	if c.Config.Debug {
		ctx, cancel := context.WithCancel(context.Background())
		a.stopRuntime = cancel
		debug.StartRuntimeLogger(ctx, 5*time.Second, c.Logger, func() []slog.Attr {
			s := c.Stats.Snapshot()
			return []slog.Attr{
				slog.Uint64("inferences", s.Inferences),
				slog.Uint64("dropped", s.Dropped),
				slog.Int64("last_latency_ms", s.LastLatency.Milliseconds()),
			}
		})
	}

	a.scheduleUpdate()
	App.Wait()
	a.shutdown()
}

func (a *app) update() {
	if a.exiting {
		return
	}
	a.c.Loop.Tick()
}

func (a *app) scheduleUpdate() {
	// TclAfter keeps every presenter tick on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.update() })
}

func (a *app) toggleCapture() {
	a.c.Grabber.Select(NewGrabber(a.c.Config))
	a.c.CapturePresenter.Toggle()
}

// configApplied runs after the panel or region selector changed the config.
func (a *app) configApplied() {
	a.c.ApplyConfig()
}

// configReloaded adopts a config edited on disk. Capture settings of a
// running session apply on its next start.
func (a *app) configReloaded(nc *config.Config) {
	if nc == nil || *nc == *a.c.Config {
		return
	}
	*a.c.Config = *nc
	a.c.ApplyConfig()
	a.c.RootView.RefreshConfig()
}

func (a *app) exitHandler() {
	a.exiting = true
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	Destroy(App)
}

func (a *app) shutdown() {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	if a.stopRuntime != nil {
		a.stopRuntime()
	}
	a.c.Close()
}
