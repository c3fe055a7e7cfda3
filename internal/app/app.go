// Package app wires the window manager to its platform source,
// preferences, key-maps and scripted operators, and runs the main loop.
package app

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/wmcore/internal/config"
	"github.com/dshills/wmcore/internal/ghost"
	"github.com/dshills/wmcore/internal/logging"
	"github.com/dshills/wmcore/internal/operator/script"
	"github.com/dshills/wmcore/internal/wm"
)

// Application is the central coordinator. Everything except the input
// pump and the config watcher runs on the goroutine calling Run.
type Application struct {
	mu sync.Mutex

	opts  Options
	prefs *config.Prefs
	log   *logging.Logger

	source  ghost.Source
	manager *wm.Manager
	window  *wm.Window
	scripts *script.Engine
	watcher *config.Watcher
	metrics *Metrics

	// reload receives paths from the config watcher.
	reload chan string

	running  atomic.Bool
	shutdown atomic.Bool
	done     chan struct{}
}

// Options configures the application.
type Options struct {
	// ConfigPath is the preferences file. Empty uses the defaults.
	ConfigPath string

	// KeymapPath overrides the user key-map file named in the preferences.
	KeymapPath string

	// ScriptDir is searched for *.lua operator scripts.
	ScriptDir string

	// LogLevel overrides the preferences' level when set.
	LogLevel string

	// LogOutput receives log lines. Nil means stderr, which the terminal
	// source draws over.
	LogOutput io.Writer

	// Watch reloads preferences and user key-maps when they change on disk.
	Watch bool

	// Source replaces the terminal. Tests use a fake.
	Source ghost.Source

	// Logger replaces the logger built from the preferences.
	Logger *logging.Logger
}

// New creates an Application. The terminal is opened here so a failure
// surfaces before Run.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		metrics: NewMetrics(),
		reload:  make(chan string, 4),
		done:    make(chan struct{}),
	}
	if err := app.bootstrap(); err != nil {
		app.close()
		return nil, err
	}
	return app, nil
}

// Shutdown stops Run and releases the terminal, scripts and watcher. It is
// safe to call more than once and from any goroutine.
func (app *Application) Shutdown() {
	if !app.shutdown.CompareAndSwap(false, true) {
		return
	}
	close(app.done)
	if !app.running.Load() {
		app.close()
	}
}

// close releases resources in reverse bootstrap order.
func (app *Application) close() {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.log.Warn("closing config watcher: %v", err)
		}
		app.watcher = nil
	}
	if app.manager != nil {
		app.manager.Close()
	}
	if app.scripts != nil {
		app.scripts.Close()
		app.scripts = nil
	}
	if app.source != nil {
		app.source.Close()
		app.source = nil
	}
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Manager returns the window manager.
func (app *Application) Manager() *wm.Manager {
	return app.manager
}

// Window returns the main window.
func (app *Application) Window() *wm.Window {
	return app.window
}

// Prefs returns the preferences in effect.
func (app *Application) Prefs() *config.Prefs {
	return app.prefs
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.log
}

// Metrics returns the main loop metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
