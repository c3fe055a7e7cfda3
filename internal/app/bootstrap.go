package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/dshills/wmcore/internal/config"
	"github.com/dshills/wmcore/internal/ghost"
	"github.com/dshills/wmcore/internal/keymap"
	"github.com/dshills/wmcore/internal/logging"
	"github.com/dshills/wmcore/internal/notifier"
	"github.com/dshills/wmcore/internal/operator"
	"github.com/dshills/wmcore/internal/operator/script"
	"github.com/dshills/wmcore/internal/screen"
	"github.com/dshills/wmcore/internal/wm"
)

// Names of the layout the main window starts with.
const (
	ScreenName = "Layout"
	AreaType   = "VIEW"
)

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Preferences. A broken file is not fatal; the defaults are used.
	prefs, prefsErr := config.Load(app.opts.ConfigPath)
	if prefsErr != nil {
		prefs = config.Default()
	}
	app.prefs = prefs

	// 2. Logger
	app.log = app.opts.Logger
	if app.log == nil {
		level := prefs.LogLevel()
		if app.opts.LogLevel != "" {
			level = logging.ParseLevel(app.opts.LogLevel)
		}
		cfg := logging.DefaultConfig()
		cfg.Level = level
		cfg.Output = app.opts.LogOutput
		app.log = logging.New(cfg)
	}
	appLog := app.log.WithComponent(logging.CategoryApp)
	if prefsErr != nil {
		appLog.Warn("using default preferences: %v", prefsErr)
	}

	// 3. Key-maps and operators
	keymaps := keymap.NewConfig()
	registerDefaultKeymaps(keymaps)
	registry := operator.NewRegistry()
	registry.MustRegister(app.builtinOperators()...)

	// 4. Window manager
	app.manager = wm.New(wm.ConfigFromPrefs(prefs),
		wm.WithLogger(app.log),
		wm.WithKeymaps(keymaps),
		wm.WithRegistry(registry),
	)

	// 5. User key-maps
	if path := app.keymapPath(); path != "" {
		if err := keymaps.LoadUser(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			appLog.Warn("user key-maps not loaded: %v", err)
		}
	}

	// 6. Scripted operators
	app.scripts = script.New(script.WithLogger(app.log.WithComponent(logging.CategoryOperators)))
	if app.opts.ScriptDir != "" {
		if err := app.loadScripts(app.opts.ScriptDir); err != nil {
			appLog.Warn("%v", err)
		}
	}

	// 7. Platform source
	app.source = app.opts.Source
	if app.source == nil {
		src, err := ghost.NewTerminalSource()
		if err != nil {
			return &InitError{Component: "terminal", Err: err}
		}
		app.source = src
	}

	// 8. Main window
	app.openWindow()

	// 9. Config watcher
	if app.opts.Watch {
		if err := app.startWatcher(); err != nil {
			appLog.Warn("live reload disabled: %v", err)
		}
	}
	return nil
}

// keymapPath returns the user key-map file, if any.
func (app *Application) keymapPath() string {
	if app.opts.KeymapPath != "" {
		return app.opts.KeymapPath
	}
	return app.prefs.Keymap.UserFile
}

// openWindow creates the main window with one area covering it.
func (app *Application) openWindow() {
	w, h := app.source.Size()
	scr := screen.New(ScreenName)
	scr.AddArea(AreaType, screen.NewRect(0, 0, w, h))

	app.window = app.manager.NewWindow("main", scr)
	app.window.Handlers.AddKeymap(KeymapWindow)
	app.window.Handlers.AddKeymap(KeymapScreen)

	app.manager.AddListener(app.resizeListener)
	app.manager.AddGhostEvent(app.window, ghost.RawEvent{Kind: ghost.KindWindowSize, Width: w, Height: h})
}

// resizeListener keeps the areas of a window matching its size. A single
// area takes the whole window.
func (app *Application) resizeListener(win *wm.Window, n *notifier.Note) {
	if n.Category != notifier.NCWindow || win == nil {
		return
	}
	w, h := win.Size()
	scr := win.Screen()
	if scr == nil || len(scr.Areas) != 1 {
		return
	}
	a := scr.Areas[0]
	rect := screen.NewRect(0, 0, w, h)
	a.Rect = rect
	if main := a.Region("WINDOW"); main != nil {
		main.Rect = rect
	}
	a.TagRedraw()
}

// loadScripts registers the operator types of every *.lua file in dir,
// in name order. A broken script does not stop the others.
func (app *Application) loadScripts(dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return err
	}
	sort.Strings(paths)

	var errs []error
	registry := app.manager.Registry()
	for _, path := range paths {
		types, err := app.scripts.LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, t := range types {
			if err := registry.Register(t); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return &ScriptError{Errs: errs}
	}
	return nil
}

// startWatcher watches the preferences and user key-map files. Changes
// are handed to the main loop through app.reload.
func (app *Application) startWatcher() error {
	w, err := config.NewWatcher(config.WithWatcherLogger(app.log))
	if err != nil {
		return err
	}
	for _, path := range []string{app.opts.ConfigPath, app.keymapPath()} {
		if path == "" {
			continue
		}
		if err := w.Watch(path); err != nil {
			_ = w.Close()
			return err
		}
	}
	w.OnChange(func(path string) {
		select {
		case app.reload <- path:
		default:
		}
	})
	app.watcher = w
	return nil
}

// reloadFile applies a changed preferences or key-map file. It runs on
// the main loop goroutine.
func (app *Application) reloadFile(path string) {
	appLog := app.log.WithComponent(logging.CategoryApp)
	switch {
	case samePath(path, app.opts.ConfigPath):
		prefs, err := config.Load(app.opts.ConfigPath)
		if err != nil {
			appLog.Warn("keeping current preferences: %v", err)
			return
		}
		app.applyPrefs(prefs)
		appLog.Info("preferences reloaded from %s", path)

	case samePath(path, app.keymapPath()):
		if err := app.manager.Keymaps().LoadUser(path); err != nil {
			appLog.Warn("keeping current key-maps: %v", err)
			return
		}
		app.manager.AddNotifier(nil, notifier.NCWM|notifier.NDConfig, nil)
		appLog.Info("user key-maps reloaded from %s", path)
	}
}

// applyPrefs swaps the preferences of the running application.
func (app *Application) applyPrefs(prefs *config.Prefs) {
	app.prefs = prefs
	if app.opts.Logger == nil && app.opts.LogLevel == "" {
		app.log.SetLevel(prefs.LogLevel())
	}
	app.manager.ApplyConfig(wm.ConfigFromPrefs(prefs))
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	if absA == absB {
		return true
	}
	ia, errA := os.Stat(absA)
	ib, errB := os.Stat(absB)
	return errA == nil && errB == nil && os.SameFile(ia, ib)
}
