package wm

import (
	"sync"
	"time"

	"github.com/dshills/wmcore/internal/job"
	"github.com/dshills/wmcore/internal/keymap"
	"github.com/dshills/wmcore/internal/logging"
	"github.com/dshills/wmcore/internal/notifier"
	"github.com/dshills/wmcore/internal/operator"
	"github.com/dshills/wmcore/internal/report"
	"github.com/dshills/wmcore/internal/screen"
	"github.com/dshills/wmcore/internal/undo"
)

// FileBrowser shows and hides the file browser for a parked file-select
// operator. The browser answers by calling Manager.FileSelectEvent.
type FileBrowser interface {
	Open(win *Window, op *operator.Operator)
	Close(win *Window, op *operator.Operator)
}

// NoteListener observes every drained notifier delivered to a window.
type NoteListener func(win *Window, n *notifier.Note)

// Manager is the window manager. It is not safe for concurrent use: every
// method must be called from the main loop. Job workers talk to it only
// through the job package.
type Manager struct {
	cfg Config

	log     *logging.Logger
	evLog   *logging.Logger
	hLog    *logging.Logger
	opLog   *logging.Logger
	noteLog *logging.Logger

	windows []*Window

	keymaps  *keymap.Config
	registry *operator.Registry
	history  *operator.History
	undo     *undo.Stack
	metrics  *operator.Metrics
	reports  *report.List

	notes     *notifier.Queue
	listeners []NoteListener

	jobs *job.Manager

	timers      []*Timer
	bannerTimer *Timer
	browser     FileBrowser

	// undoDepth counts undo-capable operators currently executing; nested
	// operators never push their own undo step.
	undoDepth int

	lockMu          sync.RWMutex
	interfaceLocked bool

	// doWheelUI is cleared when a UI handler ignores a wheel event, so the
	// following wheel events skip UI handlers until something else arrives.
	doWheelUI bool

	quit bool
	now  func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithUndoStore sets the application state undo snapshots are taken of.
func WithUndoStore(s undo.Store) Option {
	return func(m *Manager) {
		m.undo = undo.NewStack(s, m.cfg.UndoSteps)
	}
}

// WithFileBrowser sets the file browser used by file-select operators.
func WithFileBrowser(b FileBrowser) Option {
	return func(m *Manager) {
		m.browser = b
	}
}

// WithKeymaps sets the key-map configuration.
func WithKeymaps(c *keymap.Config) Option {
	return func(m *Manager) {
		if c != nil {
			m.keymaps = c
		}
	}
}

// WithRegistry sets the operator type registry.
func WithRegistry(r *operator.Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// New creates a window manager.
func New(cfg Config, opts ...Option) *Manager {
	m := &Manager{
		cfg:       cfg,
		log:       logging.Null(),
		keymaps:   keymap.NewConfig(),
		registry:  operator.NewRegistry(),
		history:   operator.NewHistory(cfg.RegisterMax),
		metrics:   operator.NewMetrics(),
		reports:   report.NewList(),
		notes:     notifier.NewQueue(),
		doWheelUI: true,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.undo == nil {
		m.undo = undo.NewStack(nil, cfg.UndoSteps)
	}
	m.evLog = m.log.WithComponent(logging.CategoryEvents)
	m.hLog = m.log.WithComponent(logging.CategoryHandlers)
	m.opLog = m.log.WithComponent(logging.CategoryOperators)
	m.noteLog = m.log.WithComponent(logging.CategoryNotifiers)
	m.jobs = job.NewManager(m, m.log)
	return m
}

// Config returns the active configuration.
func (m *Manager) Config() Config {
	return m.cfg
}

// ApplyConfig swaps the configuration at runtime, e.g. after the
// preferences file changed.
func (m *Manager) ApplyConfig(cfg Config) {
	m.cfg = cfg
	m.history.SetMax(cfg.RegisterMax)
	m.undo.SetMaxSteps(cfg.UndoSteps)
	m.AddNotifier(nil, notifier.NCWM|notifier.NDConfig, nil)
	m.log.Info("configuration applied")
}

// Keymaps returns the key-map configuration.
func (m *Manager) Keymaps() *keymap.Config { return m.keymaps }

// Registry returns the operator type registry.
func (m *Manager) Registry() *operator.Registry { return m.registry }

// History returns the redo register.
func (m *Manager) History() *operator.History { return m.history }

// UndoStack returns the undo stack.
func (m *Manager) UndoStack() *undo.Stack { return m.undo }

// Metrics returns operator call statistics.
func (m *Manager) Metrics() *operator.Metrics { return m.metrics }

// Reports returns the global report list.
func (m *Manager) Reports() *report.List { return m.reports }

// Jobs returns the job manager.
func (m *Manager) Jobs() *job.Manager { return m.jobs }

// Logger returns the manager's logger.
func (m *Manager) Logger() *logging.Logger { return m.log }

// Windows returns the open windows.
func (m *Manager) Windows() []*Window {
	out := make([]*Window, len(m.windows))
	copy(out, m.windows)
	return out
}

// SetInterfaceLocked locks or unlocks the interface. While locked, only
// operators with the lock-bypass flag run, and UI and drop handlers are
// skipped. Job workers may call it through the job manager.
func (m *Manager) SetInterfaceLocked(locked bool) {
	m.lockMu.Lock()
	m.interfaceLocked = locked
	m.lockMu.Unlock()
}

// InterfaceLocked reports whether the interface is locked.
func (m *Manager) InterfaceLocked() bool {
	m.lockMu.RLock()
	defer m.lockMu.RUnlock()
	return m.interfaceLocked
}

// AddListener registers a global notifier listener.
func (m *Manager) AddListener(fn NoteListener) {
	m.listeners = append(m.listeners, fn)
}

// RequestQuit asks the main loop to stop.
func (m *Manager) RequestQuit() { m.quit = true }

// QuitRequested reports whether a quit was requested.
func (m *Manager) QuitRequested() bool { return m.quit }

// NewWindow opens a window showing scr.
func (m *Manager) NewWindow(name string, scr *screen.Screen) *Window {
	win := newWindow(name, scr)
	m.windows = append(m.windows, win)
	m.evLog.Debug("window %q opened", name)
	return win
}

// CloseWindow tears win down: modal operators are cancelled, UI handlers
// removed, jobs killed and timers stopped. Dispatch in progress for the
// window stops touching it as soon as the current call returns.
func (m *Manager) CloseWindow(win *Window) {
	if win == nil || win.closed {
		return
	}
	m.RemoveHandlers(win, win.Modal)
	m.RemoveHandlers(win, win.Handlers)
	for _, scr := range win.screens {
		for _, a := range scr.Areas {
			m.RemoveHandlers(win, a.Handlers)
			for _, r := range a.Regions {
				m.RemoveHandlers(win, r.Handlers)
			}
		}
	}
	m.jobs.KillWindow(win)
	for _, t := range m.timers {
		if t.win == win {
			m.RemoveTimer(win, t)
		}
	}
	win.queue = nil
	win.closed = true
	for i, w := range m.windows {
		if w == win {
			m.windows = append(m.windows[:i:i], m.windows[i+1:]...)
			break
		}
	}
	m.evLog.Debug("window %q closed", win.Name)
}

// Close kills every job and closes every window.
func (m *Manager) Close() {
	m.jobs.KillAll()
	for _, win := range m.Windows() {
		m.CloseWindow(win)
	}
}
