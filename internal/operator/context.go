package operator

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/logging"
	"github.com/dshills/wmcore/internal/notifier"
)

// Window is the window an operator runs in.
type Window interface {
	ID() uuid.UUID
}

// Area is an editor area of a window's screen.
type Area interface {
	AreaType() string
}

// Region is a sub-rectangle of an area.
type Region interface {
	RegionType() string
}

// Context is the window manager state visible to operator callbacks.
//
// Window returns nil once the window has been torn down; callers that
// observe this after a nested call must stop touching the event.
type Context interface {
	Window() Window
	Area() Area
	Region() Region
	Logger() *logging.Logger

	// AddNotifier queues a notifier for the current window.
	AddNotifier(typ notifier.Type, ref any)
	// AddModalHandler parks op as a modal handler of the current window.
	AddModalHandler(op *Operator)
	// AddFileSelect parks op until the file browser answers.
	AddFileSelect(op *Operator)
	// AddTimer starts a timer in the current window.
	AddTimer(typ event.Type, step time.Duration) event.TimerRef
	// RemoveTimer stops a timer returned by AddTimer.
	RemoveTimer(t event.TimerRef)

	// Call runs another operator by ID without an event, nested inside the
	// current one.
	Call(id string, props Properties) Result
	// InterfaceLocked reports whether a job holds the interface lock.
	InterfaceLocked() bool
}
