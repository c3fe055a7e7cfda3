package wm

import (
	"github.com/google/uuid"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/handler"
	"github.com/dshills/wmcore/internal/screen"
)

// Window is one top-level window: its event queue, input state, handlers
// and screen layout.
type Window struct {
	id   uuid.UUID
	Name string

	// Modal handlers run before anything else, newest first.
	Modal *handler.List
	// Handlers run after every area and region list.
	Handlers *handler.List

	// DragExit runs when a drop leaves drags nobody accepted.
	DragExit func(remaining []*event.Drag)

	screen  *screen.Screen
	screens []*screen.Screen

	state *event.State
	queue []*event.Event

	// lastHandled is a copy of the last event dispatched, used to seed the
	// synthetic motion event of a forced drag.
	lastHandled *event.Event

	checkClick bool
	checkDrag  bool

	addMouseMove bool

	// emulating is the middle-button emulation in effect since the left
	// press, so the matching release is converted too.
	emulating bool

	width, height int
	active        bool
	closed        bool
}

func newWindow(name string, scr *screen.Screen) *Window {
	if scr == nil {
		scr = screen.New(name)
	}
	return &Window{
		id:       uuid.New(),
		Name:     name,
		Modal:    handler.NewList(),
		Handlers: handler.NewList(),
		screen:   scr,
		screens:  []*screen.Screen{scr},
		state:    event.NewState(),
		active:   true,
	}
}

// ID returns the window's unique ID.
func (w *Window) ID() uuid.UUID { return w.id }

// Screen returns the active screen.
func (w *Window) Screen() *screen.Screen { return w.screen }

// Screens returns every screen the window can switch between.
func (w *Window) Screens() []*screen.Screen {
	out := make([]*screen.Screen, len(w.screens))
	copy(out, w.screens)
	return out
}

// AddScreen makes scr available to the window without activating it.
func (w *Window) AddScreen(scr *screen.Screen) {
	for _, s := range w.screens {
		if s == scr {
			return
		}
	}
	w.screens = append(w.screens, scr)
}

// SetScreen activates scr, adding it to the window's screens if needed.
func (w *Window) SetScreen(scr *screen.Screen) {
	w.AddScreen(scr)
	w.screen = scr
}

func (w *Window) removeScreen(scr *screen.Screen) bool {
	for i, s := range w.screens {
		if s == scr {
			w.screens = append(w.screens[:i:i], w.screens[i+1:]...)
			return true
		}
	}
	return false
}

// State returns the persistent input state.
func (w *Window) State() *event.State { return w.state }

// Queue returns the pending events.
func (w *Window) Queue() []*event.Event {
	out := make([]*event.Event, len(w.queue))
	copy(out, w.queue)
	return out
}

// CheckClick reports whether a release may still become a click.
func (w *Window) CheckClick() bool { return w.checkClick }

// CheckDrag reports whether motion may still become a click-drag.
func (w *Window) CheckDrag() bool { return w.checkDrag }

// LastHandled returns the last event dispatched.
func (w *Window) LastHandled() *event.Event { return w.lastHandled }

// Closed reports whether the window was closed.
func (w *Window) Closed() bool { return w.closed }

// Size returns the window size.
func (w *Window) Size() (int, int) { return w.width, w.height }

// Active reports whether the window has focus.
func (w *Window) Active() bool { return w.active }

// AddEvent appends a copy of ev to the queue.
func (w *Window) AddEvent(ev event.Event) *event.Event {
	if w.closed {
		return nil
	}
	e := ev
	w.queue = append(w.queue, &e)
	return &e
}

// AddMouseMove requests a synthetic motion event once the queue drains, so
// handlers can refresh highlights after the layout changed.
func (w *Window) AddMouseMove() { w.addMouseMove = true }

func (w *Window) lastQueued() *event.Event {
	if len(w.queue) == 0 {
		return nil
	}
	return w.queue[len(w.queue)-1]
}

func (w *Window) popEvent() *event.Event {
	if len(w.queue) == 0 {
		return nil
	}
	ev := w.queue[0]
	w.queue[0] = nil
	w.queue = w.queue[1:]
	return ev
}

func (w *Window) pushFront(ev *event.Event) {
	w.queue = append([]*event.Event{ev}, w.queue...)
}
