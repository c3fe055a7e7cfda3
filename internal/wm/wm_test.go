package wm

import (
	"testing"
	"time"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/ghost"
	"github.com/dshills/wmcore/internal/handler"
	"github.com/dshills/wmcore/internal/keymap"
	"github.com/dshills/wmcore/internal/operator"
	"github.com/dshills/wmcore/internal/screen"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// seen is the part of a dispatched event the tests compare.
type seen struct {
	Type  event.Type
	Value event.Value
	XY    event.Point
	Dir   event.Direction
}

type harness struct {
	t    *testing.T
	m    *Manager
	win  *Window
	clk  *testClock
	area *screen.Area
	log  []event.Event
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	return newHarnessConfig(t, DefaultConfig(), opts...)
}

func newHarnessConfig(t *testing.T, cfg Config, opts ...Option) *harness {
	t.Helper()
	clk := &testClock{now: epoch}
	m := New(cfg, append([]Option{WithClock(clk.Now)}, opts...)...)
	scr := screen.New("Layout")
	area := scr.AddArea("VIEW_3D", screen.NewRect(0, 0, 400, 300))
	h := &harness{t: t, m: m, clk: clk, area: area}
	h.win = m.NewWindow("main", scr)
	return h
}

// record logs every event reaching the window handlers without consuming
// it.
func (h *harness) record() {
	h.win.Handlers.AddTail(&handler.UI{
		Head: handler.Head{Flag: handler.FlagAcceptDoubleClick},
		Handle: func(_ operator.Context, ev *event.Event) handler.Action {
			h.log = append(h.log, *ev)
			return handler.Continue
		},
	})
}

func (h *harness) seen() []seen {
	out := make([]seen, len(h.log))
	for i, ev := range h.log {
		out[i] = seen{Type: ev.Type, Value: ev.Value, XY: ev.XY, Dir: ev.Direction}
	}
	return out
}

func (h *harness) send(raws ...ghost.RawEvent) {
	for _, r := range raws {
		h.m.AddGhostEvent(h.win, r)
	}
}

// after advances the clock, then sends.
func (h *harness) after(d time.Duration, raws ...ghost.RawEvent) {
	h.clk.Advance(d)
	h.send(raws...)
}

func (h *harness) run() {
	h.m.ProcessEvents()
}

func (h *harness) register(types ...*operator.Type) {
	h.t.Helper()
	for _, ot := range types {
		if err := h.m.Registry().Register(ot); err != nil {
			h.t.Fatalf("Register(%s) error = %v", ot.ID, err)
		}
	}
}

// bind adds a window-level key-map handler with one item.
func (h *harness) bind(typ event.Type, val event.Value, opID string) {
	km := h.m.Keymaps().Ensure("Window", "", "")
	km.Add(keymap.NewItem(typ, val, opID, nil))
	h.win.Handlers.AddKeymap("Window")
}

func pt(x, y int) event.Point { return event.Point{X: x, Y: y} }

func moveTo(x, y int) ghost.RawEvent {
	return ghost.RawEvent{Kind: ghost.KindCursorMove, X: x, Y: y}
}

func buttonDown(b ghost.Button) ghost.RawEvent {
	return ghost.RawEvent{Kind: ghost.KindButtonDown, Button: b}
}

func buttonUp(b ghost.Button) ghost.RawEvent {
	return ghost.RawEvent{Kind: ghost.KindButtonUp, Button: b}
}

func keyDown(k ghost.KeyCode) ghost.RawEvent {
	return ghost.RawEvent{Kind: ghost.KindKeyDown, Key: k}
}

func keyUp(k ghost.KeyCode) ghost.RawEvent {
	return ghost.RawEvent{Kind: ghost.KindKeyUp, Key: k}
}

func equalSeen(t *testing.T, got, want []seen) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dispatched %d events, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}
