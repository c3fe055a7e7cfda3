package wm

import (
	"testing"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/ghost"
	"github.com/dshills/wmcore/internal/notifier"
)

func queuedTypes(win *Window) []event.Type {
	var out []event.Type
	for _, ev := range win.Queue() {
		out = append(out, ev.Type)
	}
	return out
}

func equalTypes(t *testing.T, got, want []event.Type) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("queued %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("queued[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestCursorMotionCoalescing(t *testing.T) {
	h := newHarness(t)
	h.send(moveTo(1, 1), moveTo(2, 2), moveTo(3, 3))

	equalTypes(t, queuedTypes(h.win), []event.Type{
		event.InbetweenMouseMove, event.InbetweenMouseMove, event.MouseMove,
	})
	q := h.win.Queue()
	if q[2].PrevXY != pt(2, 2) {
		t.Errorf("PrevXY = %v, want (2,2)", q[2].PrevXY)
	}
	if h.win.State().XY != pt(3, 3) {
		t.Errorf("state XY = %v, want (3,3)", h.win.State().XY)
	}
}

func TestTrackpadMerge(t *testing.T) {
	h := newHarness(t)
	pan := func(dx int) ghost.RawEvent {
		return ghost.RawEvent{Kind: ghost.KindTrackpad, Trackpad: ghost.TrackpadScroll, X: 50, Y: 50, DeltaX: dx, IsDirectionInverted: true}
	}
	h.send(pan(2), pan(3))

	q := h.win.Queue()
	if len(q) != 1 {
		t.Fatalf("queued %d gestures, want 1", len(q))
	}
	ev := q[0]
	if ev.Type != event.MousePan {
		t.Errorf("type = %s, want MOUSEPAN", ev.Type)
	}
	if d := ev.XY.Sub(ev.PrevXY); d != pt(5, 0) {
		t.Errorf("delta = %v, want (5,0)", d)
	}
	if ev.Flag&event.FlagScrollInvert == 0 {
		t.Error("inverted scroll flag lost")
	}
}

func TestThreeButtonEmulation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EmulateThreeButton = true
	h := newHarnessConfig(t, cfg)

	// The modifier may be let go before the button.
	h.send(keyDown(ghost.KeyLeftAlt), buttonDown(ghost.ButtonLeft), keyUp(ghost.KeyLeftAlt), buttonUp(ghost.ButtonLeft))

	q := h.win.Queue()
	if len(q) != 4 {
		t.Fatalf("queued %d events, want 4", len(q))
	}
	for _, i := range []int{1, 3} {
		if q[i].Type != event.MiddleMouse {
			t.Errorf("event %d = %s, want MIDDLEMOUSE", i, q[i].Type)
		}
		if q[i].Modifier.Has(event.ModAlt) {
			t.Errorf("event %d kept the emulation modifier", i)
		}
	}

	h.send(buttonDown(ghost.ButtonLeft))
	if last := h.win.Queue()[4]; last.Type != event.LeftMouse {
		t.Errorf("plain press = %s, want LEFTMOUSE", last.Type)
	}
}

func TestNumpadEmulation(t *testing.T) {
	tests := []struct {
		key  ghost.KeyCode
		want event.Type
	}{
		{'1', event.Pad1},
		{ghost.KeyMinus, event.PadMinus},
		{ghost.KeyEqual, event.PadPlus},
		{'A', event.KeyA},
	}

	cfg := DefaultConfig()
	cfg.EmulateNumpad = true
	for _, tt := range tests {
		h := newHarnessConfig(t, cfg)
		h.send(keyDown(tt.key))
		if got := h.win.Queue()[0].Type; got != tt.want {
			t.Errorf("key %v = %s, want %s", tt.key, got, tt.want)
		}
	}
}

func TestKeyModifierTracking(t *testing.T) {
	h := newHarness(t)
	h.send(keyDown('Q'), keyDown('W'), keyUp('W'), keyUp('Q'), keyDown('W'))

	q := h.win.Queue()
	if q[0].KeyModifier != event.TypeNone {
		t.Errorf("held key is its own modifier: %s", q[0].KeyModifier)
	}
	if q[1].KeyModifier != event.KeyQ {
		t.Errorf("W while holding Q: key modifier = %s, want Q", q[1].KeyModifier)
	}
	if q[3].KeyModifier != event.TypeNone {
		t.Errorf("Q release: key modifier = %s, want none", q[3].KeyModifier)
	}
	if q[4].KeyModifier != event.TypeNone {
		t.Errorf("W after Q release: key modifier = %s, want none", q[4].KeyModifier)
	}
}

func TestKeyRepeatAndText(t *testing.T) {
	h := newHarness(t)
	h.send(
		ghost.RawEvent{Kind: ghost.KindKeyDown, Key: 'A', UTF8: "a"},
		ghost.RawEvent{Kind: ghost.KindKeyDown, Key: 'A', UTF8: "a", Repeat: true},
		ghost.RawEvent{Kind: ghost.KindKeyDown, Key: ghost.KeyTab, UTF8: "\t"},
		ghost.RawEvent{Kind: ghost.KindKeyUp, Key: 'A', UTF8: "a"},
	)

	q := h.win.Queue()
	if q[0].UTF8 != "a" || q[0].IsRepeat() {
		t.Errorf("first press = %q repeat=%v", q[0].UTF8, q[0].IsRepeat())
	}
	if !q[1].IsRepeat() {
		t.Error("auto-repeat flag not set")
	}
	if q[2].UTF8 != "" {
		t.Errorf("control character kept as text: %q", q[2].UTF8)
	}
	if q[3].UTF8 != "" {
		t.Errorf("release carries text %q", q[3].UTF8)
	}
}

func TestModifierKeysUpdateState(t *testing.T) {
	h := newHarness(t)
	h.send(keyDown(ghost.KeyLeftControl), keyDown('S'))

	q := h.win.Queue()
	if !q[1].Modifier.Has(event.ModCtrl) {
		t.Errorf("S press modifier = %s, want ctrl", q[1].Modifier)
	}
	h.send(keyUp(ghost.KeyLeftControl))
	if h.win.State().Modifier.Has(event.ModCtrl) {
		t.Error("ctrl still set after release")
	}
}

func TestUnknownButtonIgnored(t *testing.T) {
	h := newHarness(t)
	h.send(ghost.RawEvent{Kind: ghost.KindButtonDown, Button: ghost.Button(99)})
	if n := len(h.win.Queue()); n != 0 {
		t.Errorf("queued %d events for an unknown button", n)
	}
}

func TestWheelDirection(t *testing.T) {
	h := newHarness(t)
	h.send(
		ghost.RawEvent{Kind: ghost.KindWheel, WheelZ: 1},
		ghost.RawEvent{Kind: ghost.KindWheel, WheelZ: -2},
		ghost.RawEvent{Kind: ghost.KindWheel},
	)
	equalTypes(t, queuedTypes(h.win), []event.Type{event.WheelUpMouse, event.WheelDownMouse})
}

func TestWindowActivateResetsModifiers(t *testing.T) {
	h := newHarness(t)
	h.send(keyDown(ghost.KeyLeftShift))
	h.run()

	h.send(ghost.RawEvent{Kind: ghost.KindWindowActivate})
	if h.win.State().Modifier != event.ModNone {
		t.Errorf("modifier = %s after activation, want none", h.win.State().Modifier)
	}
	if !h.win.Active() {
		t.Error("window not active")
	}
	h.run()
	equalTypes(t, queuedTypes(h.win), []event.Type{event.MouseMove})
}

func TestWindowSizeAndQuit(t *testing.T) {
	h := newHarness(t)
	h.send(ghost.RawEvent{Kind: ghost.KindWindowSize, Width: 800, Height: 600})

	if w, ht := h.win.Size(); w != 800 || ht != 600 {
		t.Errorf("size = %dx%d, want 800x600", w, ht)
	}
	notes := h.m.Notes()
	if len(notes) != 1 || notes[0].Category != notifier.NCWindow {
		t.Errorf("notes = %v, want one NC_WINDOW", notes)
	}

	h.send(ghost.RawEvent{Kind: ghost.KindQuit})
	if !h.m.QuitRequested() {
		t.Error("quit not requested")
	}
}

func TestClosedWindowIgnoresInput(t *testing.T) {
	h := newHarness(t)
	h.m.CloseWindow(h.win)
	h.send(moveTo(1, 1), keyDown('A'))
	if n := len(h.win.Queue()); n != 0 {
		t.Errorf("closed window queued %d events", n)
	}
}
