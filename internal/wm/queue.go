package wm

import (
	"time"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/ghost"
	"github.com/dshills/wmcore/internal/notifier"
)

var numpadEmulation = map[event.Type]event.Type{
	event.MinusKey:     event.PadMinus,
	event.EqualKey:     event.PadPlus,
	event.BackslashKey: event.PadSlash,
}

var trackpadTypes = map[ghost.TrackpadKind]event.Type{
	ghost.TrackpadScroll:       event.MousePan,
	ghost.TrackpadMagnify:      event.MouseZoom,
	ghost.TrackpadRotate:       event.MouseRotate,
	ghost.TrackpadSmartMagnify: event.MouseSmartZoom,
}

// AddGhostEvent normalizes a raw platform event into win's queue, updating
// the window's input state on the way. Window level events (activation,
// resize, quit) are handled here and may queue nothing.
func (m *Manager) AddGhostEvent(win *Window, raw ghost.RawEvent) {
	if win == nil || win.closed {
		return
	}
	now := raw.Time
	if now.IsZero() {
		now = m.now()
	}
	st := win.state

	switch raw.Kind {
	case ghost.KindCursorMove:
		m.addCursorMove(win, raw, now)

	case ghost.KindTrackpad:
		m.addTrackpad(win, raw, now)

	case ghost.KindButtonDown, ghost.KindButtonUp:
		ev := st.NewEvent(now)
		ev.Type = ghost.ConvertButton(raw.Button)
		if ev.Type == event.TypeNone {
			return
		}
		ev.Value = event.Release
		if raw.Kind == ghost.KindButtonDown {
			ev.Value = event.Press
		}
		ev.Tablet = raw.Tablet
		m.emulateThreeButton(win, &ev)
		st.UpdateAndClickSet(&ev, false, m.cfg.Thresholds)
		win.AddEvent(ev)

	case ghost.KindWheel:
		if raw.WheelZ == 0 {
			return
		}
		ev := st.NewEvent(now)
		ev.Type = event.WheelDownMouse
		if raw.WheelZ > 0 {
			ev.Type = event.WheelUpMouse
		}
		ev.Value = event.Press
		win.AddEvent(ev)

	case ghost.KindKeyDown, ghost.KindKeyUp:
		m.addKey(win, raw, now)

	case ghost.KindNDOFMotion:
		ev := st.NewEvent(now)
		ev.Type = event.NDOFMotion
		ev.Value = event.ValueNothing
		data := raw.NDOF
		ev.CustomData = &data
		win.AddEvent(ev)

	case ghost.KindNDOFButton:
		ev := st.NewEvent(now)
		ev.Type = ghost.ConvertNDOFButton(raw.NDOFButton)
		ev.Value = event.Release
		if raw.NDOFPress {
			ev.Value = event.Press
		}
		st.UpdateAndClickSet(&ev, false, m.cfg.Thresholds)
		win.AddEvent(ev)

	case ghost.KindWindowActivate:
		win.active = true
		st.Modifier = event.ModNone
		st.KeyModifier = event.TypeNone
		win.emulating = false
		win.AddMouseMove()

	case ghost.KindWindowDeactivate:
		win.active = false
		ev := st.NewEvent(now)
		ev.Type = event.WindowDeactivate
		ev.Value = event.ValueNothing
		win.AddEvent(ev)

	case ghost.KindWindowSize:
		win.width, win.height = raw.Width, raw.Height
		m.AddNotifier(win, notifier.NCWindow, nil)

	case ghost.KindQuit:
		m.quit = true

	default:
		m.evLog.Debug("ignored raw event %s", raw.Kind)
	}
}

// AddDropEvent queues a drop of drags at the cursor. Drop-box handlers
// under the cursor get the first chance to accept each drag; win.DragExit
// receives the ones left over.
func (m *Manager) AddDropEvent(win *Window, drags []*event.Drag) {
	if win == nil || win.closed || len(drags) == 0 {
		return
	}
	ev := win.state.NewEvent(m.now())
	ev.Type = event.EvtDrop
	ev.Value = event.ValueNothing
	ev.CustomData = &event.DragData{Drags: append([]*event.Drag(nil), drags...)}
	win.AddEvent(ev)
}

// addCursorMove queues motion. A motion event still waiting in the queue
// is demoted to in-between motion, so handlers that only want the latest
// position can skip it.
func (m *Manager) addCursorMove(win *Window, raw ghost.RawEvent, now time.Time) {
	st := win.state
	ev := st.NewEvent(now)
	ev.Type = event.MouseMove
	ev.Value = event.ValueNothing
	ev.XY = event.Point{X: raw.X, Y: raw.Y}
	ev.PrevXY = st.XY
	ev.Tablet = raw.Tablet

	if last := win.lastQueued(); last != nil && last.Type == event.MouseMove {
		last.Type = event.InbetweenMouseMove
	}
	st.XY = ev.XY
	st.Tablet = raw.Tablet
	win.AddEvent(ev)
}

// addTrackpad queues a gesture, merging it into a queued gesture of the
// same kind by summing the deltas.
func (m *Manager) addTrackpad(win *Window, raw ghost.RawEvent, now time.Time) {
	typ, ok := trackpadTypes[raw.Trackpad]
	if !ok {
		return
	}
	st := win.state
	ev := st.NewEvent(now)
	ev.Type = typ
	ev.Value = event.ValueNothing
	ev.XY = event.Point{X: raw.X, Y: raw.Y}
	if raw.IsDirectionInverted {
		ev.Flag |= event.FlagScrollInvert
	}
	delta := event.Point{X: raw.DeltaX, Y: raw.DeltaY}

	if last := win.lastQueued(); last != nil && last.Type == typ {
		delta = delta.Add(last.XY.Sub(last.PrevXY))
		win.queue = win.queue[:len(win.queue)-1]
	}
	ev.PrevXY = ev.XY.Sub(delta)
	st.XY = ev.XY
	win.AddEvent(ev)
}

// emulateThreeButton turns modifier+left button into the middle button
// when enabled. The modifier is taken off the event, and the matching
// release is converted even if the modifier was let go first.
func (m *Manager) emulateThreeButton(win *Window, ev *event.Event) {
	if !m.cfg.EmulateThreeButton || ev.Type != event.LeftMouse {
		return
	}
	mod := m.cfg.EmulateModifier
	switch ev.Value {
	case event.Press:
		if ev.Modifier.Has(mod) {
			win.emulating = true
			ev.Type = event.MiddleMouse
			ev.Modifier = ev.Modifier.Without(mod)
		}
	case event.Release:
		if win.emulating {
			win.emulating = false
			ev.Type = event.MiddleMouse
			ev.Modifier = ev.Modifier.Without(mod)
		}
	}
}

func (m *Manager) addKey(win *Window, raw ghost.RawEvent, now time.Time) {
	st := win.state
	ev := st.NewEvent(now)
	ev.Type = ghost.ConvertKey(raw.Key)
	ev.Value = event.Release
	if raw.Kind == ghost.KindKeyDown {
		ev.Value = event.Press
		if raw.Repeat {
			ev.Flag |= event.FlagRepeat
		}
		ev.UTF8 = printable(raw.UTF8)
	}

	if mod := ev.Type.ModifierFor(); mod != event.ModNone {
		ev.Modifier = ev.Modifier.Set(mod, ev.Value == event.Press)
	} else {
		switch {
		case ev.Value == event.Press && ev.KeyModifier == event.TypeNone && ev.Type != event.UnknownKey:
			st.KeyModifier = ev.Type
		case ev.Value == event.Release && st.KeyModifier == ev.Type:
			st.KeyModifier = event.TypeNone
			ev.KeyModifier = event.TypeNone
		}
		// A held key is never its own key modifier.
		if ev.KeyModifier == ev.Type || ev.KeyModifier == event.UnknownKey {
			ev.KeyModifier = event.TypeNone
		}
	}

	if m.cfg.EmulateNumpad {
		if ev.Type >= event.Key0 && ev.Type <= event.Key9 {
			ev.Type = event.Pad0 + (ev.Type - event.Key0)
		} else if pad, ok := numpadEmulation[ev.Type]; ok {
			ev.Type = pad
		}
	}

	st.UpdateAndClickSet(&ev, true, m.cfg.Thresholds)
	win.AddEvent(ev)
}

// printable drops control characters, which never count as text input.
func printable(s string) string {
	if s == "" {
		return ""
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return ""
		}
	}
	return s
}
