package keymap

import (
	"github.com/dshills/wmcore/internal/event"
)

// MatchPrefs are the user preferences matching depends on.
type MatchPrefs struct {
	// InvertZoomWheel swaps which wheel direction zooms in.
	InvertZoomWheel bool
}

// MapUserEventType resolves item types whose meaning depends on user
// preferences. WheelIn and WheelOut map onto physical wheel directions.
func MapUserEventType(t event.Type, prefs MatchPrefs) event.Type {
	switch t {
	case event.WheelOutMouse:
		if prefs.InvertZoomWheel {
			return event.WheelUpMouse
		}
		return event.WheelDownMouse
	case event.WheelInMouse:
		if prefs.InvertZoomWheel {
			return event.WheelDownMouse
		}
		return event.WheelUpMouse
	}
	return t
}

// Match reports whether ev satisfies it.
func Match(it *Item, ev *event.Event, prefs MatchPrefs) bool {
	if !it.Active() {
		return false
	}
	if ev.IsRepeat() && it.Flag&ItemRepeatIgnore != 0 {
		return false
	}

	typ := MapUserEventType(it.Type, prefs)

	// Text input only matches presses that produce printable text, which
	// rules out double clicks.
	if typ == event.TextInput && ev.Value == event.Press && ev.Type.IsKeyboard() && ev.UTF8 != "" {
		return true
	}

	if typ != event.AnyType {
		switch typ {
		case event.TabletStylus, event.TabletEraser:
			if ev.Type != event.LeftMouse {
				return false
			}
			if typ == event.TabletStylus && ev.Tablet.Active != event.ToolStylus {
				return false
			}
			if typ == event.TabletEraser && ev.Tablet.Active != event.ToolEraser {
				return false
			}
		default:
			if ev.Type != typ {
				return false
			}
		}
	}

	if it.Value != event.ValueAny && ev.Value != it.Value {
		return false
	}
	if ev.Value == event.ClickDrag && it.Direction > event.DirectionNone && it.Direction != ev.Direction {
		return false
	}

	if !modifierMatch(it.Shift, ev, event.ModShift) ||
		!modifierMatch(it.Ctrl, ev, event.ModCtrl) ||
		!modifierMatch(it.Alt, ev, event.ModAlt) ||
		!modifierMatch(it.OSKey, ev, event.ModOSKey) {
		return false
	}

	if it.KeyModifier != event.TypeNone && ev.KeyModifier != it.KeyModifier {
		return false
	}
	return true
}

// modifierMatch compares one modifier. An event whose type is the modifier
// key itself always passes, so pressing shift can match a shift-off item.
func modifierMatch(want ModState, ev *event.Event, mod event.Modifier) bool {
	if want == ModAny {
		return true
	}
	if ev.Type.ModifierFor() == mod {
		return true
	}
	return ev.Modifier.Has(mod) == (want == ModOn)
}
