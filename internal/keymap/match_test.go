package keymap

import (
	"testing"

	"github.com/dshills/wmcore/internal/event"
)

func press(t event.Type, mod event.Modifier) *event.Event {
	return &event.Event{Type: t, Value: event.Press, Modifier: mod}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		item  *Item
		ev    *event.Event
		prefs MatchPrefs
		want  bool
	}{
		{
			name: "exact press",
			item: NewItem(event.KeyA, event.Press, "", nil),
			ev:   press(event.KeyA, 0),
			want: true,
		},
		{
			name: "wrong type",
			item: NewItem(event.KeyA, event.Press, "", nil),
			ev:   press(event.KeyB, 0),
		},
		{
			name: "wrong value",
			item: NewItem(event.KeyA, event.Release, "", nil),
			ev:   press(event.KeyA, 0),
		},
		{
			name: "any value",
			item: NewItem(event.KeyA, event.ValueAny, "", nil),
			ev:   &event.Event{Type: event.KeyA, Value: event.Release},
			want: true,
		},
		{
			name: "any type",
			item: NewItem(event.AnyType, event.Press, "", nil),
			ev:   press(event.RightMouse, 0),
			want: true,
		},
		{
			name: "inactive",
			item: &Item{Type: event.KeyA, Value: event.Press, Flag: ItemInactive},
			ev:   press(event.KeyA, 0),
		},
		{
			name: "repeat ignored",
			item: &Item{Type: event.KeyA, Value: event.Press, Flag: ItemRepeatIgnore},
			ev:   &event.Event{Type: event.KeyA, Value: event.Press, Flag: event.FlagRepeat},
		},
		{
			name: "repeat accepted by default",
			item: NewItem(event.KeyA, event.Press, "", nil),
			ev:   &event.Event{Type: event.KeyA, Value: event.Press, Flag: event.FlagRepeat},
			want: true,
		},
		{
			name: "required modifier missing",
			item: NewItem(event.KeyS, event.Press, "", nil).SetModifiers(event.ModCtrl),
			ev:   press(event.KeyS, 0),
		},
		{
			name: "required modifier held",
			item: NewItem(event.KeyS, event.Press, "", nil).SetModifiers(event.ModCtrl),
			ev:   press(event.KeyS, event.ModCtrl),
			want: true,
		},
		{
			name: "extra modifier rejects",
			item: NewItem(event.KeyS, event.Press, "", nil).SetModifiers(event.ModCtrl),
			ev:   press(event.KeyS, event.ModCtrl|event.ModShift),
		},
		{
			name: "any modifier",
			item: NewItem(event.KeyS, event.Press, "", nil).AnyModifier(),
			ev:   press(event.KeyS, event.ModCtrl|event.ModAlt|event.ModOSKey),
			want: true,
		},
		{
			name: "key-modifier required",
			item: &Item{Type: event.LeftMouse, Value: event.Press, KeyModifier: event.KeyQ},
			ev:   press(event.LeftMouse, 0),
		},
		{
			name: "key-modifier equal",
			item: &Item{Type: event.LeftMouse, Value: event.Press, KeyModifier: event.KeyQ},
			ev:   &event.Event{Type: event.LeftMouse, Value: event.Press, KeyModifier: event.KeyQ},
			want: true,
		},
		{
			name: "key-modifier ignored when item has none",
			item: NewItem(event.LeftMouse, event.Press, "", nil),
			ev:   &event.Event{Type: event.LeftMouse, Value: event.Press, KeyModifier: event.KeyQ},
			want: true,
		},
		{
			name: "text input",
			item: NewItem(event.TextInput, event.Press, "", nil),
			ev:   &event.Event{Type: event.KeyX, Value: event.Press, UTF8: "x", Modifier: event.ModShift},
			want: true,
		},
		{
			name: "text input needs text",
			item: NewItem(event.TextInput, event.Press, "", nil),
			ev:   press(event.F1Key, 0),
		},
		{
			name: "text input rejects double click",
			item: NewItem(event.TextInput, event.ValueAny, "", nil),
			ev:   &event.Event{Type: event.KeyX, Value: event.DoubleClick, UTF8: "x"},
		},
		{
			name: "stylus on stylus",
			item: NewItem(event.TabletStylus, event.Press, "", nil),
			ev:   &event.Event{Type: event.LeftMouse, Value: event.Press, Tablet: event.Tablet{Active: event.ToolStylus}},
			want: true,
		},
		{
			name: "stylus on mouse",
			item: NewItem(event.TabletStylus, event.Press, "", nil),
			ev:   press(event.LeftMouse, 0),
		},
		{
			name: "eraser on right button",
			item: NewItem(event.TabletEraser, event.Press, "", nil),
			ev:   &event.Event{Type: event.RightMouse, Value: event.Press, Tablet: event.Tablet{Active: event.ToolEraser}},
		},
		{
			name: "eraser on eraser",
			item: NewItem(event.TabletEraser, event.Press, "", nil),
			ev:   &event.Event{Type: event.LeftMouse, Value: event.Press, Tablet: event.Tablet{Active: event.ToolEraser}},
			want: true,
		},
		{
			name: "drag any direction",
			item: NewItem(event.LeftMouse, event.ClickDrag, "", nil),
			ev:   &event.Event{Type: event.LeftMouse, Value: event.ClickDrag, Direction: event.West},
			want: true,
		},
		{
			name: "drag wrong direction",
			item: &Item{Type: event.LeftMouse, Value: event.ClickDrag, Direction: event.North},
			ev:   &event.Event{Type: event.LeftMouse, Value: event.ClickDrag, Direction: event.West},
		},
		{
			name: "drag right direction",
			item: &Item{Type: event.LeftMouse, Value: event.ClickDrag, Direction: event.North},
			ev:   &event.Event{Type: event.LeftMouse, Value: event.ClickDrag, Direction: event.North},
			want: true,
		},
		{
			name: "wheel in maps to wheel up",
			item: NewItem(event.WheelInMouse, event.Press, "", nil).AnyModifier(),
			ev:   press(event.WheelUpMouse, 0),
			want: true,
		},
		{
			name:  "wheel in inverted maps to wheel down",
			item:  NewItem(event.WheelInMouse, event.Press, "", nil).AnyModifier(),
			ev:    press(event.WheelDownMouse, 0),
			prefs: MatchPrefs{InvertZoomWheel: true},
			want:  true,
		},
		{
			name:  "wheel out inverted rejects wheel down",
			item:  NewItem(event.WheelOutMouse, event.Press, "", nil).AnyModifier(),
			ev:    press(event.WheelDownMouse, 0),
			prefs: MatchPrefs{InvertZoomWheel: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.item, tt.ev, tt.prefs); got != tt.want {
				t.Errorf("Match(%s) = %v, want %v", tt.item, got, tt.want)
			}
		})
	}
}

func TestMatchModifierKeySelf(t *testing.T) {
	keys := []struct {
		key event.Type
		mod event.Modifier
	}{
		{event.LeftShiftKey, event.ModShift},
		{event.RightShiftKey, event.ModShift},
		{event.LeftCtrlKey, event.ModCtrl},
		{event.RightAltKey, event.ModAlt},
		{event.OSKey, event.ModOSKey},
	}
	for _, k := range keys {
		item := NewItem(k.key, event.ValueAny, "", nil)
		for _, val := range []event.Value{event.Press, event.Release} {
			for _, held := range []bool{false, true} {
				ev := &event.Event{Type: k.key, Value: val, Modifier: event.ModNone.Set(k.mod, held)}
				if !Match(item, ev, MatchPrefs{}) {
					t.Errorf("%s %s held=%v: modifier key did not match its own off state", k.key, val, held)
				}
			}
		}
	}

	// Other modifiers are still compared.
	item := NewItem(event.LeftShiftKey, event.Press, "", nil)
	if Match(item, press(event.LeftShiftKey, event.ModShift|event.ModCtrl), MatchPrefs{}) {
		t.Error("shift item matched with ctrl held")
	}
}

func TestMatchShiftOffRegression(t *testing.T) {
	item := &Item{Type: event.LeftShiftKey, Value: event.Press, Shift: ModOff}
	ev := &event.Event{Type: event.LeftShiftKey, Value: event.Press, Modifier: event.ModShift}
	if !Match(item, ev, MatchPrefs{}) {
		t.Fatal("item{LEFTSHIFT, shift=off} must match event{LEFTSHIFT, SHIFT}")
	}
}

func TestLookupFirstMatchWins(t *testing.T) {
	km := New("Window", "", "")
	first := km.Add(NewItem(event.KeyA, event.Press, "test.first", nil).AnyModifier())
	km.Add(NewItem(event.KeyA, event.Press, "test.second", nil))

	if got := km.Lookup(press(event.KeyA, 0), MatchPrefs{}); got != first {
		t.Errorf("Lookup() = %v, want first item", got)
	}
	if first.ID != 1 || km.Items[1].ID != 2 {
		t.Errorf("ids = %d, %d", first.ID, km.Items[1].ID)
	}
	if !km.Remove(first.ID) || km.Lookup(press(event.KeyA, 0), MatchPrefs{}).Operator != "test.second" {
		t.Error("Remove() did not expose the second item")
	}
}
