package keymap

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/wmcore/internal/event"
)

func TestParseItem(t *testing.T) {
	tests := []struct {
		binding string
		want    Item
	}{
		{"A", Item{Type: event.KeyA, Value: event.Press, Direction: event.DirectionAny}},
		{"ctrl+shift+S", Item{Type: event.KeyS, Value: event.Press, Ctrl: ModOn, Shift: ModOn, Direction: event.DirectionAny}},
		{"ctrl+z release", Item{Type: event.KeyZ, Value: event.Release, Ctrl: ModOn, Direction: event.DirectionAny}},
		{
			"any+LEFTMOUSE click_drag north",
			Item{Type: event.LeftMouse, Value: event.ClickDrag, Shift: ModAny, Ctrl: ModAny, Alt: ModAny, OSKey: ModAny, Direction: event.North},
		},
		{"?shift+Q+WHEELUPMOUSE", Item{Type: event.WheelUpMouse, Value: event.Press, Shift: ModAny, KeyModifier: event.KeyQ, Direction: event.DirectionAny}},
		{"cmd+F3 press norepeat", Item{Type: event.F3Key, Value: event.Press, OSKey: ModOn, Direction: event.DirectionAny, Flag: ItemRepeatIgnore}},
		{"ANY any", Item{Type: event.AnyType, Value: event.ValueAny, Direction: event.DirectionAny}},
	}

	for _, tt := range tests {
		t.Run(tt.binding, func(t *testing.T) {
			got, err := ParseItem(tt.binding)
			if err != nil {
				t.Fatalf("ParseItem() error = %v", err)
			}
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("ParseItem() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestParseItemErrors(t *testing.T) {
	tests := []struct {
		binding string
		wantErr error
	}{
		{"", ErrEmptyItem},
		{"   ", ErrEmptyItem},
		{"ctrl+", ErrInvalidItem},
		{"ctrl+NOPE", ErrInvalidItem},
		{"hyper+A", ErrInvalidItem},
		{"Q+W+A", ErrInvalidItem},
		{"?Q+A", ErrInvalidItem},
		{"A press north", ErrInvalidItem},
		{"A press sideways", ErrInvalidItem},
	}
	for _, tt := range tests {
		t.Run(tt.binding, func(t *testing.T) {
			_, err := ParseItem(tt.binding)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseItem(%q) error = %v, want %v", tt.binding, err, tt.wantErr)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("error %T is not a *ParseError", err)
			}
		})
	}
}

func TestItemStringRoundTrip(t *testing.T) {
	bindings := []string{
		"A press",
		"ctrl+shift+S press",
		"alt+?oskey+E release",
		"any+LEFTMOUSE click_drag north_west",
		"Q+RIGHTMOUSE click",
		"F3 press norepeat inactive",
		"NUMPAD_PLUS double_click",
	}
	for _, binding := range bindings {
		it, err := ParseItem(binding)
		if err != nil {
			t.Fatalf("ParseItem(%q) error = %v", binding, err)
		}
		if got := it.String(); got != binding {
			t.Errorf("String() = %q, want %q", got, binding)
		}
	}
}
