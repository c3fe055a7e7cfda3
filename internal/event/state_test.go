package event

import (
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// feed runs a button event through the state like the window manager does.
func feed(s *State, typ Type, val Value, at time.Duration, th Thresholds) Event {
	ev := s.NewEvent(epoch.Add(at))
	ev.Type = typ
	ev.Value = val
	s.UpdateAndClickSet(&ev, false, th)
	return ev
}

func TestDoubleClickTiming(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name      string
		second    time.Duration
		moveTo    Point
		wantValue Value
	}{
		{"within time and threshold", 200 * time.Millisecond, Point{100, 100}, DoubleClick},
		{"small jitter", 200 * time.Millisecond, Point{102, 99}, DoubleClick},
		{"too slow", 400 * time.Millisecond, Point{100, 100}, Press},
		{"exactly at limit", 350 * time.Millisecond, Point{100, 100}, Press},
		{"moved beyond threshold", 200 * time.Millisecond, Point{110, 100}, Press},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			s.XY = Point{100, 100}

			if ev := feed(s, LeftMouse, Press, 0, th); ev.Value != Press {
				t.Fatalf("first press = %v, want PRESS", ev.Value)
			}
			feed(s, LeftMouse, Release, 50*time.Millisecond, th)

			s.XY = tt.moveTo
			ev := feed(s, LeftMouse, Press, tt.second, th)
			if ev.Value != tt.wantValue {
				t.Errorf("second press = %v, want %v", ev.Value, tt.wantValue)
			}
		})
	}
}

func TestDoubleClickRequiresSameType(t *testing.T) {
	th := DefaultThresholds()
	s := NewState()

	feed(s, LeftMouse, Press, 0, th)
	feed(s, LeftMouse, Release, 10*time.Millisecond, th)
	if ev := feed(s, RightMouse, Press, 20*time.Millisecond, th); ev.Value != Press {
		t.Errorf("other button press = %v, want PRESS", ev.Value)
	}
}

func TestPressBaseline(t *testing.T) {
	th := DefaultThresholds()
	s := NewState()
	s.XY = Point{10, 20}
	s.Modifier = ModShift
	s.KeyModifier = KeyG

	feed(s, LeftMouse, Press, 0, th)

	if s.PrevPressType != LeftMouse {
		t.Errorf("PrevPressType = %v, want LEFTMOUSE", s.PrevPressType)
	}
	if s.PrevPressXY != (Point{10, 20}) {
		t.Errorf("PrevPressXY = %v, want {10 20}", s.PrevPressXY)
	}
	if s.PrevPressModifier != ModShift || s.PrevPressKeyModifier != KeyG {
		t.Errorf("press modifiers = %v/%v, want Shift/G", s.PrevPressModifier, s.PrevPressKeyModifier)
	}

	// Repeats never move the baseline.
	s.XY = Point{50, 50}
	ev := s.NewEvent(epoch.Add(time.Second))
	ev.Type = KeyA
	ev.Value = Press
	ev.Flag = FlagRepeat
	s.UpdateAndClickSet(&ev, true, th)
	if s.PrevPressType != LeftMouse {
		t.Errorf("repeat press moved baseline to %v", s.PrevPressType)
	}

	rel := feed(s, LeftMouse, Release, 2*time.Second, th)
	if rel.PrevType != KeyA || rel.PrevValue != Press {
		t.Errorf("release prev = %v/%v, want A/PRESS", rel.PrevType, rel.PrevValue)
	}
}

func TestModifierOnlyFromKeyboard(t *testing.T) {
	th := DefaultThresholds()
	s := NewState()
	s.Modifier = ModAlt

	ev := s.NewEvent(epoch)
	ev.Type = LeftMouse
	ev.Value = Press
	ev.Modifier = ModNone
	s.UpdateAndClickSet(&ev, false, th)

	if !s.Modifier.Has(ModAlt) {
		t.Error("button event cleared modifier state")
	}
}
