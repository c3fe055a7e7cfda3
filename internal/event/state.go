package event

import "time"

// State is the persistent per-window input state. It is written only by the
// event normalization step.
type State struct {
	Type  Type
	Value Value
	Flag  Flag

	XY     Point
	PrevXY Point

	Modifier    Modifier
	KeyModifier Type
	Tablet      Tablet

	PrevType  Type
	PrevValue Value

	PrevPressType        Type
	PrevPressXY          Point
	PrevPressModifier    Modifier
	PrevPressKeyModifier Type
	PrevPressTime        time.Time
}

// NewState returns an empty state.
func NewState() *State {
	return &State{Tablet: DefaultTablet()}
}

// NewEvent returns an event seeded from the state: cursor, modifiers and
// the previous/press baselines. Type and Value are left for the caller.
func (s *State) NewEvent(now time.Time) Event {
	return Event{
		XY:                   s.XY,
		PrevXY:               s.PrevXY,
		Modifier:             s.Modifier,
		KeyModifier:          s.KeyModifier,
		Tablet:               s.Tablet,
		Time:                 now,
		PrevType:             s.PrevType,
		PrevValue:            s.PrevValue,
		PrevPressType:        s.PrevPressType,
		PrevPressXY:          s.PrevPressXY,
		PrevPressModifier:    s.PrevPressModifier,
		PrevPressKeyModifier: s.PrevPressKeyModifier,
		PrevPressTime:        s.PrevPressTime,
	}
}

// UpdateAndClickSet records a key or button event in the state.
//
// The previous type/value move into the Prev fields of both the state and
// ev. A press that repeats a release of the same type within the
// double-click time (and, for mouse buttons, without exceeding the drag
// threshold) is reclassified as DoubleClick. Any other non-repeat press
// becomes the new press baseline.
//
// Only keyboard events write the modifier set, because mouse emulation may
// clear a modifier on the event that is still physically held.
func (s *State) UpdateAndClickSet(ev *Event, isKeyboard bool, th Thresholds) {
	ev.PrevValue = s.Value
	ev.PrevType = s.Type
	s.PrevValue = s.Value
	s.PrevType = s.Type

	s.Value = ev.Value
	s.Type = ev.Type
	if isKeyboard {
		s.Modifier = ev.Modifier
	}
	s.Flag = ev.Flag & FlagRepeat

	if !ev.IsRepeat() && s.isDoubleClick(ev, th) {
		ev.Value = DoubleClick
		return
	}
	if ev.Value == Press && !ev.IsRepeat() {
		s.setPrevPress(ev.Time)
	}
}

func (s *State) isDoubleClick(ev *Event, th Thresholds) bool {
	if ev.Type != ev.PrevType || ev.PrevValue != Release || ev.Value != Press {
		return false
	}
	if ev.Type.IsMouseButton() && th.DragTest(ev, ev.PrevPressXY) {
		return false
	}
	return ev.Time.Sub(s.PrevPressTime) < th.DoubleClick
}

func (s *State) setPrevPress(at time.Time) {
	s.PrevPressType = s.Type
	s.PrevPressModifier = s.Modifier
	s.PrevPressKeyModifier = s.KeyModifier
	s.PrevPressXY = s.XY
	s.PrevPressTime = at
}
