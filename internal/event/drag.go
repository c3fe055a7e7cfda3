package event

import (
	"math"
	"time"
)

// Thresholds are the user tunables behind click, drag and double-click
// detection.
type Thresholds struct {
	// Mouse is the drag distance in pixels for mouse buttons.
	Mouse int
	// Tablet is the drag distance in pixels for tablet tools.
	Tablet int
	// Other is the drag distance for keyboard and other presses.
	Other int
	// DoubleClick is the longest press-to-press interval of a double-click.
	DoubleClick time.Duration
}

// DefaultThresholds returns the stock preference values.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Mouse:       3,
		Tablet:      10,
		Other:       30,
		DoubleClick: 350 * time.Millisecond,
	}
}

// DragThreshold returns the distance the cursor must travel from the press
// baseline before ev counts as a drag. The kind of the previous press picks
// the threshold, not ev.Type, which is usually MouseMove while dragging.
func (th Thresholds) DragThreshold(ev *Event) int {
	if ev.PrevPressType.IsMouseButton() {
		if ev.IsTablet() {
			return th.Tablet
		}
		return th.Mouse
	}
	return th.Other
}

// DragTestDelta reports whether delta exceeds the drag threshold on either
// axis.
func (th Thresholds) DragTestDelta(ev *Event, delta Point) bool {
	limit := th.DragThreshold(ev)
	return abs(delta.X) > limit || abs(delta.Y) > limit
}

// DragTest reports whether ev.XY is beyond the drag threshold from start.
func (th Thresholds) DragTest(ev *Event, start Point) bool {
	return th.DragTestDelta(ev, ev.XY.Sub(start))
}

// DragDirection returns the compass direction from the press baseline to
// the current cursor position.
func DragDirection(ev *Event) Direction {
	delta := ev.XY.Sub(ev.PrevPressXY)
	theta := int(math.Round(4 * math.Atan2(float64(delta.Y), float64(delta.X)) / math.Pi))
	switch theta {
	case 0:
		return East
	case 1:
		return NorthEast
	case 2:
		return North
	case 3:
		return NorthWest
	case -1:
		return SouthEast
	case -2:
		return South
	case -3:
		return SouthWest
	default:
		return West
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
