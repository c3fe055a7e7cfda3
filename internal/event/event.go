package event

import "time"

// Point is a position in window coordinates.
type Point struct {
	X, Y int
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Flag holds per-event flags.
type Flag uint8

const (
	// FlagRepeat marks a key press generated by key auto-repeat.
	FlagRepeat Flag = 1 << iota
	// FlagForceDragThreshold makes the drag test pass regardless of distance.
	FlagForceDragThreshold
	// FlagScrollInvert marks trackpad events from a device with natural
	// scrolling.
	FlagScrollInvert
)

// TabletTool is the tablet tool that produced an event.
type TabletTool uint8

const (
	ToolNone TabletTool = iota
	ToolStylus
	ToolEraser
)

// Tablet holds pen data for an event.
type Tablet struct {
	Active   TabletTool
	Pressure float32
	XTilt    float32
	YTilt    float32
}

// DefaultTablet returns tablet data for a plain mouse.
func DefaultTablet() Tablet {
	return Tablet{Active: ToolNone, Pressure: 1}
}

// Event is a single normalized input occurrence.
type Event struct {
	Type      Type
	Value     Value
	Direction Direction
	Flag      Flag

	// XY is the cursor position, PrevXY the position of the previous motion.
	XY     Point
	PrevXY Point
	// MVal is XY relative to the active region. It is only filled in on the
	// transient copy handed to operator callbacks.
	MVal Point

	Modifier Modifier
	// KeyModifier is a non-modifier key held while this event happened.
	KeyModifier Type

	// UTF8 is the text a key press produces, if any.
	UTF8   string
	Tablet Tablet
	Time   time.Time

	// PrevType and PrevValue are the type/value of the previous key or
	// button event in the window.
	PrevType  Type
	PrevValue Value

	// The previous press baseline used by click and drag detection.
	PrevPressType        Type
	PrevPressXY          Point
	PrevPressModifier    Modifier
	PrevPressKeyModifier Type
	PrevPressTime        time.Time

	// ModalValue carries the modal key-map item value when Type is
	// EvtModalMap.
	ModalValue int

	CustomData CustomData
}

// IsRepeat reports whether the event was generated by key auto-repeat.
func (e *Event) IsRepeat() bool {
	return e.Flag&FlagRepeat != 0
}

// IsTablet reports whether a tablet tool produced the event.
func (e *Event) IsTablet() bool {
	return e.Tablet.Active != ToolNone
}

// Clone returns a shallow copy. Custom data is shared.
func (e *Event) Clone() *Event {
	c := *e
	return &c
}

// AlwaysPass reports whether the event must reach every interested handler
// even after one of them breaks.
func (e *Event) AlwaysPass() bool {
	return e.Type.IsTimer() || e.Type == WindowDeactivate
}
