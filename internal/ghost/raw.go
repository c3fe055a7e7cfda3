package ghost

import (
	"time"

	"github.com/dshills/wmcore/internal/event"
)

// Kind is the kind of a raw event.
type Kind uint8

const (
	KindNone Kind = iota
	KindKeyDown
	KindKeyUp
	KindButtonDown
	KindButtonUp
	KindCursorMove
	KindWheel
	KindTrackpad
	KindNDOFMotion
	KindNDOFButton
	KindWindowActivate
	KindWindowDeactivate
	KindWindowSize
	KindQuit
)

var kindNames = [...]string{
	KindNone:             "None",
	KindKeyDown:          "KeyDown",
	KindKeyUp:            "KeyUp",
	KindButtonDown:       "ButtonDown",
	KindButtonUp:         "ButtonUp",
	KindCursorMove:       "CursorMove",
	KindWheel:            "Wheel",
	KindTrackpad:         "Trackpad",
	KindNDOFMotion:       "NDOFMotion",
	KindNDOFButton:       "NDOFButton",
	KindWindowActivate:   "WindowActivate",
	KindWindowDeactivate: "WindowDeactivate",
	KindWindowSize:       "WindowSize",
	KindQuit:             "Quit",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Button is a physical mouse button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	Button4
	Button5
	Button6
	Button7
)

// TrackpadKind is the gesture of a trackpad event.
type TrackpadKind uint8

const (
	TrackpadScroll TrackpadKind = iota
	TrackpadMagnify
	TrackpadRotate
	TrackpadSmartMagnify
)

// RawEvent is one platform event. Which fields are meaningful depends on
// Kind. Positions are window coordinates with Y growing upwards.
type RawEvent struct {
	Kind Kind
	Time time.Time

	// Key events.
	Key    KeyCode
	UTF8   string
	Repeat bool

	// Button, motion, wheel and trackpad events.
	Button Button
	X, Y   int
	Tablet event.Tablet

	// WheelZ is positive away from the user.
	WheelZ int

	Trackpad       TrackpadKind
	DeltaX, DeltaY int
	// IsDirectionInverted reports natural scrolling.
	IsDirectionInverted bool

	NDOF       event.NDOFMotionData
	NDOFButton int
	NDOFPress  bool

	// Window size events.
	Width, Height int
}

// Source produces raw events.
type Source interface {
	// Poll blocks until events arrive. It returns false once the source is
	// closed.
	Poll() ([]RawEvent, bool)
	// Size returns the window size.
	Size() (int, int)
	Close()
}
