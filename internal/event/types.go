package event

import (
	"fmt"
	"sort"
	"strings"
)

// Type identifies the physical or synthetic source of an event.
type Type int16

// TypeNone is the zero event type.
const TypeNone Type = 0

// Mouse buttons.
const (
	LeftMouse Type = iota + 0x0001
	MiddleMouse
	RightMouse
	Button4Mouse
	Button5Mouse
	Button6Mouse
	Button7Mouse
)

// Mouse motion.
const (
	MouseMove Type = iota + 0x0010
	InbetweenMouseMove
)

// Wheel and trackpad gestures.
const (
	WheelUpMouse Type = iota + 0x0018
	WheelDownMouse
	WheelInMouse
	WheelOutMouse

	MousePan
	MouseZoom
	MouseRotate
	MouseSmartZoom
)

// Letters and top row digits.
const (
	KeyA Type = iota + 0x0040
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

// Numeric keypad.
const (
	Pad0 Type = iota + 0x0070
	Pad1
	Pad2
	Pad3
	Pad4
	Pad5
	Pad6
	Pad7
	Pad8
	Pad9
	PadPeriod
	PadSlash
	PadAsterisk
	PadMinus
	PadPlus
	PadEnter
)

// Modifier keys.
const (
	LeftCtrlKey Type = iota + 0x0090
	LeftAltKey
	LeftShiftKey
	RightAltKey
	RightCtrlKey
	RightShiftKey
	OSKey
)

// Navigation, editing and function keys.
const (
	EscKey Type = iota + 0x00a0
	TabKey
	ReturnKey
	SpaceKey
	BackspaceKey
	DeleteKey
	InsertKey
	HomeKey
	EndKey
	PageUpKey
	PageDownKey
	LeftArrowKey
	DownArrowKey
	RightArrowKey
	UpArrowKey

	F1Key
	F2Key
	F3Key
	F4Key
	F5Key
	F6Key
	F7Key
	F8Key
	F9Key
	F10Key
	F11Key
	F12Key

	MinusKey
	EqualKey
	BackslashKey
	SemicolonKey
	PeriodKey
	CommaKey
	QuoteKey
	AccentGraveKey
	SlashKey
	LeftBracketKey
	RightBracketKey

	// UnknownKey is produced for platform key codes without a mapping.
	// It is still queued so key-maps can bind it.
	UnknownKey
)

// NDOF (3D mouse) motion and buttons.
const (
	NDOFMotion Type = iota + 0x0190
	NDOFButtonMenu
	NDOFButtonFit
	NDOFButton1
	NDOFButton2
	NDOFButton3
	NDOFButton4
)

// Timers.
const (
	Timer Type = iota + 0x0110
	Timer0
	Timer1
	Timer2
	TimerJobs
	TimerAutosave
	TimerReport
	TimerRegion
	TimerNotifier
)

// Window and synthetic events.
const (
	WindowDeactivate Type = iota + 0x0104
	EvtDrop
	EvtFileSelect
	EvtModalMap
	EvtXRAction
)

// Pseudo types used only by key-map items.
const (
	// TextInput matches any keyboard press carrying printable text.
	TextInput Type = iota + 0x0200
	// TabletStylus matches a primary button press from a tablet stylus.
	TabletStylus
	// TabletEraser matches a primary button press from a tablet eraser.
	TabletEraser

	// AnyType matches every event type.
	AnyType Type = -1
)

var typeNames = map[Type]string{
	TypeNone:           "NONE",
	LeftMouse:          "LEFTMOUSE",
	MiddleMouse:        "MIDDLEMOUSE",
	RightMouse:         "RIGHTMOUSE",
	Button4Mouse:       "BUTTON4MOUSE",
	Button5Mouse:       "BUTTON5MOUSE",
	Button6Mouse:       "BUTTON6MOUSE",
	Button7Mouse:       "BUTTON7MOUSE",
	MouseMove:          "MOUSEMOVE",
	InbetweenMouseMove: "INBETWEEN_MOUSEMOVE",
	WheelUpMouse:       "WHEELUPMOUSE",
	WheelDownMouse:     "WHEELDOWNMOUSE",
	WheelInMouse:       "WHEELINMOUSE",
	WheelOutMouse:      "WHEELOUTMOUSE",
	MousePan:           "TRACKPADPAN",
	MouseZoom:          "TRACKPADZOOM",
	MouseRotate:        "MOUSEROTATE",
	MouseSmartZoom:     "MOUSESMARTZOOM",
	PadPeriod:          "NUMPAD_PERIOD",
	PadSlash:           "NUMPAD_SLASH",
	PadAsterisk:        "NUMPAD_ASTERIX",
	PadMinus:           "NUMPAD_MINUS",
	PadPlus:            "NUMPAD_PLUS",
	PadEnter:           "NUMPAD_ENTER",
	LeftCtrlKey:        "LEFT_CTRL",
	LeftAltKey:         "LEFT_ALT",
	LeftShiftKey:       "LEFT_SHIFT",
	RightAltKey:        "RIGHT_ALT",
	RightCtrlKey:       "RIGHT_CTRL",
	RightShiftKey:      "RIGHT_SHIFT",
	OSKey:              "OSKEY",
	EscKey:             "ESC",
	TabKey:             "TAB",
	ReturnKey:          "RET",
	SpaceKey:           "SPACE",
	BackspaceKey:       "BACK_SPACE",
	DeleteKey:          "DEL",
	InsertKey:          "INSERT",
	HomeKey:            "HOME",
	EndKey:             "END",
	PageUpKey:          "PAGE_UP",
	PageDownKey:        "PAGE_DOWN",
	LeftArrowKey:       "LEFT_ARROW",
	DownArrowKey:       "DOWN_ARROW",
	RightArrowKey:      "RIGHT_ARROW",
	UpArrowKey:         "UP_ARROW",
	MinusKey:           "MINUS",
	EqualKey:           "EQUAL",
	BackslashKey:       "BACK_SLASH",
	SemicolonKey:       "SEMI_COLON",
	PeriodKey:          "PERIOD",
	CommaKey:           "COMMA",
	QuoteKey:           "QUOTE",
	AccentGraveKey:     "ACCENT_GRAVE",
	SlashKey:           "SLASH",
	LeftBracketKey:     "LEFT_BRACKET",
	RightBracketKey:    "RIGHT_BRACKET",
	UnknownKey:         "UNKNOWNKEY",
	NDOFMotion:         "NDOF_MOTION",
	NDOFButtonMenu:     "NDOF_BUTTON_MENU",
	NDOFButtonFit:      "NDOF_BUTTON_FIT",
	NDOFButton1:        "NDOF_BUTTON_1",
	NDOFButton2:        "NDOF_BUTTON_2",
	NDOFButton3:        "NDOF_BUTTON_3",
	NDOFButton4:        "NDOF_BUTTON_4",
	Timer:              "TIMER",
	Timer0:             "TIMER0",
	Timer1:             "TIMER1",
	Timer2:             "TIMER2",
	TimerJobs:          "TIMER_JOBS",
	TimerAutosave:      "TIMER_AUTOSAVE",
	TimerReport:        "TIMER_REPORT",
	TimerRegion:        "TIMERREGION",
	TimerNotifier:      "TIMER_NOTIFIER",
	WindowDeactivate:   "WINDOW_DEACTIVATE",
	EvtDrop:            "DROP",
	EvtFileSelect:      "FILESELECT",
	EvtModalMap:        "MODAL_MAP",
	EvtXRAction:        "XR_ACTION",
	TextInput:          "TEXTINPUT",
	TabletStylus:       "PEN",
	TabletEraser:       "ERASER",
	AnyType:            "ANY",
}

var digitNames = [...]string{"ZERO", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT", "NINE"}

var typeByName map[string]Type

func init() {
	for t := KeyA; t <= KeyZ; t++ {
		typeNames[t] = string(rune('A' + int(t-KeyA)))
	}
	for i, name := range digitNames {
		typeNames[Key0+Type(i)] = name
		typeNames[Pad0+Type(i)] = fmt.Sprintf("NUMPAD_%d", i)
	}
	for i := 0; i < 12; i++ {
		typeNames[F1Key+Type(i)] = fmt.Sprintf("F%d", i+1)
	}

	typeByName = make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		typeByName[name] = t
	}
}

// String returns the identifier used in key-map files.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int16(t))
}

// ParseType resolves an identifier produced by Type.String. Matching is
// case-insensitive.
func ParseType(s string) (Type, bool) {
	t, ok := typeByName[strings.ToUpper(strings.TrimSpace(s))]
	return t, ok
}

// TypeNames returns every known type identifier in sorted order.
func TypeNames() []string {
	names := make([]string, 0, len(typeByName))
	for name := range typeByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsMouseButton reports whether t is a physical mouse button.
func (t Type) IsMouseButton() bool {
	return t >= LeftMouse && t <= Button7Mouse
}

// IsMouseMotion reports whether t is cursor motion.
func (t Type) IsMouseMotion() bool {
	return t == MouseMove || t == InbetweenMouseMove
}

// IsWheel reports whether t is a wheel step.
func (t Type) IsWheel() bool {
	return t >= WheelUpMouse && t <= WheelOutMouse
}

// IsGesture reports whether t is a trackpad gesture.
func (t Type) IsGesture() bool {
	return t >= MousePan && t <= MouseSmartZoom
}

// IsMouse reports whether t originates from the pointing device.
func (t Type) IsMouse() bool {
	return t.IsMouseButton() || t.IsMouseMotion() || t.IsWheel() || t.IsGesture()
}

// IsKeyboard reports whether t is a keyboard key, including modifiers and
// UnknownKey.
func (t Type) IsKeyboard() bool {
	return (t >= KeyA && t <= Key9) ||
		(t >= Pad0 && t <= PadEnter) ||
		(t >= LeftCtrlKey && t <= OSKey) ||
		(t >= EscKey && t <= UnknownKey)
}

// IsModifierKey reports whether t is one of the modifier keys.
func (t Type) IsModifierKey() bool {
	return t >= LeftCtrlKey && t <= OSKey
}

// IsTimer reports whether t is a timer event.
func (t Type) IsTimer() bool {
	return t >= Timer && t <= TimerNotifier
}

// IsNDOF reports whether t is NDOF motion or an NDOF button.
func (t Type) IsNDOF() bool {
	return t >= NDOFMotion && t <= NDOFButton4
}

// IsNDOFButton reports whether t is an NDOF button.
func (t Type) IsNDOFButton() bool {
	return t >= NDOFButtonMenu && t <= NDOFButton4
}

// IsKeyboardOrButton reports whether t participates in click detection.
func (t Type) IsKeyboardOrButton() bool {
	return t.IsKeyboard() || t.IsMouseButton() || t.IsNDOFButton()
}

// ModifierFor returns the modifier bit a modifier key controls.
func (t Type) ModifierFor() Modifier {
	switch t {
	case LeftShiftKey, RightShiftKey:
		return ModShift
	case LeftCtrlKey, RightCtrlKey:
		return ModCtrl
	case LeftAltKey, RightAltKey:
		return ModAlt
	case OSKey:
		return ModOSKey
	default:
		return ModNone
	}
}
