package ghost

import "github.com/dshills/wmcore/internal/event"

// KeyCode is a platform key code. Letters and digits use their upper-case
// ASCII values.
type KeyCode uint16

const (
	KeyUnknown KeyCode = 0

	KeyBackspace KeyCode = 0x08
	KeyTab       KeyCode = 0x09
	KeyEnter     KeyCode = 0x0D
	KeyEsc       KeyCode = 0x1B
	KeySpace     KeyCode = ' '

	KeyQuote        KeyCode = '\''
	KeyComma        KeyCode = ','
	KeyMinus        KeyCode = '-'
	KeyPeriod       KeyCode = '.'
	KeySlash        KeyCode = '/'
	KeySemicolon    KeyCode = ';'
	KeyEqual        KeyCode = '='
	KeyLeftBracket  KeyCode = '['
	KeyBackslash    KeyCode = '\\'
	KeyRightBracket KeyCode = ']'
	KeyAccentGrave  KeyCode = '`'
)

// Keys without an ASCII value.
const (
	KeyLeftShift KeyCode = iota + 0x100
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyOS

	KeyLeftArrow
	KeyRightArrow
	KeyUpArrow
	KeyDownArrow

	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	KeyNumpad0
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
	KeyNumpadPeriod
	KeyNumpadEnter
	KeyNumpadPlus
	KeyNumpadMinus
	KeyNumpadAsterisk
	KeyNumpadSlash

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyTypes = map[KeyCode]event.Type{
	KeyBackspace:    event.BackspaceKey,
	KeyTab:          event.TabKey,
	KeyEnter:        event.ReturnKey,
	KeyEsc:          event.EscKey,
	KeySpace:        event.SpaceKey,
	KeyQuote:        event.QuoteKey,
	KeyComma:        event.CommaKey,
	KeyMinus:        event.MinusKey,
	KeyPeriod:       event.PeriodKey,
	KeySlash:        event.SlashKey,
	KeySemicolon:    event.SemicolonKey,
	KeyEqual:        event.EqualKey,
	KeyLeftBracket:  event.LeftBracketKey,
	KeyBackslash:    event.BackslashKey,
	KeyRightBracket: event.RightBracketKey,
	KeyAccentGrave:  event.AccentGraveKey,

	KeyLeftShift:    event.LeftShiftKey,
	KeyRightShift:   event.RightShiftKey,
	KeyLeftControl:  event.LeftCtrlKey,
	KeyRightControl: event.RightCtrlKey,
	KeyLeftAlt:      event.LeftAltKey,
	KeyRightAlt:     event.RightAltKey,
	KeyOS:           event.OSKey,

	KeyLeftArrow:  event.LeftArrowKey,
	KeyRightArrow: event.RightArrowKey,
	KeyUpArrow:    event.UpArrowKey,
	KeyDownArrow:  event.DownArrowKey,

	KeyInsert:   event.InsertKey,
	KeyDelete:   event.DeleteKey,
	KeyHome:     event.HomeKey,
	KeyEnd:      event.EndKey,
	KeyPageUp:   event.PageUpKey,
	KeyPageDown: event.PageDownKey,

	KeyNumpadPeriod:   event.PadPeriod,
	KeyNumpadEnter:    event.PadEnter,
	KeyNumpadPlus:     event.PadPlus,
	KeyNumpadMinus:    event.PadMinus,
	KeyNumpadAsterisk: event.PadAsterisk,
	KeyNumpadSlash:    event.PadSlash,
}

// ConvertKey maps a platform key code to an event type. Codes without a
// mapping become event.UnknownKey.
func ConvertKey(k KeyCode) event.Type {
	switch {
	case k >= 'A' && k <= 'Z':
		return event.KeyA + event.Type(k-'A')
	case k >= '0' && k <= '9':
		return event.Key0 + event.Type(k-'0')
	case k >= KeyNumpad0 && k <= KeyNumpad9:
		return event.Pad0 + event.Type(k-KeyNumpad0)
	case k >= KeyF1 && k <= KeyF12:
		return event.F1Key + event.Type(k-KeyF1)
	}
	if t, ok := keyTypes[k]; ok {
		return t
	}
	return event.UnknownKey
}

// ConvertButton maps a mouse button to an event type.
func ConvertButton(b Button) event.Type {
	switch b {
	case ButtonLeft:
		return event.LeftMouse
	case ButtonMiddle:
		return event.MiddleMouse
	case ButtonRight:
		return event.RightMouse
	case Button4:
		return event.Button4Mouse
	case Button5:
		return event.Button5Mouse
	case Button6:
		return event.Button6Mouse
	case Button7:
		return event.Button7Mouse
	default:
		return event.TypeNone
	}
}

// ConvertNDOFButton maps an NDOF button number to an event type. Buttons
// past the known range become event.UnknownKey.
func ConvertNDOFButton(n int) event.Type {
	t := event.NDOFButtonMenu + event.Type(n)
	if n < 0 || t > event.NDOFButton4 {
		return event.UnknownKey
	}
	return t
}
