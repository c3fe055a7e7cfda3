package ghost

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TerminalSource produces raw events from a tcell screen.
type TerminalSource struct {
	mu     sync.Mutex
	screen tcell.Screen
	closed bool

	// held is the modifier set last reported with a mouse event.
	held    tcell.ModMask
	buttons tcell.ButtonMask
	x, y    int
	height  int
}

// NewTerminalSource opens the controlling terminal.
func NewTerminalSource() (*TerminalSource, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalSourceWithScreen(screen)
}

// NewTerminalSourceWithScreen initializes screen and reads from it.
func NewTerminalSourceWithScreen(screen tcell.Screen) (*TerminalSource, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.EnableFocus()
	_, h := screen.Size()
	return &TerminalSource{screen: screen, height: h, x: -1, y: -1}, nil
}

// Poll blocks for the next terminal event and converts it. Events tcell
// reports that have no raw counterpart produce an empty slice.
func (t *TerminalSource) Poll() ([]RawEvent, bool) {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return nil, false
	}
	ev := t.screen.PollEvent()
	if ev == nil {
		return nil, false
	}
	return t.Convert(ev), true
}

// Size returns the terminal size in cells.
func (t *TerminalSource) Size() (int, int) {
	return t.screen.Size()
}

// Close restores the terminal.
func (t *TerminalSource) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	t.screen.Fini()
}

// Convert translates one tcell event.
func (t *TerminalSource) Convert(ev tcell.Event) []RawEvent {
	t.mu.Lock()
	defer t.mu.Unlock()

	when := ev.When()
	switch e := ev.(type) {
	case *tcell.EventKey:
		return t.convertKeyEvent(e, when)
	case *tcell.EventMouse:
		return t.convertMouseEvent(e, when)
	case *tcell.EventResize:
		w, h := e.Size()
		t.height = h
		return []RawEvent{{Kind: KindWindowSize, Time: when, Width: w, Height: h}}
	case *tcell.EventFocus:
		kind := KindWindowDeactivate
		if e.Focused {
			kind = KindWindowActivate
		}
		return []RawEvent{{Kind: kind, Time: when}}
	default:
		return nil
	}
}

func (t *TerminalSource) convertKeyEvent(e *tcell.EventKey, when time.Time) []RawEvent {
	code, text, mods := convertTerminalKey(e)

	// Modifiers not already held through the mouse are pressed around the
	// key only.
	extra := mods &^ t.held
	var out []RawEvent
	out = appendModifiers(out, extra, KindKeyDown, when)
	out = append(out,
		RawEvent{Kind: KindKeyDown, Time: when, Key: code, UTF8: text},
		RawEvent{Kind: KindKeyUp, Time: when, Key: code},
	)
	return appendModifiers(out, extra, KindKeyUp, when)
}

func (t *TerminalSource) convertMouseEvent(e *tcell.EventMouse, when time.Time) []RawEvent {
	col, row := e.Position()
	x, y := col, t.height-1-row

	var out []RawEvent
	mods := e.Modifiers()
	out = appendModifiers(out, mods&^t.held, KindKeyDown, when)
	out = appendModifiers(out, t.held&^mods, KindKeyUp, when)
	t.held = mods

	if x != t.x || y != t.y {
		t.x, t.y = x, y
		out = append(out, RawEvent{Kind: KindCursorMove, Time: when, X: x, Y: y})
	}

	btns := e.Buttons()
	for _, b := range terminalButtons {
		was, is := t.buttons&b.mask != 0, btns&b.mask != 0
		switch {
		case is && !was:
			out = append(out, RawEvent{Kind: KindButtonDown, Time: when, Button: b.button, X: x, Y: y})
		case was && !is:
			out = append(out, RawEvent{Kind: KindButtonUp, Time: when, Button: b.button, X: x, Y: y})
		}
	}
	t.buttons = btns & (tcell.Button1 | tcell.Button2 | tcell.Button3 | tcell.Button4 | tcell.Button5)

	if btns&tcell.WheelUp != 0 {
		out = append(out, RawEvent{Kind: KindWheel, Time: when, WheelZ: 1, X: x, Y: y})
	}
	if btns&tcell.WheelDown != 0 {
		out = append(out, RawEvent{Kind: KindWheel, Time: when, WheelZ: -1, X: x, Y: y})
	}
	if btns&tcell.WheelLeft != 0 {
		out = append(out, RawEvent{Kind: KindTrackpad, Time: when, Trackpad: TrackpadScroll, DeltaX: -1, X: x, Y: y})
	}
	if btns&tcell.WheelRight != 0 {
		out = append(out, RawEvent{Kind: KindTrackpad, Time: when, Trackpad: TrackpadScroll, DeltaX: 1, X: x, Y: y})
	}
	return out
}

var terminalButtons = []struct {
	mask   tcell.ButtonMask
	button Button
}{
	{tcell.Button1, ButtonLeft},
	{tcell.Button2, ButtonRight},
	{tcell.Button3, ButtonMiddle},
	{tcell.Button4, Button4},
	{tcell.Button5, Button5},
}

var terminalModifiers = []struct {
	mask tcell.ModMask
	key  KeyCode
}{
	{tcell.ModCtrl, KeyLeftControl},
	{tcell.ModAlt, KeyLeftAlt},
	{tcell.ModShift, KeyLeftShift},
	{tcell.ModMeta, KeyOS},
}

func appendModifiers(out []RawEvent, mods tcell.ModMask, kind Kind, when time.Time) []RawEvent {
	for _, m := range terminalModifiers {
		if mods&m.mask != 0 {
			out = append(out, RawEvent{Kind: kind, Time: when, Key: m.key})
		}
	}
	return out
}

// convertTerminalKey returns the key code, its text and the modifiers a
// terminal key event implies.
func convertTerminalKey(e *tcell.EventKey) (KeyCode, string, tcell.ModMask) {
	mods := e.Modifiers()
	k := e.Key()
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return KeyCode('A' + (k - tcell.KeyCtrlA)), "", mods | tcell.ModCtrl
	}

	switch k {
	case tcell.KeyRune:
		r := e.Rune()
		code, shift := runeKey(r)
		if shift {
			mods |= tcell.ModShift
		}
		return code, string(r), mods
	case tcell.KeyEscape:
		return KeyEsc, "", mods
	case tcell.KeyEnter:
		return KeyEnter, "", mods
	case tcell.KeyTab:
		return KeyTab, "", mods
	case tcell.KeyBacktab:
		return KeyTab, "", mods | tcell.ModShift
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace, "", mods
	case tcell.KeyDelete:
		return KeyDelete, "", mods
	case tcell.KeyInsert:
		return KeyInsert, "", mods
	case tcell.KeyHome:
		return KeyHome, "", mods
	case tcell.KeyEnd:
		return KeyEnd, "", mods
	case tcell.KeyPgUp:
		return KeyPageUp, "", mods
	case tcell.KeyPgDn:
		return KeyPageDown, "", mods
	case tcell.KeyUp:
		return KeyUpArrow, "", mods
	case tcell.KeyDown:
		return KeyDownArrow, "", mods
	case tcell.KeyLeft:
		return KeyLeftArrow, "", mods
	case tcell.KeyRight:
		return KeyRightArrow, "", mods
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return KeyF1 + KeyCode(k-tcell.KeyF1), "", mods
	}
	return KeyUnknown, "", mods
}

var shiftedRunes = map[rune]KeyCode{
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
	'^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
	'_': KeyMinus, '+': KeyEqual, '{': KeyLeftBracket, '}': KeyRightBracket,
	'|': KeyBackslash, ':': KeySemicolon, '"': KeyQuote, '<': KeyComma,
	'>': KeyPeriod, '?': KeySlash, '~': KeyAccentGrave,
}

// runeKey returns the key producing r and whether Shift is needed.
func runeKey(r rune) (KeyCode, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyCode(r - 'a' + 'A'), false
	case r >= 'A' && r <= 'Z':
		return KeyCode(r), true
	case r >= '0' && r <= '9':
		return KeyCode(r), false
	}
	if code, ok := shiftedRunes[r]; ok {
		return code, true
	}
	if _, ok := keyTypes[KeyCode(r)]; ok && r < 0x80 {
		return KeyCode(r), false
	}
	return KeyUnknown, false
}
