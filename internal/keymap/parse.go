package keymap

import (
	"strings"

	"github.com/dshills/wmcore/internal/event"
)

var modifierNames = []struct {
	name string
	mod  event.Modifier
}{
	{"ctrl", event.ModCtrl},
	{"alt", event.ModAlt},
	{"shift", event.ModShift},
	{"oskey", event.ModOSKey},
}

var modifierAliases = map[string]string{
	"control": "ctrl",
	"option":  "alt",
	"cmd":     "oskey",
	"super":   "oskey",
	"meta":    "oskey",
}

// ParseItem parses an item pattern.
//
// The format is a chord, an optional value (press by default), an optional
// click-drag direction and optional flags, separated by spaces:
//
//	A
//	ctrl+shift+S press
//	any+LEFTMOUSE click_drag north
//	?shift+Q+WHEELUPMOUSE
//	alt+F3 press norepeat
//
// Chord parts before the type are modifiers. A modifier name requires the
// modifier held, a leading '?' accepts it either way and "any" accepts
// every modifier. Any other part names a key-modifier key. Modifiers not
// mentioned must be released.
func ParseItem(text string) (*Item, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, &ParseError{Source: text, Message: "empty item", Err: ErrEmptyItem}
	}

	it := NewItem(event.TypeNone, event.Press, "", nil)
	if err := parseChord(text, fields[0], it); err != nil {
		return nil, err
	}

	rest := fields[1:]
	if len(rest) > 0 {
		if v, ok := event.ParseValue(rest[0]); ok {
			it.Value = v
			rest = rest[1:]
		}
	}
	if len(rest) > 0 {
		if d, ok := event.ParseDirection(rest[0]); ok {
			if it.Value != event.ClickDrag {
				return nil, &ParseError{Source: text, Token: rest[0], Message: "direction requires click_drag", Err: ErrInvalidItem}
			}
			it.Direction = d
			rest = rest[1:]
		}
	}
	for _, tok := range rest {
		switch strings.ToLower(tok) {
		case "norepeat":
			it.Flag |= ItemRepeatIgnore
		case "inactive":
			it.Flag |= ItemInactive
		default:
			return nil, &ParseError{Source: text, Token: tok, Message: "unexpected token", Err: ErrInvalidItem}
		}
	}
	return it, nil
}

func parseChord(text, chord string, it *Item) error {
	parts := strings.Split(chord, "+")
	last := parts[len(parts)-1]
	if last == "" {
		return &ParseError{Source: text, Token: chord, Message: "missing event type", Err: ErrInvalidItem}
	}
	typ, ok := event.ParseType(last)
	if !ok {
		return &ParseError{Source: text, Token: last, Message: "unknown event type", Err: ErrInvalidItem}
	}
	it.Type = typ

	for _, part := range parts[:len(parts)-1] {
		name := strings.ToLower(part)
		state := ModOn
		if strings.HasPrefix(name, "?") {
			name = name[1:]
			state = ModAny
		}
		if alias, ok := modifierAliases[name]; ok {
			name = alias
		}

		if name == "any" && state == ModOn {
			it.AnyModifier()
			continue
		}
		if slot := it.modifierSlot(name); slot != nil {
			*slot = state
			continue
		}

		if state == ModAny {
			return &ParseError{Source: text, Token: part, Message: "only modifiers take '?'", Err: ErrInvalidItem}
		}
		km, ok := event.ParseType(part)
		if !ok || km == event.AnyType {
			return &ParseError{Source: text, Token: part, Message: "unknown modifier or key", Err: ErrInvalidItem}
		}
		if it.KeyModifier != event.TypeNone {
			return &ParseError{Source: text, Token: part, Message: "more than one key-modifier", Err: ErrInvalidItem}
		}
		it.KeyModifier = km
	}
	return nil
}

func (it *Item) modifierSlot(name string) *ModState {
	switch name {
	case "ctrl":
		return &it.Ctrl
	case "alt":
		return &it.Alt
	case "shift":
		return &it.Shift
	case "oskey":
		return &it.OSKey
	}
	return nil
}

// String formats the item pattern so that ParseItem reads it back.
func (it *Item) String() string {
	var parts []string
	if it.IsAnyModifier() {
		parts = append(parts, "any")
	} else {
		for _, m := range modifierNames {
			switch *it.modifierSlot(m.name) {
			case ModOn:
				parts = append(parts, m.name)
			case ModAny:
				parts = append(parts, "?"+m.name)
			}
		}
	}
	if it.KeyModifier != event.TypeNone {
		parts = append(parts, it.KeyModifier.String())
	}
	parts = append(parts, it.Type.String())

	var sb strings.Builder
	sb.WriteString(strings.Join(parts, "+"))
	sb.WriteByte(' ')
	sb.WriteString(strings.ToLower(it.Value.String()))
	if it.Value == event.ClickDrag && it.Direction > event.DirectionNone {
		sb.WriteByte(' ')
		sb.WriteString(strings.ToLower(it.Direction.String()))
	}
	if it.Flag&ItemRepeatIgnore != 0 {
		sb.WriteString(" norepeat")
	}
	if it.Flag&ItemInactive != 0 {
		sb.WriteString(" inactive")
	}
	return sb.String()
}
