package keymap

import (
	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/operator"
)

// ModState is the required state of one modifier in an item.
type ModState int8

const (
	// ModAny accepts the modifier held or not.
	ModAny ModState = -1
	// ModOff requires the modifier to be released.
	ModOff ModState = 0
	// ModOn requires the modifier to be held.
	ModOn ModState = 1
)

// String returns "any", "off" or "on".
func (s ModState) String() string {
	switch s {
	case ModAny:
		return "any"
	case ModOn:
		return "on"
	default:
		return "off"
	}
}

func parseModState(s string) (ModState, bool) {
	switch s {
	case "any":
		return ModAny, true
	case "on", "held", "true":
		return ModOn, true
	case "off", "", "false":
		return ModOff, true
	}
	return ModOff, false
}

// ItemFlag holds item options.
type ItemFlag uint8

const (
	// ItemInactive disables the item without removing it.
	ItemInactive ItemFlag = 1 << iota
	// ItemRepeatIgnore rejects key auto-repeat events.
	ItemRepeatIgnore
)

// Item binds one input pattern to an operator or, in a modal key-map, to
// a modal value.
type Item struct {
	// ID is unique within the owning key-map, assigned by Keymap.Add.
	ID int

	Type  event.Type
	Value event.Value

	Shift ModState
	Ctrl  ModState
	Alt   ModState
	OSKey ModState

	// KeyModifier is a second key that must be held, TypeNone for none.
	KeyModifier event.Type

	// Direction restricts ClickDrag items. DirectionAny and DirectionNone
	// accept every direction.
	Direction event.Direction

	Flag ItemFlag

	// Operator and Props are the binding of a regular item.
	Operator string
	Props    operator.Properties

	// PropValue is the value a modal item translates to.
	PropValue int
}

// NewItem returns an item for typ/value with every modifier released and
// no direction constraint.
func NewItem(typ event.Type, val event.Value, op string, props operator.Properties) *Item {
	return &Item{
		Type:      typ,
		Value:     val,
		Direction: event.DirectionAny,
		Operator:  op,
		Props:     props,
	}
}

// NewModalItem returns a modal item translating typ/value into propValue.
func NewModalItem(typ event.Type, val event.Value, propValue int) *Item {
	it := NewItem(typ, val, "", nil)
	it.PropValue = propValue
	return it
}

// SetModifiers requires exactly the modifiers in m.
func (it *Item) SetModifiers(m event.Modifier) *Item {
	it.Shift = stateOf(m.Has(event.ModShift))
	it.Ctrl = stateOf(m.Has(event.ModCtrl))
	it.Alt = stateOf(m.Has(event.ModAlt))
	it.OSKey = stateOf(m.Has(event.ModOSKey))
	return it
}

// AnyModifier accepts every modifier combination.
func (it *Item) AnyModifier() *Item {
	it.Shift, it.Ctrl, it.Alt, it.OSKey = ModAny, ModAny, ModAny, ModAny
	return it
}

// IsAnyModifier reports whether every modifier is ModAny.
func (it *Item) IsAnyModifier() bool {
	return it.Shift == ModAny && it.Ctrl == ModAny && it.Alt == ModAny && it.OSKey == ModAny
}

// Active reports whether the item takes part in matching.
func (it *Item) Active() bool {
	return it.Flag&ItemInactive == 0
}

// Clone returns a deep copy of the item.
func (it *Item) Clone() *Item {
	c := *it
	c.Props = it.Props.Clone()
	return &c
}

func stateOf(on bool) ModState {
	if on {
		return ModOn
	}
	return ModOff
}
