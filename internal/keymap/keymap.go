package keymap

import (
	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/operator"
)

// PollFunc gates a whole key-map on the current context.
type PollFunc func(ctx operator.Context) bool

// PollModalItemFunc decides whether a modal value is currently usable by
// the running operator.
type PollModalItemFunc func(op *operator.Operator, value int) bool

// ModalValue names one value of a modal key-map.
type ModalValue struct {
	Value int
	ID    string
	Name  string
}

// Keymap is a named, ordered list of items.
type Keymap struct {
	Name string

	// SpaceType and RegionType scope the key-map to an editor. Empty means
	// any.
	SpaceType  string
	RegionType string

	// Modal key-maps translate events for modal operators.
	Modal bool
	// ModalValues lists the values of a modal key-map by identifier.
	ModalValues []ModalValue

	Poll          PollFunc
	PollModalItem PollModalItemFunc

	Items []*Item

	// UserModified marks a key-map edited by the user.
	UserModified bool

	nextID int
}

// New creates an empty key-map.
func New(name, spaceType, regionType string) *Keymap {
	return &Keymap{Name: name, SpaceType: spaceType, RegionType: regionType}
}

// NewModal creates an empty modal key-map with the given values.
func NewModal(name string, values ...ModalValue) *Keymap {
	return &Keymap{Name: name, Modal: true, ModalValues: values}
}

// Add appends it and assigns its ID.
func (km *Keymap) Add(it *Item) *Item {
	km.nextID++
	it.ID = km.nextID
	km.Items = append(km.Items, it)
	return it
}

// AddSpec parses spec and binds it to opID.
func (km *Keymap) AddSpec(spec, opID string, props operator.Properties) (*Item, error) {
	it, err := ParseItem(spec)
	if err != nil {
		return nil, err
	}
	it.Operator = opID
	it.Props = props
	return km.Add(it), nil
}

// AddModalSpec parses spec and binds it to the modal value with the given
// identifier.
func (km *Keymap) AddModalSpec(spec, valueID string) (*Item, error) {
	v, ok := km.ModalValueByID(valueID)
	if !ok {
		return nil, &ParseError{Source: spec, Token: valueID, Message: "unknown modal value", Err: ErrInvalidItem}
	}
	it, err := ParseItem(spec)
	if err != nil {
		return nil, err
	}
	it.PropValue = v.Value
	return km.Add(it), nil
}

// Remove deletes the item with the given ID.
func (km *Keymap) Remove(id int) bool {
	for i, it := range km.Items {
		if it.ID == id {
			km.Items = append(km.Items[:i], km.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Item returns the item with the given ID.
func (km *Keymap) Item(id int) *Item {
	for _, it := range km.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// ModalValueByID looks up a modal value by identifier.
func (km *Keymap) ModalValueByID(id string) (ModalValue, bool) {
	for _, v := range km.ModalValues {
		if v.ID == id {
			return v, true
		}
	}
	return ModalValue{}, false
}

// ModalValueID returns the identifier of a modal value.
func (km *Keymap) ModalValueID(value int) (string, bool) {
	for _, v := range km.ModalValues {
		if v.Value == value {
			return v.ID, true
		}
	}
	return "", false
}

// PollContext reports whether the key-map applies in ctx.
func (km *Keymap) PollContext(ctx operator.Context) bool {
	return km.Poll == nil || km.Poll(ctx)
}

// Lookup returns the first item matching ev.
func (km *Keymap) Lookup(ev *event.Event, prefs MatchPrefs) *Item {
	for _, it := range km.Items {
		if Match(it, ev, prefs) {
			return it
		}
	}
	return nil
}

// FindOperator returns the first active item bound to opID, used for
// shortcut hints.
func (km *Keymap) FindOperator(opID string) *Item {
	for _, it := range km.Items {
		if it.Active() && it.Operator == opID {
			return it
		}
	}
	return nil
}

// Clone returns a deep copy. Callbacks are shared.
func (km *Keymap) Clone() *Keymap {
	c := *km
	c.ModalValues = append([]ModalValue(nil), km.ModalValues...)
	c.Items = make([]*Item, len(km.Items))
	for i, it := range km.Items {
		c.Items[i] = it.Clone()
	}
	return &c
}
