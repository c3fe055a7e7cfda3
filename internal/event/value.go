package event

import (
	"fmt"
	"strings"
)

// Value is the transition an event represents.
type Value int8

const (
	// ValueAny matches every value in key-map items.
	ValueAny Value = -1
	// ValueNothing is used by motion, timer and other stateless events.
	ValueNothing Value = 0
	Press        Value = 1
	Release      Value = 2
	Click        Value = 3
	DoubleClick  Value = 4
	ClickDrag    Value = 5
)

var valueNames = map[Value]string{
	ValueAny:     "ANY",
	ValueNothing: "NOTHING",
	Press:        "PRESS",
	Release:      "RELEASE",
	Click:        "CLICK",
	DoubleClick:  "DOUBLE_CLICK",
	ClickDrag:    "CLICK_DRAG",
}

// String returns the key-map identifier of v.
func (v Value) String() string {
	if name, ok := valueNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Value(%d)", int8(v))
}

// ParseValue resolves a value identifier.
func ParseValue(s string) (Value, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for v, name := range valueNames {
		if name == s {
			return v, true
		}
	}
	return ValueNothing, false
}

// Direction is the compass direction of a click-drag.
type Direction int8

const (
	DirectionAny  Direction = -1
	DirectionNone Direction = 0
	North         Direction = 1
	NorthEast     Direction = 2
	East          Direction = 3
	SouthEast     Direction = 4
	South         Direction = 5
	SouthWest     Direction = 6
	West          Direction = 7
	NorthWest     Direction = 8
)

var directionNames = map[Direction]string{
	DirectionAny:  "ANY",
	DirectionNone: "NONE",
	North:         "NORTH",
	NorthEast:     "NORTH_EAST",
	East:          "EAST",
	SouthEast:     "SOUTH_EAST",
	South:         "SOUTH",
	SouthWest:     "SOUTH_WEST",
	West:          "WEST",
	NorthWest:     "NORTH_WEST",
}

// String returns the key-map identifier of d.
func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int8(d))
}

// ParseDirection resolves a direction identifier.
func ParseDirection(s string) (Direction, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for d, name := range directionNames {
		if name == s {
			return d, true
		}
	}
	return DirectionNone, false
}
