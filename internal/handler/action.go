package handler

import "strings"

// Action is the outcome of dispatching an event to handlers.
type Action uint8

// Continue lets the event reach further handlers.
const Continue Action = 0

const (
	// Break stops the event at this list.
	Break Action = 1 << iota
	// Handled means an operator dealt with the event without finishing.
	Handled
	// Modal marks a break caused by a modal operator passing the event on.
	Modal
)

// NotHandled reports whether the event still counts as unconsumed: plain
// Continue, or a modal pass-through.
func (a Action) NotHandled() bool {
	return a == Continue || a == Break|Modal
}

// Stops reports whether a handler list stops iterating.
func (a Action) Stops() bool {
	return a&Break != 0
}

// String renders the set flags.
func (a Action) String() string {
	if a == Continue {
		return "CONTINUE"
	}
	var parts []string
	if a&Break != 0 {
		parts = append(parts, "BREAK")
	}
	if a&Handled != 0 {
		parts = append(parts, "HANDLED")
	}
	if a&Modal != 0 {
		parts = append(parts, "MODAL")
	}
	return strings.Join(parts, "|")
}
