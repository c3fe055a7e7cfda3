package operator

import "strings"

// Result is the bitflag set an operator callback returns.
type Result uint8

const (
	// RunningModal keeps the instance alive as a modal handler.
	RunningModal Result = 1 << iota
	// Cancelled tears the instance down without an undo push.
	Cancelled
	// Finished tears the instance down, pushing undo and registering it.
	Finished
	// PassThrough lets the event continue to later handlers.
	PassThrough
	// Handled means the event was dealt with by a nested call that already
	// ran the completion bookkeeping.
	Handled
	// Interface means the operator opened a popup and is waiting on it.
	Interface
)

// Has reports whether every flag in f is set.
func (r Result) Has(f Result) bool {
	return r&f == f
}

// Any reports whether at least one flag in f is set.
func (r Result) Any(f Result) bool {
	return r&f != 0
}

// Done reports whether the instance ended (finished or cancelled).
func (r Result) Done() bool {
	return r.Any(Finished | Cancelled)
}

// String renders the set flags, e.g. "FINISHED|PASS_THROUGH".
func (r Result) String() string {
	if r == 0 {
		return "NONE"
	}
	var parts []string
	names := []struct {
		flag Result
		name string
	}{
		{RunningModal, "RUNNING_MODAL"},
		{Cancelled, "CANCELLED"},
		{Finished, "FINISHED"},
		{PassThrough, "PASS_THROUGH"},
		{Handled, "HANDLED"},
		{Interface, "INTERFACE"},
	}
	for _, n := range names {
		if r&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
