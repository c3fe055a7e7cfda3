package wm

import "errors"

// Window manager errors.
var (
	// ErrWindowClosed indicates the window was closed.
	ErrWindowClosed = errors.New("wm: window closed")

	// ErrInterfaceLocked indicates a job holds the interface lock and the
	// operator does not bypass it.
	ErrInterfaceLocked = errors.New("wm: interface locked")

	// ErrNothingToRepeat indicates the redo register is empty.
	ErrNothingToRepeat = errors.New("wm: nothing to repeat")

	// ErrNotPolled indicates an operator's poll failed in the current
	// context.
	ErrNotPolled = errors.New("wm: operator poll failed")
)
