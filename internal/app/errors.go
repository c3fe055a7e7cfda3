package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates Run was called twice.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrShutDown indicates Run was called after Shutdown.
	ErrShutDown = errors.New("application shut down")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// ScriptError collects the scripts that failed to load. Loading goes on
// past a bad script.
type ScriptError struct {
	Errs []error
}

func (e *ScriptError) Error() string {
	if len(e.Errs) == 1 {
		return e.Errs[0].Error()
	}
	return fmt.Sprintf("%d scripts failed to load; first: %v", len(e.Errs), e.Errs[0])
}

func (e *ScriptError) Unwrap() []error {
	return e.Errs
}
