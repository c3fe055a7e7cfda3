// Package undo keeps the linear undo history pushed by finished operators.
package undo

import (
	"errors"
	"sync"
	"time"
)

// Common errors for undo operations.
var (
	ErrNothingToUndo = errors.New("undo: nothing to undo")
	ErrNothingToRedo = errors.New("undo: nothing to redo")
)

// DefaultSteps is the number of steps kept when no limit is given.
const DefaultSteps = 32

// Store captures and restores the application state undo steps hold.
type Store interface {
	Snapshot() any
	Restore(state any) error
}

// Step is one entry of the history.
type Step struct {
	Name  string
	Time  time.Time
	State any
}

// Stack is a linear undo history. The step at the active index describes
// the current state; undo moves the index back and restores that step.
type Stack struct {
	mu sync.Mutex

	store  Store
	steps  []*Step
	active int

	maxSteps int
}

// NewStack creates a stack keeping maxSteps undoable steps. The first step
// is an "Original" snapshot of store, which may be nil.
func NewStack(store Store, maxSteps int) *Stack {
	if maxSteps <= 0 {
		maxSteps = DefaultSteps
	}
	s := &Stack{store: store, maxSteps: maxSteps}
	s.steps = []*Step{s.newStep("Original")}
	return s
}

func (s *Stack) newStep(name string) *Step {
	st := &Step{Name: name, Time: time.Now()}
	if s.store != nil {
		st.State = s.store.Snapshot()
	}
	return st
}

// Push records the current state as a new step. Redo steps are dropped.
func (s *Stack) Push(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushLocked(name)
}

func (s *Stack) pushLocked(name string) {
	s.steps = append(s.steps[:s.active+1], s.newStep(name))
	s.active = len(s.steps) - 1

	// The oldest step only serves as the undo target of the next one.
	if excess := len(s.steps) - 1 - s.maxSteps; excess > 0 {
		s.steps = s.steps[excess:]
		s.active -= excess
	}
}

// PushGrouped records the current state, folding it into the active step
// when that step has the same name.
func (s *Stack) PushGrouped(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active > 0 && s.active == len(s.steps)-1 && s.steps[s.active].Name == name {
		fresh := s.newStep(name)
		s.steps[s.active].State = fresh.State
		s.steps[s.active].Time = fresh.Time
		return
	}
	s.pushLocked(name)
}

// Undo restores the state before the active step and returns the name of
// the undone step.
func (s *Stack) Undo() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == 0 {
		return "", ErrNothingToUndo
	}
	undone := s.steps[s.active]
	if err := s.restoreLocked(s.active - 1); err != nil {
		return "", err
	}
	return undone.Name, nil
}

// Redo reapplies the next step and returns its name.
func (s *Stack) Redo() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active >= len(s.steps)-1 {
		return "", ErrNothingToRedo
	}
	if err := s.restoreLocked(s.active + 1); err != nil {
		return "", err
	}
	return s.steps[s.active].Name, nil
}

// restoreLocked makes step i active. The index is left unchanged when the
// store fails.
func (s *Stack) restoreLocked(i int) error {
	if s.store != nil {
		if err := s.store.Restore(s.steps[i].State); err != nil {
			return err
		}
	}
	s.active = i
	return nil
}

// CanUndo returns true if undo is available.
func (s *Stack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active > 0
}

// CanRedo returns true if redo is available.
func (s *Stack) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active < len(s.steps)-1
}

// UndoCount returns the number of undo operations available.
func (s *Stack) UndoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// RedoCount returns the number of redo operations available.
func (s *Stack) RedoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps) - 1 - s.active
}

// Active returns the step describing the current state.
func (s *Stack) Active() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.steps[s.active]
}

// Names returns the step names, oldest first.
func (s *Stack) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.steps))
	for i, st := range s.steps {
		names[i] = st.Name
	}
	return names
}

// SetMaxSteps changes the limit. Excess old steps go on the next push.
func (s *Stack) SetMaxSteps(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxSteps = n
}

// Clear drops the history and takes a new original snapshot.
func (s *Stack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = []*Step{s.newStep("Original")}
	s.active = 0
}
