package undo

import (
	"errors"
	"reflect"
	"testing"
)

// counterStore is a trivial Store over one integer.
type counterStore struct {
	value int
	fail  bool
}

func (c *counterStore) Snapshot() any { return c.value }

func (c *counterStore) Restore(state any) error {
	if c.fail {
		return errors.New("restore failed")
	}
	c.value = state.(int)
	return nil
}

func TestUndoRedo(t *testing.T) {
	store := &counterStore{}
	s := NewStack(store, 10)

	if _, err := s.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("Undo() on empty stack error = %v", err)
	}

	store.value = 1
	s.Push("Add")
	store.value = 2
	s.Push("Add")

	name, err := s.Undo()
	if err != nil || name != "Add" || store.value != 1 {
		t.Fatalf("Undo() = %q, %v, value %d", name, err, store.value)
	}
	s.Undo()
	if store.value != 0 || s.CanUndo() {
		t.Errorf("after two undos value = %d, CanUndo = %v", store.value, s.CanUndo())
	}

	if _, err := s.Redo(); err != nil || store.value != 1 {
		t.Errorf("Redo() error = %v, value %d", err, store.value)
	}
	if s.RedoCount() != 1 {
		t.Errorf("RedoCount() = %d, want 1", s.RedoCount())
	}

	store.value = 5
	s.Push("Set")
	if s.CanRedo() {
		t.Error("push did not clear redo")
	}
	if _, err := s.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() error = %v, want ErrNothingToRedo", err)
	}
}

func TestPushGrouped(t *testing.T) {
	store := &counterStore{}
	s := NewStack(store, 10)

	for i := 1; i <= 3; i++ {
		store.value = i
		s.PushGrouped("Nudge")
	}
	store.value = 10
	s.PushGrouped("Scale")

	if got, want := s.Names(), []string{"Original", "Nudge", "Scale"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	s.Undo()
	if store.value != 3 {
		t.Errorf("grouped step holds %d, want the latest value 3", store.value)
	}
}

func TestMaxSteps(t *testing.T) {
	s := NewStack(nil, 2)
	s.Push("a")
	s.Push("b")
	s.Push("c")

	if got := s.UndoCount(); got != 2 {
		t.Errorf("UndoCount() = %d, want 2", got)
	}
	if got, want := s.Names(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestRestoreFailureKeepsPosition(t *testing.T) {
	store := &counterStore{}
	s := NewStack(store, 10)
	store.value = 1
	s.Push("Add")

	store.fail = true
	if _, err := s.Undo(); err == nil {
		t.Fatal("Undo() succeeded with failing store")
	}
	if s.Active().Name != "Add" {
		t.Errorf("active step = %q, want Add", s.Active().Name)
	}
}
