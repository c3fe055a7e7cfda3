package notifier

import (
	"testing"

	"github.com/google/uuid"
)

type testWindow struct{ id uuid.UUID }

func (w *testWindow) ID() uuid.UUID { return w.id }

func TestTypeFields(t *testing.T) {
	typ := NCScreen | NDWorkspaceSet | NAEdited
	if typ.Category() != NCScreen {
		t.Errorf("Category() = %v, want SCREEN", typ.Category())
	}
	if typ.Data() != NDWorkspaceSet {
		t.Errorf("Data() = %#x, want %#x", uint32(typ.Data()), uint32(NDWorkspaceSet))
	}
	if typ.Action() != NAEdited {
		t.Errorf("Action() = %#x, want %#x", uint32(typ.Action()), uint32(NAEdited))
	}
	if got, want := typ.String(), "SCREEN|0x08|0x00|0x01"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestQueueCoalesces(t *testing.T) {
	obj := &struct{ name string }{"cube"}
	other := &struct{ name string }{"sphere"}

	tests := []struct {
		name string
		typ  Type
		ref  any
	}{
		{"no reference", NCWM | NDHistory, nil},
		{"pointer reference", NCObject | NAEdited, obj},
		{"string reference", NCSpace | NDSpaceInfoReport, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueue()
			if !q.Add(nil, tt.typ, tt.ref) {
				t.Fatal("first Add() = false")
			}
			if q.Add(nil, tt.typ, tt.ref) {
				t.Error("duplicate Add() = true")
			}
			if q.Len() != 1 {
				t.Errorf("Len() = %d, want 1", q.Len())
			}
		})
	}

	q := NewQueue()
	q.Add(nil, NCObject|NAEdited, obj)
	q.Add(nil, NCObject|NAEdited, other)
	q.Add(nil, NCObject|NAAdded, obj)
	if q.Len() != 3 {
		t.Errorf("distinct notes coalesced: Len() = %d, want 3", q.Len())
	}
}

func TestQueueNonComparableReference(t *testing.T) {
	q := NewQueue()
	q.Add(nil, NCWM, []int{1})
	q.Add(nil, NCWM, []int{1})
	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}
}

func TestRemoveReferenceKeepsEntries(t *testing.T) {
	obj := &struct{}{}
	q := NewQueue()
	q.Add(nil, NCObject|NAEdited, obj)
	q.Add(nil, NCWM|NDHistory, nil)
	q.Add(nil, NCObject|NARemoved, obj)

	held := q.Notes()
	if n := q.RemoveReference(obj); n != 2 {
		t.Errorf("RemoveReference() = %d, want 2", n)
	}
	if q.Len() != 3 {
		t.Errorf("Len() = %d after scrub, want 3", q.Len())
	}
	if !held[0].Cleared() || held[1].Cleared() || !held[2].Cleared() {
		t.Errorf("unexpected cleared state: %v %v %v", held[0].Cleared(), held[1].Cleared(), held[2].Cleared())
	}

	var popped int
	for {
		if _, ok := q.Pop(); !ok {
			break
		}
		popped++
	}
	if popped != 3 || q.Len() != 0 {
		t.Errorf("popped %d, Len() = %d", popped, q.Len())
	}
}

func TestPopScrubsWaitingNotes(t *testing.T) {
	a := &struct{ name string }{"a"}
	b := &struct{ name string }{"b"}
	q := NewQueue()
	q.Add(nil, NCObject|NAEdited, a)
	q.Add(nil, NCObject|NAEdited, b)

	first, ok := q.Pop()
	if !ok || first.Reference != a {
		t.Fatalf("Pop() = %v, %v, want the note for a", first, ok)
	}
	if n := q.RemoveReference(b); n != 1 {
		t.Errorf("RemoveReference() = %d, want 1", n)
	}
	second, ok := q.Pop()
	if !ok || !second.Cleared() {
		t.Errorf("waiting note for b not scrubbed: %+v", second)
	}
	if _, ok := q.Pop(); ok {
		t.Error("Pop() on empty queue = true")
	}
}

func TestNoteInWindow(t *testing.T) {
	a := &testWindow{id: uuid.New()}
	b := &testWindow{id: uuid.New()}
	n := &Note{Window: a}
	if !n.InWindow(a) || n.InWindow(b) || n.InWindow(nil) {
		t.Error("InWindow mismatch")
	}
	global := &Note{}
	if !global.InWindow(nil) {
		t.Error("window-less note should match nil window")
	}
}
