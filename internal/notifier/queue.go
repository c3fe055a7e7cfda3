package notifier

import (
	"reflect"

	"github.com/google/uuid"
)

// Window is the owning window of a note.
type Window interface {
	ID() uuid.UUID
}

// Note is one queued notifier.
type Note struct {
	Window    Window
	Category  Type
	Data      Type
	Subtype   Type
	Action    Type
	Reference any
}

// Type reassembles the packed bitfield.
func (n *Note) Type() Type {
	return n.Category | n.Data | n.Subtype | n.Action
}

// Cleared reports whether the note was scrubbed by RemoveReference.
func (n *Note) Cleared() bool {
	return n.Type() == 0 && n.Reference == nil && n.Window == nil
}

// InWindow reports whether the note is addressed to win.
func (n *Note) InWindow(win Window) bool {
	if n.Window == nil || win == nil {
		return n.Window == nil && win == nil
	}
	return n.Window.ID() == win.ID()
}

func (n *Note) clear() {
	*n = Note{}
}

// Listener receives drained notes.
type Listener func(n *Note)

// Queue is the coalescing notifier queue. It is owned by the main loop and
// is not safe for concurrent use.
type Queue struct {
	notes []*Note
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Add queues a note unless one with the same type and reference is already
// queued. It reports whether a new note was added.
func (q *Queue) Add(win Window, typ Type, ref any) bool {
	for _, n := range q.notes {
		if n.Type() == typ && sameReference(n.Reference, ref) {
			return false
		}
	}
	q.notes = append(q.notes, &Note{
		Window:    win,
		Category:  typ.Category(),
		Data:      typ.Data(),
		Subtype:   typ.Subtype(),
		Action:    typ.Action(),
		Reference: ref,
	})
	return true
}

// RemoveReference scrubs every queued note pointing at ref. The notes stay in
// the queue, so a drain in progress keeps valid entries; consumers skip
// cleared notes. It returns the number of notes scrubbed.
func (q *Queue) RemoveReference(ref any) int {
	if ref == nil {
		return 0
	}
	n := 0
	for _, note := range q.notes {
		if sameReference(note.Reference, ref) {
			note.clear()
			n++
		}
	}
	return n
}

// Notes returns the queued notes without removing them.
func (q *Queue) Notes() []*Note {
	out := make([]*Note, len(q.notes))
	copy(out, q.notes)
	return out
}

// Pop removes and returns the oldest note. Notes still queued remain
// visible to RemoveReference while the popped one is delivered.
func (q *Queue) Pop() (*Note, bool) {
	if len(q.notes) == 0 {
		return nil, false
	}
	n := q.notes[0]
	q.notes[0] = nil
	q.notes = q.notes[1:]
	if len(q.notes) == 0 {
		q.notes = nil
	}
	return n, true
}

// Len returns the number of queued notes, cleared ones included.
func (q *Queue) Len() int {
	return len(q.notes)
}

// sameReference compares references by identity, treating values of
// non-comparable dynamic types as distinct.
func sameReference(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
