package handler

// List is an ordered handler list. It is only touched from the event
// loop goroutine.
type List struct {
	items []Handler
}

// NewList creates an empty list.
func NewList() *List {
	return &List{}
}

// AddHead inserts h at the front.
func (l *List) AddHead(h Handler) {
	l.items = append([]Handler{h}, l.items...)
}

// AddTail appends h.
func (l *List) AddTail(h Handler) {
	l.items = append(l.items, h)
}

// AddKeymap appends a handler for the named key-map unless one exists,
// and returns the handler.
func (l *List) AddKeymap(name string) *Keymap {
	for _, h := range l.items {
		if kh, ok := h.(*Keymap); ok && kh.Dynamic == nil && kh.Keymap == name {
			return kh
		}
	}
	kh := &Keymap{Keymap: name}
	l.AddTail(kh)
	return kh
}

// RemoveKeymap removes the handler of the named key-map.
func (l *List) RemoveKeymap(name string) bool {
	for _, h := range l.items {
		if kh, ok := h.(*Keymap); ok && kh.Keymap == name {
			return l.Remove(h)
		}
	}
	return false
}

// Remove deletes h. It reports whether h was in the list.
func (l *List) Remove(h Handler) bool {
	for i, cur := range l.items {
		if cur == h {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveIf deletes every handler for which pred is true and returns them
// in list order.
func (l *List) RemoveIf(pred func(Handler) bool) []Handler {
	var removed []Handler
	kept := l.items[:0:0]
	for _, h := range l.items {
		if pred(h) {
			removed = append(removed, h)
		} else {
			kept = append(kept, h)
		}
	}
	l.items = kept
	return removed
}

// Contains reports whether h is in the list.
func (l *List) Contains(h Handler) bool {
	for _, cur := range l.items {
		if cur == h {
			return true
		}
	}
	return false
}

// Find returns the first handler for which pred is true.
func (l *List) Find(pred func(Handler) bool) Handler {
	for _, h := range l.items {
		if pred(h) {
			return h
		}
	}
	return nil
}

// Snapshot returns a copy of the list for iteration. Callers re-check
// Contains before using an entry, since handlers may remove each other.
func (l *List) Snapshot() []Handler {
	out := make([]Handler, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of handlers.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Clear empties the list and returns what it held.
func (l *List) Clear() []Handler {
	old := l.items
	l.items = nil
	return old
}
