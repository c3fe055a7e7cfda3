package handler

import (
	"testing"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/operator"
)

func TestActionNotHandled(t *testing.T) {
	tests := []struct {
		a    Action
		want bool
		str  string
	}{
		{Continue, true, "CONTINUE"},
		{Break, false, "BREAK"},
		{Break | Handled, false, "BREAK|HANDLED"},
		{Break | Modal, true, "BREAK|MODAL"},
		{Handled, false, "HANDLED"},
	}
	for _, tt := range tests {
		if got := tt.a.NotHandled(); got != tt.want {
			t.Errorf("%s.NotHandled() = %v, want %v", tt.str, got, tt.want)
		}
		if got := tt.a.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
	}
	if !(Break | Modal).Stops() || Handled.Stops() {
		t.Error("Stops mismatch")
	}
}

func TestActionBits(t *testing.T) {
	tests := []struct {
		a    Action
		want uint8
	}{
		{Continue, 0},
		{Break, 1},
		{Handled, 2},
		{Modal, 4},
	}
	for _, tt := range tests {
		if uint8(tt.a) != tt.want {
			t.Errorf("%s = %d, want %d", tt.a, uint8(tt.a), tt.want)
		}
	}
}

func TestListOrder(t *testing.T) {
	l := NewList()
	a, b, c := &Keymap{Keymap: "a"}, &Op{}, &UI{}
	l.AddTail(a)
	l.AddHead(b)
	l.AddTail(c)

	got := l.Snapshot()
	want := []Handler{b, a, c}
	if len(got) != len(want) {
		t.Fatalf("Len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %T, want %T", i, got[i], want[i])
		}
	}
}

func TestListRemoveDuringIteration(t *testing.T) {
	l := NewList()
	a, b, c := &UI{}, &UI{}, &UI{}
	l.AddTail(a)
	l.AddTail(b)
	l.AddTail(c)

	var visited []Handler
	for _, h := range l.Snapshot() {
		if !l.Contains(h) {
			continue
		}
		visited = append(visited, h)
		if h == a {
			l.Remove(b)
		}
	}
	if len(visited) != 2 || visited[0] != a || visited[1] != c {
		t.Errorf("visited %d handlers, want a then c", len(visited))
	}
	if l.Len() != 2 {
		t.Errorf("Len = %d, want 2", l.Len())
	}
}

func TestListClearedDuringIteration(t *testing.T) {
	l := NewList()
	a, b := &UI{}, &UI{}
	l.AddTail(a)
	l.AddTail(b)

	n := 0
	for _, h := range l.Snapshot() {
		if !l.Contains(h) {
			continue
		}
		n++
		l.Clear()
	}
	if n != 1 {
		t.Errorf("visited %d, want 1", n)
	}
}

func TestAddKeymapDeduplicates(t *testing.T) {
	l := NewList()
	h1 := l.AddKeymap("Window")
	h2 := l.AddKeymap("Window")
	if h1 != h2 || l.Len() != 1 {
		t.Fatalf("AddKeymap created a duplicate handler")
	}
	l.AddKeymap("Screen")
	if !l.RemoveKeymap("Window") || l.Len() != 1 {
		t.Errorf("RemoveKeymap failed, Len = %d", l.Len())
	}
	if l.RemoveKeymap("Window") {
		t.Error("second RemoveKeymap reported success")
	}
}

func TestRemoveIf(t *testing.T) {
	l := NewList()
	popup := &UI{Popup: true}
	plain := &UI{}
	op := &Op{}
	l.AddTail(popup)
	l.AddTail(op)
	l.AddTail(plain)

	removed := l.RemoveIf(func(h Handler) bool {
		ui, ok := h.(*UI)
		return ok && ui.Popup
	})
	if len(removed) != 1 || removed[0] != popup {
		t.Fatalf("removed %v", removed)
	}
	if l.Contains(popup) || !l.Contains(op) || !l.Contains(plain) {
		t.Error("wrong handlers kept")
	}
	if l.Find(func(h Handler) bool { _, ok := h.(*Op); return ok }) != op {
		t.Error("Find did not return the op handler")
	}
}

func TestMarkFree(t *testing.T) {
	h := &Op{}
	MarkFree(h)
	if HeadOf(h).Flag&FlagDoFree == 0 {
		t.Error("FlagDoFree not set")
	}
}

func TestKeymapResolve(t *testing.T) {
	static := &Keymap{Keymap: "Window"}
	if got := static.Keymaps(nil); len(got) != 1 || got[0].Name != "Window" || got[0].Fallback {
		t.Errorf("static Keymaps = %v", got)
	}
	dyn := &Keymap{Dynamic: func(ctx operator.Context) []Resolved {
		return []Resolved{{Name: "Tool"}, {Name: "Tool Fallback", Fallback: true}}
	}}
	if got := dyn.Keymaps(nil); len(got) != 2 || !got[1].Fallback {
		t.Errorf("dynamic Keymaps = %v", got)
	}
	if got := (&Keymap{}).Keymaps(nil); got != nil {
		t.Errorf("empty Keymaps = %v", got)
	}
}

func TestPollSignature(t *testing.T) {
	h := &Keymap{Head: Head{Poll: func(area operator.Area, region operator.Region, ev *event.Event) bool {
		return ev.Type == event.LeftMouse
	}}}
	ev := &event.Event{Type: event.LeftMouse}
	if !HeadOf(h).Poll(nil, nil, ev) {
		t.Error("poll rejected LEFTMOUSE")
	}
}
