package screen

import (
	"testing"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/handler"
	"github.com/dshills/wmcore/internal/notifier"
)

func testScreen() *Screen {
	s := New("Layout")
	view := s.AddArea("VIEW_3D", NewRect(0, 0, 100, 80))
	view.AddRegion("HEADER", NewRect(0, 70, 100, 10))
	s.AddArea("PROPERTIES", NewRect(100, 0, 40, 80))
	return s
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 20)
	tests := []struct {
		p    event.Point
		want bool
	}{
		{event.Point{X: 10, Y: 10}, true},
		{event.Point{X: 29, Y: 29}, true},
		{event.Point{X: 30, Y: 15}, false},
		{event.Point{X: 15, Y: 30}, false},
		{event.Point{X: 9, Y: 15}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if r.Width() != 20 || r.Height() != 20 || r.Empty() {
		t.Errorf("size mismatch: %dx%d", r.Width(), r.Height())
	}
}

func TestAreaAndRegionLookup(t *testing.T) {
	s := testScreen()
	tests := []struct {
		name   string
		p      event.Point
		area   string
		region string
	}{
		{"main region", event.Point{X: 50, Y: 40}, "VIEW_3D", "WINDOW"},
		{"header on top", event.Point{X: 50, Y: 75}, "VIEW_3D", "HEADER"},
		{"border belongs to right area", event.Point{X: 100, Y: 40}, "PROPERTIES", "WINDOW"},
		{"outside", event.Point{X: 500, Y: 40}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := s.AreaAt(tt.p)
			if tt.area == "" {
				if a != nil {
					t.Fatalf("AreaAt = %s, want nil", a.Type)
				}
				return
			}
			if a == nil || a.AreaType() != tt.area {
				t.Fatalf("AreaAt = %v, want %s", a, tt.area)
			}
			r := a.RegionAt(tt.p)
			if r == nil || r.RegionType() != tt.region {
				t.Fatalf("RegionAt = %v, want %s", r, tt.region)
			}
			if r.Area() != a {
				t.Error("region does not point back to its area")
			}
		})
	}
}

func TestRemoveAreaReturnsHandlers(t *testing.T) {
	s := testScreen()
	a := s.Areas[0]
	a.Handlers.AddKeymap("Frames")
	a.Regions[0].Handlers.AddTail(&handler.Op{})

	removed := s.RemoveArea(a)
	if len(removed) != 2 {
		t.Fatalf("removed %d handlers, want 2", len(removed))
	}
	if s.Contains(a) || len(s.Areas) != 1 {
		t.Error("area still present")
	}
	if s.RemoveArea(a) != nil {
		t.Error("second RemoveArea returned handlers")
	}
}

func TestListen(t *testing.T) {
	s := testScreen()
	var areaCalls, regionCalls int
	s.Areas[0].Listener = func(p ListenerParams) {
		areaCalls++
		if p.Region != nil {
			t.Error("area listener got a region")
		}
	}
	s.Areas[0].Regions[1].Listener = func(p ListenerParams) {
		regionCalls++
		if p.Note.Category == notifier.NCScene {
			p.Region.TagRedraw()
		}
	}

	s.Listen(nil, &notifier.Note{Category: notifier.NCScene})
	if areaCalls != 1 || regionCalls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", areaCalls, regionCalls)
	}
	header := s.Areas[0].Region("HEADER")
	if !header.NeedsRedraw() {
		t.Error("header not tagged")
	}
	header.ClearRedraw()
	if header.NeedsRedraw() {
		t.Error("redraw not cleared")
	}
}

func TestGizmoMap(t *testing.T) {
	low := &Gizmo{Name: "low", Rect: NewRect(0, 0, 50, 50), KeyMap: "Generic Gizmo"}
	high := &Gizmo{Name: "high", Rect: NewRect(10, 10, 10, 10), KeyMap: "Generic Gizmo Drag", Swallow: true}
	m := NewGizmoMap(low, high)

	if g := m.Find(event.Point{X: 15, Y: 15}); g != high {
		t.Errorf("Find = %v, want high", g)
	}
	if g := m.Find(event.Point{X: 40, Y: 40}); g != low {
		t.Errorf("Find = %v, want low", g)
	}
	if m.Find(event.Point{X: 90, Y: 90}) != nil {
		t.Error("Find outside returned a gizmo")
	}

	if m.Highlighted() != nil {
		t.Error("initial highlight not nil")
	}
	if !m.SetHighlight(high) || m.SetHighlight(high) {
		t.Error("SetHighlight change reporting wrong")
	}
	if !m.Highlighted().HandleAll() {
		t.Error("highlighted gizmo lost HandleAll")
	}
	if !m.SetHighlight(nil) || m.Highlighted() != nil {
		t.Error("clearing highlight failed")
	}
	m.SetModal(low)
	if m.Modal() != low {
		t.Error("Modal mismatch")
	}
}
