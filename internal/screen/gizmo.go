package screen

import (
	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/handler"
)

// Gizmo is a rectangular widget with its own key-map.
type Gizmo struct {
	Name    string
	Rect    Rect
	KeyMap  string
	Swallow bool
}

// Keymap returns the key-map applied while g is highlighted.
func (g *Gizmo) Keymap() string { return g.KeyMap }

// HandleAll reports whether g swallows unhandled events.
func (g *Gizmo) HandleAll() bool { return g.Swallow }

// GizmoMap is a region's gizmo collection. Later gizmos are on top.
type GizmoMap struct {
	gizmos    []*Gizmo
	highlight *Gizmo
	modal     *Gizmo
}

// NewGizmoMap creates a map holding gizmos.
func NewGizmoMap(gizmos ...*Gizmo) *GizmoMap {
	return &GizmoMap{gizmos: gizmos}
}

// Add appends a gizmo.
func (m *GizmoMap) Add(g *Gizmo) {
	m.gizmos = append(m.gizmos, g)
}

// Find returns the topmost gizmo under xy, given in region coordinates.
func (m *GizmoMap) Find(xy event.Point) handler.Gizmo {
	for i := len(m.gizmos) - 1; i >= 0; i-- {
		if m.gizmos[i].Rect.Contains(xy) {
			return m.gizmos[i]
		}
	}
	return nil
}

// SetHighlight changes the highlighted gizmo.
func (m *GizmoMap) SetHighlight(g handler.Gizmo) bool {
	var next *Gizmo
	if g != nil {
		next, _ = g.(*Gizmo)
	}
	if next == m.highlight {
		return false
	}
	m.highlight = next
	return true
}

// Highlighted returns the highlighted gizmo or nil.
func (m *GizmoMap) Highlighted() handler.Gizmo {
	if m.highlight == nil {
		return nil
	}
	return m.highlight
}

// SetModal marks g as running a modal operator, or clears it.
func (m *GizmoMap) SetModal(g *Gizmo) {
	m.modal = g
}

// Modal returns the gizmo running modal or nil.
func (m *GizmoMap) Modal() handler.Gizmo {
	if m.modal == nil {
		return nil
	}
	return m.modal
}
