package screen

import (
	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/handler"
	"github.com/dshills/wmcore/internal/notifier"
)

// ListenerParams is what a listener receives for one notifier.
type ListenerParams struct {
	Window notifier.Window
	Area   *Area
	// Region is nil for area listeners.
	Region *Region
	Note   *notifier.Note
}

// Listener reacts to notifiers, typically by tagging a redraw.
type Listener func(p ListenerParams)

// Region is a sub-rectangle of an area with its own handlers.
type Region struct {
	Type     string
	Rect     Rect
	Handlers *handler.List
	Gizmos   handler.GizmoMap
	Listener Listener

	area   *Area
	redraw bool
}

// RegionType returns the region kind, e.g. "WINDOW" or "HEADER".
func (r *Region) RegionType() string { return r.Type }

// Area returns the owning area.
func (r *Region) Area() *Area { return r.area }

// TagRedraw requests a redraw.
func (r *Region) TagRedraw() { r.redraw = true }

// NeedsRedraw reports whether a redraw was requested.
func (r *Region) NeedsRedraw() bool { return r.redraw }

// ClearRedraw resets the redraw request.
func (r *Region) ClearRedraw() { r.redraw = false }

// Local converts a window position into region coordinates.
func (r *Region) Local(p event.Point) event.Point {
	return p.Sub(r.Rect.Origin())
}

// Area is one editor of a screen.
type Area struct {
	Type     string
	Rect     Rect
	Regions  []*Region
	Handlers *handler.List
	Listener Listener
}

// AreaType returns the editor kind, e.g. "VIEW_3D".
func (a *Area) AreaType() string { return a.Type }

// AddRegion appends a region. Later regions are on top.
func (a *Area) AddRegion(typ string, rect Rect) *Region {
	r := &Region{
		Type:     typ,
		Rect:     rect,
		Handlers: handler.NewList(),
		area:     a,
	}
	a.Regions = append(a.Regions, r)
	return r
}

// RegionAt returns the topmost region containing p.
func (a *Area) RegionAt(p event.Point) *Region {
	for i := len(a.Regions) - 1; i >= 0; i-- {
		if a.Regions[i].Rect.Contains(p) {
			return a.Regions[i]
		}
	}
	return nil
}

// Region returns the first region of the given type.
func (a *Area) Region(typ string) *Region {
	for _, r := range a.Regions {
		if r.Type == typ {
			return r
		}
	}
	return nil
}

// TagRedraw requests a redraw of every region.
func (a *Area) TagRedraw() {
	for _, r := range a.Regions {
		r.TagRedraw()
	}
}

// Screen is a named layout of areas.
type Screen struct {
	Name  string
	Areas []*Area
}

// New creates an empty screen.
func New(name string) *Screen {
	return &Screen{Name: name}
}

// AddArea appends an area with a single main region covering it.
func (s *Screen) AddArea(typ string, rect Rect) *Area {
	a := &Area{
		Type:     typ,
		Rect:     rect,
		Handlers: handler.NewList(),
	}
	a.AddRegion("WINDOW", rect)
	s.Areas = append(s.Areas, a)
	return a
}

// RemoveArea takes a out of the screen. Handlers it owned are returned so
// the caller can cancel any operators they hold.
func (s *Screen) RemoveArea(a *Area) []handler.Handler {
	for i, cur := range s.Areas {
		if cur != a {
			continue
		}
		s.Areas = append(s.Areas[:i:i], s.Areas[i+1:]...)
		removed := a.Handlers.Clear()
		for _, r := range a.Regions {
			removed = append(removed, r.Handlers.Clear()...)
		}
		return removed
	}
	return nil
}

// Contains reports whether a belongs to s.
func (s *Screen) Contains(a *Area) bool {
	for _, cur := range s.Areas {
		if cur == a {
			return true
		}
	}
	return false
}

// AreaAt returns the area containing p.
func (s *Screen) AreaAt(p event.Point) *Area {
	for _, a := range s.Areas {
		if a.Rect.Contains(p) {
			return a
		}
	}
	return nil
}

// Listen delivers a notifier to every area and region listener.
func (s *Screen) Listen(win notifier.Window, n *notifier.Note) {
	for _, a := range s.Areas {
		if a.Listener != nil {
			a.Listener(ListenerParams{Window: win, Area: a, Note: n})
		}
		for _, r := range a.Regions {
			if r.Listener != nil {
				r.Listener(ListenerParams{Window: win, Area: a, Region: r, Note: n})
			}
		}
	}
}
