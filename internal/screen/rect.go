package screen

import "github.com/dshills/wmcore/internal/event"

// Rect is an axis-aligned rectangle.
type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// NewRect builds a rectangle from its origin and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p event.Point) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// Width returns the horizontal size.
func (r Rect) Width() int { return r.MaxX - r.MinX }

// Height returns the vertical size.
func (r Rect) Height() int { return r.MaxY - r.MinY }

// Origin returns the minimum corner.
func (r Rect) Origin() event.Point {
	return event.Point{X: r.MinX, Y: r.MinY}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}
