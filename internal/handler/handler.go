package handler

import (
	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/keymap"
	"github.com/dshills/wmcore/internal/operator"
)

// Flag holds handler options.
type Flag uint8

const (
	// FlagBlocking stops lower handlers whenever this one is reached.
	FlagBlocking Flag = 1 << iota
	// FlagDoFree marks a handler for removal once its current call returns.
	FlagDoFree
	// FlagAcceptDoubleClick lets UI handlers see double clicks of keys.
	FlagAcceptDoubleClick
)

// PollFunc gates a handler on the region it is dispatched in.
type PollFunc func(area operator.Area, region operator.Region, ev *event.Event) bool

// Head is shared by all handler variants.
type Head struct {
	Flag Flag
	Poll PollFunc
}

func (h *Head) head() *Head { return h }

// Handler is one of *Keymap, *Op, *UI, *Dropbox or *GizmoHandler.
type Handler interface {
	head() *Head
}

// HeadOf returns the shared fields of h.
func HeadOf(h Handler) *Head {
	return h.head()
}

// MarkFree flags h for removal after its current call.
func MarkFree(h Handler) {
	h.head().Flag |= FlagDoFree
}

// Resolved is a key-map picked at dispatch time.
type Resolved struct {
	Name string
	// Fallback key-maps are skipped while a gizmo is highlighted in the
	// region, so gizmos get first claim on presses.
	Fallback bool
}

// DynamicFunc resolves key-maps when an event arrives, e.g. from the
// active tool.
type DynamicFunc func(ctx operator.Context) []Resolved

// PostFunc runs after a key-map item broke the event.
type PostFunc func(ctx operator.Context, item *keymap.Item)

// Keymap dispatches events through key-maps to operators.
type Keymap struct {
	Head
	// Keymap names a static key-map, looked up in the active configuration
	// so user edits apply.
	Keymap  string
	Dynamic DynamicFunc
	Post    PostFunc
}

// Keymaps returns the key-maps to try, in order.
func (h *Keymap) Keymaps(ctx operator.Context) []Resolved {
	if h.Dynamic != nil {
		return h.Dynamic(ctx)
	}
	if h.Keymap == "" {
		return nil
	}
	return []Resolved{{Name: h.Keymap}}
}

// Op holds a running modal operator together with the area and region it
// was started in.
type Op struct {
	Head
	Op     *operator.Operator
	Area   operator.Area
	Region operator.Region
	// FileSelect marks the handler parked by a file-select request.
	FileSelect bool
	// GrabCursor is set while a blocking operator owns the cursor.
	GrabCursor bool
}

// UIFunc handles an event for an interface element.
type UIFunc func(ctx operator.Context, ev *event.Event) Action

// UIRemoveFunc tears the interface element down.
type UIRemoveFunc func(ctx operator.Context)

// UI forwards events to interface code such as buttons and popups.
type UI struct {
	Head
	Handle UIFunc
	Remove UIRemoveFunc
	Area   operator.Area
	Region operator.Region
	// Popup handlers are closed when the window's screen changes.
	Popup bool
}

// DropBox accepts one kind of drag.
type DropBox struct {
	Name string
	Poll func(ctx operator.Context, drag *event.Drag, ev *event.Event) bool
	// Operator runs with Props when the drop is accepted. Copy may fill
	// properties from the drag first.
	Operator string
	Props    operator.Properties
	Copy     func(drag *event.Drag, props operator.Properties)
	// Cancel runs when the operator does not finish.
	Cancel func(ctx operator.Context, drag *event.Drag)
}

// Dropbox handles drop events.
type Dropbox struct {
	Head
	Boxes []*DropBox
}

// Gizmo is an interactive on-screen widget.
type Gizmo interface {
	// Keymap names the key-map applied while the gizmo is highlighted.
	Keymap() string
	// HandleAll makes the gizmo swallow events nothing else handled.
	HandleAll() bool
}

// GizmoMap holds the gizmos of one region.
type GizmoMap interface {
	// Find returns the gizmo under xy, or nil.
	Find(xy event.Point) Gizmo
	// SetHighlight changes the highlighted gizmo and reports a change.
	SetHighlight(g Gizmo) bool
	Highlighted() Gizmo
	// Modal returns the gizmo running a modal operator, or nil.
	Modal() Gizmo
}

// GizmoHandler dispatches events to a region's gizmos.
type GizmoHandler struct {
	Head
	Map GizmoMap
}
