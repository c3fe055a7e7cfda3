package wm

import (
	"time"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/logging"
	"github.com/dshills/wmcore/internal/notifier"
	"github.com/dshills/wmcore/internal/operator"
	"github.com/dshills/wmcore/internal/screen"
)

// wmContext is the operator.Context handed to handlers and operators.
// Area and region are swapped while walking the handler lists.
type wmContext struct {
	m      *Manager
	win    *Window
	area   *screen.Area
	region *screen.Region
}

func (m *Manager) newContext(win *Window) *wmContext {
	return &wmContext{m: m, win: win}
}

// Window returns nil once the window is closed.
func (c *wmContext) Window() operator.Window {
	if c.win == nil || c.win.closed {
		return nil
	}
	return c.win
}

func (c *wmContext) Area() operator.Area {
	if c.area == nil {
		return nil
	}
	return c.area
}

func (c *wmContext) Region() operator.Region {
	if c.region == nil {
		return nil
	}
	return c.region
}

func (c *wmContext) Logger() *logging.Logger { return c.m.opLog }

func (c *wmContext) AddNotifier(typ notifier.Type, ref any) {
	c.m.AddNotifier(winOf(c.win), typ, ref)
}

func (c *wmContext) AddModalHandler(op *operator.Operator) {
	c.m.addModalHandler(c, op)
}

func (c *wmContext) AddFileSelect(op *operator.Operator) {
	c.m.addFileSelect(c, op)
}

func (c *wmContext) AddTimer(typ event.Type, step time.Duration) event.TimerRef {
	return c.m.AddTimer(winOf(c.win), typ, step)
}

func (c *wmContext) RemoveTimer(t event.TimerRef) {
	c.m.RemoveTimer(winOf(c.win), t)
}

func (c *wmContext) Call(id string, props operator.Properties) operator.Result {
	ot, ok := c.m.registry.Find(id)
	if !ok {
		c.m.opLog.Error("unknown operator %q", id)
		return operator.Cancelled
	}
	return c.m.operatorInvoke(c, ot, nil, props, nil, false)
}

func (c *wmContext) InterfaceLocked() bool { return c.m.InterfaceLocked() }

func (c *wmContext) setArea(a *screen.Area, r *screen.Region) {
	c.area = a
	c.region = r
}

// areaOf narrows an operator.Area back to the screen type.
func areaOf(a operator.Area) *screen.Area {
	sa, _ := a.(*screen.Area)
	return sa
}

func regionOf(r operator.Region) *screen.Region {
	sr, _ := r.(*screen.Region)
	return sr
}

// winOf converts a window to the notifier interface without producing a
// typed nil.
func winOf(w *Window) notifier.Window {
	if w == nil {
		return nil
	}
	return w
}
