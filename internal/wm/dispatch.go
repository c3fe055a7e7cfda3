package wm

import (
	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/handler"
	"github.com/dshills/wmcore/internal/keymap"
	"github.com/dshills/wmcore/internal/operator"
	"github.com/dshills/wmcore/internal/screen"
)

// ProcessEvents dispatches the queued events of every window.
func (m *Manager) ProcessEvents() {
	for _, win := range m.Windows() {
		m.processWindow(win)
	}
}

func (m *Manager) processWindow(win *Window) {
	for !win.closed {
		if win.checkDrag {
			m.forceDrag(win)
		}
		ev := win.popEvent()
		if ev == nil {
			break
		}
		// Timer events whose timer was removed while queued.
		if ev.Type == event.TypeNone {
			continue
		}

		ctx := m.newContext(win)
		m.handleEvent(ctx, ev)
		if win.closed {
			return
		}

		win.state.PrevXY = ev.XY
		win.lastHandled = ev
	}

	if !win.closed && win.addMouseMove {
		win.addMouseMove = false
		ev := win.state.NewEvent(m.now())
		ev.Type = event.MouseMove
		ev.Value = event.ValueNothing
		ev.PrevXY = ev.XY
		win.AddEvent(ev)
	}
}

// forceDrag puts a motion event in front of a press that follows an
// unfinished mouse press, so the pending drag is emitted before the new
// press is handled, however little the cursor moved.
func (m *Manager) forceDrag(win *Window) {
	if len(win.queue) == 0 {
		return
	}
	next := win.queue[0]
	if next.Value != event.Press || next.IsRepeat() ||
		!next.Type.IsKeyboardOrButton() || !next.PrevPressType.IsMouseButton() {
		return
	}
	var mv event.Event
	if win.lastHandled != nil {
		mv = *win.lastHandled
	} else {
		mv = win.state.NewEvent(next.Time)
	}
	// The press still waiting for its drag is the baseline the next event
	// was built against.
	mv.PrevPressType = next.PrevPressType
	mv.PrevPressXY = next.PrevPressXY
	mv.PrevPressModifier = next.PrevPressModifier
	mv.PrevPressKeyModifier = next.PrevPressKeyModifier
	mv.PrevPressTime = next.PrevPressTime
	mv.Type = event.MouseMove
	mv.Value = event.ValueNothing
	mv.PrevXY = mv.XY
	mv.Flag = event.FlagForceDragThreshold
	mv.CustomData = nil
	win.pushFront(&mv)
	m.evLog.Debug("forced drag before %s", next.Type)
}

// handleEvent dispatches ev through every handler list, then synthesizes
// click, click-drag and double-click variants when nothing consumed it.
func (m *Manager) handleEvent(ctx *wmContext, ev *event.Event) handler.Action {
	win := ctx.win
	action := m.handlersDo(ctx, ev)
	if win.closed {
		return action
	}

	switch {
	case ev.Type.IsMouseMotion():
		if !action.NotHandled() {
			win.checkDrag = false
			break
		}
		if !win.checkDrag {
			break
		}
		if ev.Flag&event.FlagForceDragThreshold == 0 && !m.cfg.Thresholds.DragTest(ev, ev.PrevPressXY) {
			break
		}
		prevType, prevValue := ev.Type, ev.Value
		prevMod, prevKeyMod := ev.Modifier, ev.KeyModifier
		ev.Value = event.ClickDrag
		ev.Type = ev.PrevPressType
		ev.Modifier = ev.PrevPressModifier
		ev.KeyModifier = ev.PrevPressKeyModifier
		ev.Direction = event.DragDirection(ev)
		m.evLog.Debug("click-drag %s %s", ev.Type, ev.Direction)

		action |= m.handlersDo(ctx, ev)

		ev.Direction = event.DirectionNone
		ev.Type, ev.Value = prevType, prevValue
		ev.Modifier, ev.KeyModifier = prevMod, prevKeyMod
		if !win.closed {
			win.checkClick = false
			// One drag per press.
			win.checkDrag = false
		}

	case ev.Type.IsKeyboardOrButton():
		if !action.NotHandled() {
			win.checkClick = false
			win.checkDrag = false
			break
		}
		switch ev.Value {
		case event.Press:
			if !ev.IsRepeat() {
				win.checkClick = true
				win.checkDrag = true
			}
		case event.Release:
			if win.checkDrag {
				// Letting go of a modifier keeps the drag alive.
				keep := ev.PrevPressType != ev.Type &&
					(ev.Type.IsModifierKey() || ev.Type == ev.PrevPressKeyModifier)
				if !keep {
					win.checkDrag = false
				}
			}
		}

		if ev.PrevPressType == ev.Type {
			switch ev.Value {
			case event.Release:
				if ev.PrevValue == event.Press && win.checkClick {
					if m.cfg.Thresholds.DragTest(ev, ev.PrevPressXY) {
						win.checkClick = false
						win.checkDrag = false
					} else {
						// The click happens where the button went down, in
						// case the cursor drifted a little.
						xy := ev.XY
						ev.XY = ev.PrevPressXY
						ev.Value = event.Click
						m.evLog.Debug("click %s", ev.Type)

						action |= m.handlersDo(ctx, ev)

						ev.Value = event.Release
						ev.XY = xy
					}
				}
			case event.DoubleClick:
				ev.Value = event.Press
				action |= m.handlersDo(ctx, ev)
				if action.NotHandled() {
					ev.Value = event.DoubleClick
				}
			}
		}
		// A click is resolved by the release of the pressed key.
		if ev.Value == event.Release && ev.PrevPressType == ev.Type && !win.closed {
			win.checkClick = false
		}

	case ev.Type.IsWheel() || ev.Type.IsGesture():
		// Using the wheel while holding a modifier must not turn the
		// modifier release into a click.
		if !action.NotHandled() && ev.PrevType.IsModifierKey() {
			win.checkClick = false
		}
	}
	return action
}

// handlersDo runs ev through the window's modal handlers, the handlers of
// the areas and regions under the cursor, and the window handlers, in that
// order, until one breaks.
func (m *Manager) handlersDo(ctx *wmContext, ev *event.Event) handler.Action {
	win := ctx.win
	scr := win.screen

	var area *screen.Area
	var region *screen.Region
	if scr != nil {
		if area = scr.AreaAt(ev.XY); area != nil {
			region = area.RegionAt(ev.XY)
		}
	}
	ctx.setArea(area, region)

	action := m.handlersDoIntern(ctx, ev, win.Modal)
	if win.closed {
		return action
	}
	if ev.Type == event.NDOFMotion {
		win.addMouseMove = true
	}

	if !action.Stops() && scr != nil {
		always := ev.AlwaysPass()
		areas := make([]*screen.Area, len(scr.Areas))
		copy(areas, scr.Areas)
		for _, a := range areas {
			if !always && !a.Rect.Contains(ev.XY) {
				continue
			}
			if !scr.Contains(a) {
				continue
			}
			ctx.setArea(a, a.RegionAt(ev.XY))
			action |= m.handlersDoIntern(ctx, ev, a.Handlers)
			if win.closed {
				return action
			}
			if action.Stops() {
				break
			}

			regions := make([]*screen.Region, len(a.Regions))
			copy(regions, a.Regions)
			for _, r := range regions {
				if !always && !r.Rect.Contains(ev.XY) {
					continue
				}
				ctx.setArea(a, r)
				action |= m.handlersDoIntern(ctx, ev, r.Handlers)
				if win.closed {
					return action
				}
				if action.Stops() {
					break
				}
			}
			if action.Stops() {
				break
			}
		}
	}

	if !action.Stops() {
		ctx.setArea(area, region)
		action |= m.handlersDoIntern(ctx, ev, win.Handlers)
	}
	return action
}

// handlersDoIntern runs ev through one handler list. Handlers may remove
// themselves or siblings, or clear the whole list, while it is walked.
func (m *Manager) handlersDoIntern(ctx *wmContext, ev *event.Event, list *handler.List) handler.Action {
	if list == nil {
		return handler.Continue
	}
	action := handler.Continue
	locked := m.InterfaceLocked()

	for _, h := range list.Snapshot() {
		if list.Len() == 0 {
			break
		}
		if !list.Contains(h) {
			continue
		}
		head := handler.HeadOf(h)
		if head.Flag&handler.FlagDoFree != 0 {
			continue
		}
		if head.Poll != nil && !head.Poll(ctx.Area(), ctx.Region(), ev) {
			continue
		}
		if head.Flag&handler.FlagBlocking != 0 {
			action |= handler.Break
		}

		switch h := h.(type) {
		case *handler.Keymap:
			action |= m.keymapHandlerDo(ctx, list, h, ev)
		case *handler.UI:
			if !locked {
				action |= m.uiHandlerCall(ctx, h, ev)
			}
		case *handler.Dropbox:
			if !locked && ev.Type == event.EvtDrop {
				action |= m.dropboxDo(ctx, h, ev)
			}
		case *handler.GizmoHandler:
			action |= m.gizmoHandlerDo(ctx, list, h, ev)
		case *handler.Op:
			if h.FileSelect {
				if !locked {
					action |= m.fileSelectCall(ctx, list, h, ev)
				}
			} else {
				action |= m.operatorHandlerCall(ctx, list, h, ev, nil, "")
			}
		}

		if ctx.win.closed {
			return action
		}
		if head.Flag&handler.FlagDoFree != 0 {
			list.Remove(h)
		}
		if action.Stops() {
			if !ev.AlwaysPass() {
				break
			}
			action &^= handler.Break
		}
	}
	return action
}

func (m *Manager) keymapHandlerDo(ctx *wmContext, list *handler.List, h *handler.Keymap, ev *event.Event) handler.Action {
	action := handler.Continue
	for _, res := range h.Keymaps(ctx) {
		if res.Fallback && gizmoHighlighted(ctx.region) {
			continue
		}
		km := m.keymaps.Active(res.Name)
		if km == nil {
			m.hLog.Debug("key-map %q not found", res.Name)
			continue
		}
		a := m.keymapItemsDo(ctx, list, h, km, ev, h.Post)
		action |= a
		if a.Stops() || ctx.win.closed {
			break
		}
	}
	return action
}

// keymapItemsDo calls the operator of every item matching ev until one
// breaks.
func (m *Manager) keymapItemsDo(ctx *wmContext, list *handler.List, h handler.Handler, km *keymap.Keymap, ev *event.Event, post handler.PostFunc) handler.Action {
	action := handler.Continue
	if !km.PollContext(ctx) {
		return action
	}
	for _, it := range km.Items {
		if !keymap.Match(it, ev, m.cfg.Match) {
			continue
		}
		a := m.operatorHandlerCall(ctx, list, h, ev, it.Props, it.Operator)
		action |= a
		if ctx.win.closed {
			break
		}
		if a.Stops() {
			m.hLog.Debug("%s handled by %q in key-map %q", ev.Type, it.Operator, km.Name)
			if post != nil {
				post(ctx, it)
			}
			break
		}
		m.hLog.Debug("%s passed on by %q in key-map %q", ev.Type, it.Operator, km.Name)
	}
	return action
}

func gizmoHighlighted(r *screen.Region) bool {
	return r != nil && r.Gizmos != nil && r.Gizmos.Highlighted() != nil
}

func (m *Manager) uiHandlerCall(ctx *wmContext, h *handler.UI, ev *event.Event) handler.Action {
	if h.Head.Flag&handler.FlagAcceptDoubleClick == 0 &&
		!ev.Type.IsMouseButton() && ev.Value == event.DoubleClick {
		return handler.Continue
	}

	isWheel := ev.Type == event.WheelUpMouse || ev.Type == event.WheelDownMouse || ev.Type == event.MousePan
	if !m.doWheelUI {
		if isWheel {
			return handler.Continue
		}
		if !ev.AlwaysPass() {
			m.doWheelUI = true
		}
	}

	// The file browser answers through its own events.
	if ev.Type == event.EvtFileSelect || h.Handle == nil {
		return handler.Continue
	}

	area, region := ctx.area, ctx.region
	if a := areaOf(h.Area); a != nil {
		ctx.area = a
	}
	if r := regionOf(h.Region); r != nil {
		ctx.region = r
	}

	result := h.Handle(ctx, ev)

	if !result.Stops() || ev.AlwaysPass() {
		ctx.setArea(area, region)
	} else {
		// The element may have removed its own area.
		ctx.setArea(nil, nil)
	}
	if result.Stops() {
		return handler.Break
	}
	if isWheel {
		m.doWheelUI = false
	}
	return handler.Continue
}

func (m *Manager) dropboxDo(ctx *wmContext, h *handler.Dropbox, ev *event.Event) handler.Action {
	dd, ok := ev.CustomData.(*event.DragData)
	if !ok {
		return handler.Continue
	}
	action := handler.Continue
	for _, box := range h.Boxes {
		drags := make([]*event.Drag, len(dd.Drags))
		copy(drags, dd.Drags)
		for _, drag := range drags {
			if box.Poll != nil && !box.Poll(ctx, drag, ev) {
				continue
			}
			ot, ok := m.registry.Find(box.Operator)
			if !ok || !m.registry.Poll(ctx, ot) {
				continue
			}
			props := box.Props.Clone()
			if box.Copy != nil {
				box.Copy(drag, props)
			}

			// The operator sees only the drag it accepted.
			dd.Remove(drag)
			single := ev.Clone()
			single.CustomData = &event.DragData{Drags: []*event.Drag{drag}}

			r := m.operatorInvoke(ctx, ot, single, props, nil, false)
			if r.Any(operator.Cancelled) && box.Cancel != nil {
				box.Cancel(ctx, drag)
			}
			action |= handler.Break
			m.hLog.Debug("drop %q accepted by %q", drag.Name, box.Name)

			ev.CustomData = nil
			m.dragExit(ctx.win, dd.Drags)
			return action
		}
	}
	// Drags end on a drop whether or not anything accepted them.
	m.dragExit(ctx.win, dd.Drags)
	return action
}

func (m *Manager) dragExit(win *Window, remaining []*event.Drag) {
	if win.closed || win.DragExit == nil {
		return
	}
	win.DragExit(remaining)
}

func (m *Manager) gizmoHandlerDo(ctx *wmContext, list *handler.List, h *handler.GizmoHandler, ev *event.Event) handler.Action {
	gmap := h.Map
	if gmap == nil {
		return handler.Continue
	}
	action := handler.Continue

	isDrag := ev.Value == event.ClickDrag
	isModifier := ev.Type.IsModifierKey()
	prevHighlight := gmap.Highlighted()

	handleHighlight, handleKeymap := false, false
	if gmap.Modal() == nil {
		if ev.Type.IsMouseMotion() || isModifier || isDrag {
			handleHighlight = true
			handleKeymap = isModifier || isDrag
		} else {
			handleKeymap = true
		}
	}

	if handleHighlight {
		xy := ev.XY
		if isDrag {
			xy = ev.PrevPressXY
		}
		if region := ctx.region; region != nil {
			xy = region.Local(xy)
		}
		if gmap.SetHighlight(gmap.Find(xy)) && ctx.region != nil {
			ctx.region.TagRedraw()
		}
	}

	gz := gmap.Highlighted()
	if handleKeymap && gz != nil {
		if name := gz.Keymap(); name != "" {
			if km := m.keymaps.Active(name); km != nil {
				action |= m.keymapItemsDo(ctx, list, h, km, ev, nil)
			}
		} else if isDrag {
			return action
		}
	}

	// A drag starting over a gizmo must not leave a different one lit.
	if handleHighlight && isDrag && gmap.Modal() == nil && !action.Stops() {
		gmap.SetHighlight(prevHighlight)
	}

	if gz != nil && gz.HandleAll() && action == handler.Continue {
		action |= handler.Break | handler.Modal
	}
	return action
}
