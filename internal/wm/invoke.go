package wm

import (
	"fmt"
	"runtime"
	"time"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/handler"
	"github.com/dshills/wmcore/internal/keymap"
	"github.com/dshills/wmcore/internal/notifier"
	"github.com/dshills/wmcore/internal/operator"
	"github.com/dshills/wmcore/internal/report"
	"github.com/dshills/wmcore/internal/screen"
)

// actionFromResult maps an operator result onto the handler loop.
func actionFromResult(r operator.Result) handler.Action {
	r &^= operator.Handled
	switch {
	case r == operator.Finished|operator.PassThrough:
		return handler.Handled
	case r == operator.PassThrough|operator.RunningModal:
		return handler.Break | handler.Modal
	case r.Has(operator.PassThrough):
		return handler.Continue
	default:
		return handler.Break
	}
}

// lockAllows reports whether ot may run under the current interface lock.
func (m *Manager) lockAllows(ot *operator.Type) bool {
	return !m.InterfaceLocked() || ot.Is(operator.FlagLockBypass)
}

// operatorHandlerCall runs the modal callback of a modal operator handler,
// or invokes the operator a key-map item names.
func (m *Manager) operatorHandlerCall(ctx *wmContext, list *handler.List, h handler.Handler, ev *event.Event, props operator.Properties, opID string) handler.Action {
	if oh, ok := h.(*handler.Op); ok && oh.Op != nil {
		return m.modalHandlerCall(ctx, list, oh, ev)
	}

	ot, ok := m.registry.Find(opID)
	if !ok {
		m.hLog.Warn("key-map item calls unknown operator %q", opID)
		return handler.Continue
	}
	if !m.lockAllows(ot) {
		return handler.Continue
	}
	return actionFromResult(m.operatorInvoke(ctx, ot, ev, props, nil, true))
}

func (m *Manager) modalHandlerCall(ctx *wmContext, list *handler.List, oh *handler.Op, ev *event.Event) handler.Action {
	op := oh.Op
	ot := op.Type
	if !m.lockAllows(ot) {
		return handler.Continue
	}
	if !ot.HasModal() {
		m.hLog.Error("operator %q has no modal callback", ot.ID)
		return handler.Continue
	}

	area, region := ctx.area, ctx.region
	m.opHandlerContext(ctx, oh)

	// Macros translate through the modal key-map of the running child.
	target := op
	if op.Active != nil {
		target = op.Active
	}
	var km *keymap.Keymap
	if name := target.Type.ModalKeymap; name != "" {
		km = m.keymaps.Active(name)
	}
	mev := keymap.ModalTranslate(km, target, ev, m.cfg.Match)
	mev.MVal = m.mval(ctx, ev)

	r := m.callOperator(op, "modal", func() operator.Result {
		return ot.Modal(ctx, op, &mev)
	})
	if ctx.win.closed {
		return handler.Break
	}

	if r.Done() {
		m.operatorReports(ctx, op, r)
	} else if !op.Reports.Empty() {
		m.addReports(op.Reports)
	}

	switch {
	case r.Has(operator.Finished):
		m.operatorFinished(ctx, op, false, true)
		oh.Op = nil
	case r.Has(operator.Cancelled):
		oh.Op = nil
	}

	if r.Any(operator.PassThrough) || ev.AlwaysPass() {
		ctx.setArea(area, region)
	} else {
		// The operator may have removed its own area.
		ctx.setArea(nil, nil)
	}

	if r.Done() {
		oh.GrabCursor = false
		list.Remove(oh)
	}
	return actionFromResult(r)
}

// opHandlerContext restores the area and region a modal handler was
// started in, as long as they still exist.
func (m *Manager) opHandlerContext(ctx *wmContext, oh *handler.Op) {
	a := areaOf(oh.Area)
	if a == nil {
		ctx.setArea(nil, nil)
		return
	}
	scr := ctx.win.screen
	if scr == nil || !scr.Contains(a) {
		m.hLog.Debug("handler area is gone, keeping context")
		return
	}
	ctx.area = a
	ctx.region = nil
	want := regionOf(oh.Region)
	if want == nil {
		return
	}
	for _, r := range a.Regions {
		if r == want {
			ctx.region = r
			return
		}
	}
	// The region was rebuilt; fall back to one of the same kind.
	ctx.region = a.Region(want.Type)
}

// mval returns ev's position local to the context region.
func (m *Manager) mval(ctx *wmContext, ev *event.Event) event.Point {
	if ctx.region == nil {
		return event.Point{X: -1, Y: -1}
	}
	return ctx.region.Local(ev.XY)
}

// callOperator runs one operator callback, keeping the undo depth, the
// call metrics and panic recovery in one place.
func (m *Manager) callOperator(op *operator.Operator, stage string, fn func() operator.Result) (r operator.Result) {
	start := time.Now()
	undoType := op.Type.Is(operator.FlagUndo)
	if undoType {
		m.undoDepth++
	}
	defer func() {
		if undoType {
			m.undoDepth--
		}
		if m.cfg.RecoverFromPanic {
			if rec := recover(); rec != nil {
				stack := make([]byte, 4096)
				n := runtime.Stack(stack, false)
				m.opLog.Error("operator %s %s panicked: %v\n%s", op.Type.ID, stage, rec, stack[:n])
				op.Reports.Addf(report.Error, "%s failed: %v", op.Type.ID, rec)
				m.metrics.RecordPanic(op.Type.ID)
				r = operator.Cancelled
			}
		}
		m.metrics.RecordCall(op.Type.ID, time.Since(start), r)
	}()
	return fn()
}

// operatorInvoke creates an instance of ot and runs it: invoke when an
// event is given and the type has one, exec otherwise. useLast fills unset
// properties from the last finished run and stores them back afterwards.
func (m *Manager) operatorInvoke(ctx *wmContext, ot *operator.Type, ev *event.Event, props operator.Properties, reports *report.List, useLast bool) operator.Result {
	if !m.registry.Poll(ctx, ot) {
		m.opLog.Debug("poll failed for %s", ot.ID)
		return operator.PassThrough
	}
	op, err := m.registry.Create(ot, props, reports)
	if err != nil {
		m.opLog.Error("create %s: %v", ot.ID, err)
		return operator.Cancelled
	}

	nested := m.undoDepth != 0
	if ev != nil {
		op.Flag |= operator.IsInvoke
	}
	if !nested && useLast {
		m.registry.InitFromLast(op)
	}

	if name, missing := op.MissingRequired(); missing {
		op.Reports.Addf(report.ErrorInvalidInput, "%s: property %q must be set", ot.ID, name)
		m.operatorReports(ctx, op, operator.Cancelled)
		return operator.Cancelled
	}

	var r operator.Result
	switch {
	case ev != nil && ot.HasInvoke():
		local := ev.Clone()
		local.MVal = m.mval(ctx, ev)
		r = m.callOperator(op, "invoke", func() operator.Result {
			return ot.Invoke(ctx, op, local)
		})
	case ot.HasExec():
		r = m.callOperator(op, "exec", func() operator.Result {
			return ot.Exec(ctx, op)
		})
	default:
		m.opLog.Error("invalid operator call %q", ot.ID)
		return operator.PassThrough
	}

	if !r.Has(operator.Handled) && r.Done() {
		m.operatorReports(ctx, op, r)
	}

	switch {
	case r.Has(operator.Handled):
		// A nested call already did the bookkeeping.
	case r.Has(operator.Finished):
		m.operatorFinished(ctx, op, false, !nested && useLast)
	case r.Has(operator.RunningModal):
		op.Reports.Flag |= report.FlagFree
		if !ctx.win.closed && m.modalHandlerFor(ctx.win, op) == nil {
			m.addModalHandler(ctx, op)
		}
	}
	return r
}

// operatorExec runs the exec callback of an existing instance, as used by
// repeat and redo.
func (m *Manager) operatorExec(ctx *wmContext, op *operator.Operator, repeat, store bool) operator.Result {
	if !m.registry.Poll(ctx, op.Type) {
		return operator.Cancelled
	}
	if !op.Type.HasExec() {
		return operator.Cancelled | operator.Handled
	}
	if repeat {
		op.Flag |= operator.IsRepeat
	}
	r := m.callOperator(op, "exec", func() operator.Result {
		return op.Type.Exec(ctx, op)
	})
	op.Flag &^= operator.IsRepeat

	if r.Done() {
		m.operatorReports(ctx, op, r)
	}
	if r.Has(operator.Finished) {
		m.operatorFinished(ctx, op, repeat, store && m.undoDepth == 0)
	}
	return r | operator.Handled
}

// operatorFinished pushes undo and registers op for redo.
func (m *Manager) operatorFinished(ctx *wmContext, op *operator.Operator, repeat, store bool) {
	op.CustomData = nil
	if store {
		m.registry.StoreLast(op)
	}
	if m.undoDepth == 0 {
		switch {
		case op.Type.Is(operator.FlagUndo):
			m.undo.Push(op.Type.Name)
			ctx.AddNotifier(notifier.NCWM|notifier.NDUndo, nil)
		case op.Type.Is(operator.FlagUndoGrouped):
			m.undo.PushGrouped(op.Type.Name)
			ctx.AddNotifier(notifier.NCWM|notifier.NDUndo, nil)
		}
	}
	if repeat {
		return
	}
	if m.undoDepth == 0 && (op.Type.Is(operator.FlagRegister) || op.Type.Is(operator.FlagUndo)) {
		op.Reports.Flag |= report.FlagFree
		for _, old := range m.history.Add(op) {
			m.opLog.Debug("redo register dropped %s", old.Type.ID)
		}
		ctx.AddNotifier(notifier.NCSpace|notifier.NDSpaceInfoReport, nil)
		ctx.AddNotifier(notifier.NCWM|notifier.NDHistory, nil)
	}
}

// modalHandlerFor returns the modal handler running op or its macro.
func (m *Manager) modalHandlerFor(win *Window, op *operator.Operator) *handler.Op {
	root := op.Root()
	h := win.Modal.Find(func(h handler.Handler) bool {
		oh, ok := h.(*handler.Op)
		return ok && oh.Op != nil && (oh.Op == op || oh.Op == root)
	})
	if h == nil {
		return nil
	}
	return h.(*handler.Op)
}

// addModalHandler parks op in front of the window's modal handlers. A
// macro child runs through the handler of its macro.
func (m *Manager) addModalHandler(ctx *wmContext, op *operator.Operator) {
	win := ctx.win
	if win == nil || win.closed {
		return
	}
	if op.Parent != nil {
		op.Parent.Active = op
		if oh := m.modalHandlerFor(win, op.Parent); oh != nil {
			oh.Area, oh.Region = ctx.Area(), ctx.Region()
			return
		}
	}
	oh := &handler.Op{
		Op:         op.Root(),
		Area:       ctx.Area(),
		Region:     ctx.Region(),
		GrabCursor: op.Type.Is(operator.FlagBlocking),
	}
	win.Modal.AddHead(oh)
	m.hLog.Debug("modal handler added for %s", op.Type.ID)
}

// RemoveHandlers empties list, cancelling the operators it holds and
// tearing down its UI elements.
func (m *Manager) RemoveHandlers(win *Window, list *handler.List) {
	if win == nil || list == nil {
		return
	}
	ctx := m.newContext(win)
	for _, h := range list.Clear() {
		m.freeHandler(ctx, h)
	}
}

func (m *Manager) freeHandler(ctx *wmContext, h handler.Handler) {
	switch h := h.(type) {
	case *handler.Op:
		if h.Op == nil {
			return
		}
		op := h.Op
		h.Op = nil
		h.GrabCursor = false
		if h.FileSelect && m.browser != nil && !ctx.win.closed {
			m.browser.Close(ctx.win, op)
		}
		if op.Type.HasCancel() {
			area, region := ctx.area, ctx.region
			m.opHandlerContext(ctx, h)
			m.callOperator(op, "cancel", func() operator.Result {
				op.Type.Cancel(ctx, op)
				return operator.Cancelled
			})
			ctx.setArea(area, region)
		}
	case *handler.UI:
		if h.Remove == nil {
			return
		}
		area, region := ctx.area, ctx.region
		if a := areaOf(h.Area); a != nil {
			ctx.area = a
		}
		if r := regionOf(h.Region); r != nil {
			ctx.region = r
		}
		h.Remove(ctx)
		ctx.setArea(area, region)
	}
}

// CloseArea removes area from win's screen, cancelling its handlers.
func (m *Manager) CloseArea(win *Window, area *screen.Area) {
	if win == nil || win.screen == nil {
		return
	}
	removed := win.screen.RemoveArea(area)
	ctx := m.newContext(win)
	for _, h := range removed {
		m.freeHandler(ctx, h)
	}
	m.RemoveNotifierReference(area)
	win.AddMouseMove()
}

// contextAt returns a context for win with the area and region under the
// cursor.
func (m *Manager) contextAt(win *Window) *wmContext {
	ctx := m.newContext(win)
	if scr := win.screen; scr != nil {
		if a := scr.AreaAt(win.state.XY); a != nil {
			ctx.setArea(a, a.RegionAt(win.state.XY))
		}
	}
	return ctx
}

// OperatorCall runs the operator id in win. With an event the invoke
// callback is used when present, otherwise exec. Unset properties are
// filled from the previous run.
func (m *Manager) OperatorCall(win *Window, id string, props operator.Properties, ev *event.Event) (operator.Result, error) {
	return m.OperatorCallWithReports(win, id, props, ev, nil)
}

// OperatorCallWithReports is OperatorCall with a caller-owned report list,
// which receives the operator's reports instead of the global list.
func (m *Manager) OperatorCallWithReports(win *Window, id string, props operator.Properties, ev *event.Event, reports *report.List) (operator.Result, error) {
	ot, ok := m.registry.Find(id)
	if !ok {
		return operator.Cancelled, fmt.Errorf("%w: %q", operator.ErrUnknownType, id)
	}
	if win == nil || win.closed {
		return operator.Cancelled, ErrWindowClosed
	}
	if !m.lockAllows(ot) {
		return operator.Cancelled, ErrInterfaceLocked
	}
	return m.operatorInvoke(m.contextAt(win), ot, ev, props, reports, true), nil
}

// OperatorRepeat runs a finished instance's exec again.
func (m *Manager) OperatorRepeat(win *Window, op *operator.Operator) (operator.Result, error) {
	if win == nil || win.closed {
		return operator.Cancelled, ErrWindowClosed
	}
	if op == nil || !op.Type.HasExec() {
		return operator.Cancelled, operator.ErrNotRepeatable
	}
	if !m.lockAllows(op.Type) {
		return operator.Cancelled, ErrInterfaceLocked
	}
	return m.operatorExec(m.contextAt(win), op, true, true), nil
}

// OperatorRepeatLast repeats the newest operator in the redo register.
func (m *Manager) OperatorRepeatLast(win *Window) (operator.Result, error) {
	op := m.history.Last()
	if op == nil {
		return operator.Cancelled, ErrNothingToRepeat
	}
	op.Flag |= operator.IsRepeatLast
	defer func() { op.Flag &^= operator.IsRepeatLast }()
	return m.OperatorRepeat(win, op)
}

// OperatorLastRedo returns the newest register entry that can be redone
// with new properties.
func (m *Manager) OperatorLastRedo() *operator.Operator {
	return m.history.LastRedo()
}

// OperatorRedoLast undoes the last redoable operator and runs it again with
// props applied. The undo is reverted when the rerun does not finish.
func (m *Manager) OperatorRedoLast(win *Window, props operator.Properties) (operator.Result, error) {
	if win == nil || win.closed {
		return operator.Cancelled, ErrWindowClosed
	}
	op := m.history.LastRedo()
	if op == nil {
		return operator.Cancelled, ErrNothingToRepeat
	}
	if !op.Type.HasExec() {
		return operator.Cancelled, operator.ErrNotRepeatable
	}
	ctx := m.contextAt(win)
	if !m.registry.Poll(ctx, op.Type) {
		return operator.Cancelled, ErrNotPolled
	}

	// Entries after op describe state that is about to be replaced.
	ops := m.history.Ops()
	for i := len(ops) - 1; i >= 0 && ops[i] != op; i-- {
		m.history.Remove(ops[i])
	}
	if op.Type.Is(operator.FlagUndo) {
		if _, err := m.undo.Undo(); err != nil {
			return operator.Cancelled, err
		}
	}
	for k, v := range props {
		op.Props[k] = v
	}
	if op.Type.HasCheck() {
		op.Type.Check(ctx, op)
	}

	r := m.operatorExec(ctx, op, true, true)
	if !r.Has(operator.Finished) && op.Type.Is(operator.FlagUndo) {
		if _, err := m.undo.Redo(); err != nil {
			m.opLog.Warn("redo after failed rerun of %s: %v", op.Type.ID, err)
		}
	}
	return r, nil
}
