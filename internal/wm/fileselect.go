package wm

import (
	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/handler"
	"github.com/dshills/wmcore/internal/operator"
	"github.com/dshills/wmcore/internal/report"
)

// addFileSelect parks op until the file browser answers. Popups close and
// any other file-select operator of the window is cancelled first, since
// a window shows one browser at a time.
func (m *Manager) addFileSelect(ctx *wmContext, op *operator.Operator) {
	win := ctx.win
	if win == nil || win.closed {
		return
	}
	m.removePopups(win)

	area, region := ctx.area, ctx.region
	for _, h := range win.Modal.Snapshot() {
		if oh, ok := h.(*handler.Op); ok && oh.FileSelect && oh.Op != nil {
			m.fileSelectDo(ctx, win.Modal, oh, event.FileSelectExternalCancel)
		}
	}
	ctx.setArea(area, region)

	win.Modal.AddHead(&handler.Op{
		Op:         op,
		Area:       ctx.Area(),
		Region:     ctx.Region(),
		FileSelect: true,
	})

	if op.Type.HasCheck() {
		op.Type.Check(ctx, op)
	}
	m.FileSelectEvent(op, event.FileSelectFullOpen)
}

// FileSelectEvent queues a file-select event for op in every window. The
// file browser calls it with FileSelectExec or FileSelectCancel once the
// user is done.
func (m *Manager) FileSelectEvent(op *operator.Operator, action event.FileSelectAction) {
	for _, win := range m.windows {
		if win.closed {
			continue
		}
		ev := win.state.NewEvent(m.now())
		ev.Type = event.EvtFileSelect
		ev.Value = event.ValueNothing
		ev.CustomData = &event.FileSelectData{Operator: op, Action: action}
		win.AddEvent(ev)
	}
}

func (m *Manager) fileSelectCall(ctx *wmContext, list *handler.List, oh *handler.Op, ev *event.Event) handler.Action {
	if ev.Type != event.EvtFileSelect {
		return handler.Continue
	}
	data, ok := ev.CustomData.(*event.FileSelectData)
	if !ok || oh.Op == nil || data.Operator != any(oh.Op) {
		return handler.Continue
	}
	return m.fileSelectDo(ctx, list, oh, data.Action)
}

func (m *Manager) fileSelectDo(ctx *wmContext, list *handler.List, oh *handler.Op, action event.FileSelectAction) handler.Action {
	win := ctx.win
	op := oh.Op

	switch action {
	case event.FileSelectFullOpen:
		if m.browser != nil {
			m.browser.Open(win, op)
		}
		return handler.Break

	case event.FileSelectExec, event.FileSelectCancel, event.FileSelectExternalCancel:
		if m.browser != nil {
			m.browser.Close(win, op)
		}
		list.Remove(oh)
		oh.Op = nil
		m.opHandlerContext(ctx, oh)

		if action == event.FileSelectExec {
			m.fileSelectExec(ctx, op)
		} else if op.Type.HasCancel() {
			m.callOperator(op, "cancel", func() operator.Result {
				op.Type.Cancel(ctx, op)
				return operator.Cancelled
			})
		}
		ctx.setArea(nil, nil)
		return handler.Break
	}
	return handler.Continue
}

func (m *Manager) fileSelectExec(ctx *wmContext, op *operator.Operator) {
	if !op.Type.HasExec() {
		m.opLog.Error("file-select operator %q has no exec callback", op.Type.ID)
		return
	}
	r := m.callOperator(op, "exec", func() operator.Result {
		return op.Type.Exec(ctx, op)
	})
	if m.undoDepth == 0 && r.Has(operator.Finished) {
		switch {
		case op.Type.Is(operator.FlagUndo):
			m.undo.Push(op.Type.Name)
		case op.Type.Is(operator.FlagUndoGrouped):
			m.undo.PushGrouped(op.Type.Name)
		}
	}
	if !op.Reports.Empty() {
		// File errors such as failed reads have to reach the user.
		op.Reports.Print(m.opLog, report.Warning)
		op.Reports.MoveTo(m.reports)
		m.showBanner()
	}
	if r.Has(operator.Finished) {
		m.registry.StoreLast(op)
	}
}
