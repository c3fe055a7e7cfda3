package operator

import "github.com/dshills/wmcore/internal/event"

// macroData is shared by all children of one running macro.
type macroData struct {
	// retval becomes Finished once any child finished and stays that way.
	retval Result
}

func macroStart(op *Operator) {
	if op.macro == nil {
		op.macro = &macroData{}
	}
}

// macroEnd turns a cancellation into success when an earlier child
// finished, and drops the shared data once the macro is done.
func macroEnd(op *Operator, r Result) Result {
	if r.Any(Cancelled) && op.macro != nil && op.macro.retval.Any(Finished) {
		r |= Finished
		r &^= Cancelled
	}
	if r.Done() {
		op.macro = nil
		op.Active = nil
	}
	return r
}

func macroExec(ctx Context, op *Operator) Result {
	r := Finished
	macroStart(op)
	for _, child := range op.Macro {
		if !child.Type.HasExec() {
			ctx.Logger().Warn("'%s' can't exec macro", child.Type.ID)
			continue
		}
		r = child.Type.Exec(ctx, child)
		child.Reports.MoveTo(op.Reports)
		if !r.Any(Finished) {
			break
		}
		op.macro.retval = Finished
	}
	return macroEnd(op, r)
}

func macroInvoke(ctx Context, op *Operator, ev *event.Event) Result {
	macroStart(op)
	return macroInvokeFrom(ctx, op, ev, 0)
}

// macroInvokeFrom runs children starting at index start until one does not
// finish.
func macroInvokeFrom(ctx Context, op *Operator, ev *event.Event, start int) Result {
	r := Finished
	for _, child := range op.Macro[start:] {
		switch {
		case child.Type.HasInvoke() && ev != nil:
			r = child.Type.Invoke(ctx, child, ev)
		case child.Type.HasExec():
			r = child.Type.Exec(ctx, child)
		}
		child.Reports.MoveTo(op.Reports)

		if r.Any(RunningModal) {
			op.Active = child
		}
		if !r.Any(Finished) {
			break
		}
		op.macro.retval = Finished
	}
	return macroEnd(op, r)
}

func macroModal(ctx Context, op *Operator, ev *event.Event) Result {
	child := op.Active
	if child == nil || !child.Type.HasModal() {
		ctx.Logger().Error("macro error, calling nil modal() on '%s'", op.Type.ID)
		return macroEnd(op, Finished)
	}

	r := child.Type.Modal(ctx, child, ev)
	if r.Any(Cancelled) {
		// Halfway through a tool: forget its options.
		child.Props.Clear()
	}
	if r.Any(Finished) {
		if next := op.childIndex(child) + 1; next < len(op.Macro) {
			macroStart(op)
			op.macro.retval = Finished
			op.Active = nil
			r = macroInvokeFrom(ctx, op, ev, next)
		}
	}
	return macroEnd(op, r)
}

func macroCancel(ctx Context, op *Operator) {
	if child := op.Active; child != nil && child.Type.HasCancel() {
		child.Type.Cancel(ctx, child)
	}
	macroEnd(op, Cancelled)
}

func (op *Operator) childIndex(child *Operator) int {
	for i, c := range op.Macro {
		if c == child {
			return i
		}
	}
	return len(op.Macro)
}
