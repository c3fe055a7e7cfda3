// Package wm is the window manager event core.
//
// A Manager owns windows. Each window owns a queue of normalized events,
// the persistent input state they are derived from, and two handler lists
// (modal and window level). Area and region handler lists live on the
// window's screen layout.
//
// The main loop is single threaded:
//
//	for running {
//		for _, raw := range source.Poll() {
//			m.AddGhostEvent(win, raw)
//		}
//		m.ProcessTimers(time.Now())
//		m.ProcessEvents()
//		m.ProcessNotifiers()
//	}
//
// ProcessEvents drains each window's queue, dispatching every event through
// the modal, area, region and window handler lists in that order. Events
// nothing consumed are then checked for click, click-drag and double-click
// synthesis and dispatched again.
//
// Operators run through OperatorCall (invoke or exec), OperatorRepeat and
// the handlers. Finished operators push undo steps, enter the redo register
// and move their reports to the manager's report list.
package wm
