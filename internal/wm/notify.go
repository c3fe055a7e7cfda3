package wm

import (
	"github.com/dshills/wmcore/internal/handler"
	"github.com/dshills/wmcore/internal/notifier"
	"github.com/dshills/wmcore/internal/screen"
)

// AddNotifier queues a notifier. A nil window addresses every window.
// Duplicates of a queued type and reference are dropped.
func (m *Manager) AddNotifier(win notifier.Window, typ notifier.Type, ref any) {
	if m.notes.Add(win, typ, ref) {
		m.noteLog.Debug("queued %s", typ)
	}
}

// RemoveNotifierReference scrubs every queued notifier pointing at ref,
// e.g. because the referenced data is being freed.
func (m *Manager) RemoveNotifierReference(ref any) {
	m.notes.RemoveReference(ref)
}

// Notes returns the queued notifiers.
func (m *Manager) Notes() []*notifier.Note {
	return m.notes.Notes()
}

// ProcessNotifiers applies screen changes requested through notifiers,
// then delivers every queued notifier to the listeners of the windows it
// addresses. Notes are popped one at a time, so a listener removing a
// reference also scrubs the notes still waiting. Notes queued by listeners
// are delivered on the next pass.
func (m *Manager) ProcessNotifiers() {
	for _, win := range m.Windows() {
		for _, n := range m.notes.Notes() {
			if n.Cleared() || n.Category != notifier.NCScreen || !n.InWindow(win) {
				continue
			}
			m.screenNote(win, n)
		}
	}

	for pending := m.notes.Len(); pending > 0; pending-- {
		n, ok := m.notes.Pop()
		if !ok {
			break
		}
		if n.Cleared() {
			continue
		}
		for _, win := range m.Windows() {
			if n.Window != nil && !n.InWindow(win) {
				continue
			}
			if n.Category == notifier.NCScreen {
				if scr, ok := n.Reference.(*screen.Screen); ok && scr != nil && scr != win.screen {
					continue
				}
			}
			for _, fn := range m.listeners {
				fn(win, n)
			}
			if win.screen != nil {
				win.screen.Listen(win, n)
			}
		}
	}
}

func (m *Manager) screenNote(win *Window, n *notifier.Note) {
	scr, _ := n.Reference.(*screen.Screen)
	switch n.Data {
	case notifier.NDWorkspaceSet, notifier.NDLayoutBrowse:
		if scr == nil || scr == win.screen {
			return
		}
		m.removePopups(win)
		win.SetScreen(scr)
		win.AddMouseMove()
		m.noteLog.Debug("window %q switched to screen %q", win.Name, scr.Name)
	case notifier.NDWorkspaceDelete, notifier.NDLayoutDelete:
		if scr == nil {
			return
		}
		m.deleteScreen(win, scr)
	}
}

func (m *Manager) deleteScreen(win *Window, scr *screen.Screen) {
	if !win.removeScreen(scr) {
		return
	}
	if win.screen == scr {
		if len(win.screens) == 0 {
			win.screens = []*screen.Screen{screen.New(win.Name)}
		}
		m.removePopups(win)
		win.screen = win.screens[0]
		win.AddMouseMove()
	}
	for _, a := range scr.Areas {
		m.RemoveHandlers(win, a.Handlers)
		for _, r := range a.Regions {
			m.RemoveHandlers(win, r.Handlers)
		}
	}
	m.noteLog.Debug("window %q deleted screen %q", win.Name, scr.Name)
}

// removePopups closes the popup UI handlers of win.
func (m *Manager) removePopups(win *Window) {
	ctx := m.newContext(win)
	removed := win.Modal.RemoveIf(func(h handler.Handler) bool {
		ui, ok := h.(*handler.UI)
		return ok && ui.Popup
	})
	for _, h := range removed {
		ui := h.(*handler.UI)
		if ui.Remove != nil {
			ctx.setArea(areaOf(ui.Area), regionOf(ui.Region))
			ui.Remove(ctx)
		}
	}
}
