package wm

import (
	"time"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/notifier"
)

// Timer fires at a fixed step. Depending on its type it queues a timer
// event in its window, drives the job manager, sends a notifier or expires
// the report banner.
type Timer struct {
	win  *Window
	Type event.Type

	step     time.Duration
	start    time.Time
	last     time.Time
	next     time.Time
	delta    time.Duration
	duration time.Duration

	// note is sent by TimerNotifier timers.
	note notifier.Type

	// Sleep pauses the timer without removing it.
	Sleep bool

	removed bool
}

// Step returns the timer interval.
func (t *Timer) Step() time.Duration { return t.step }

// Duration returns the time elapsed since the timer started, as of its
// last firing.
func (t *Timer) Duration() time.Duration { return t.duration }

// Delta returns the time between the last two firings.
func (t *Timer) Delta() time.Duration { return t.delta }

// Window returns the owning window, or nil for global timers.
func (t *Timer) Window() *Window { return t.win }

// AddTimer starts a timer. A nil window makes a global timer, which may
// only drive jobs, notifiers or the report banner.
func (m *Manager) AddTimer(win notifier.Window, typ event.Type, step time.Duration) event.TimerRef {
	return m.addTimer(windowOf(win), typ, step)
}

func (m *Manager) addTimer(win *Window, typ event.Type, step time.Duration) *Timer {
	now := m.now()
	t := &Timer{
		win:   win,
		Type:  typ,
		step:  step,
		start: now,
		last:  now,
		next:  now.Add(step),
	}
	m.timers = append(m.timers, t)
	return t
}

// AddTimerNotifier starts a global timer that sends note at every step.
func (m *Manager) AddTimerNotifier(note notifier.Type, step time.Duration) *Timer {
	t := m.addTimer(nil, event.TimerNotifier, step)
	t.note = note
	return t
}

// RemoveTimer stops a timer. Queued events carrying it are neutralized so
// handlers never see a timer that no longer exists.
func (m *Manager) RemoveTimer(win notifier.Window, ref event.TimerRef) {
	t, ok := ref.(*Timer)
	if !ok || t == nil || t.removed {
		return
	}
	t.removed = true
	if t == m.bannerTimer {
		m.bannerTimer = nil
	}
	for _, w := range m.windows {
		for _, ev := range w.queue {
			if td, ok := ev.CustomData.(*event.TimerData); ok && td.Timer == ref {
				ev.Type = event.TypeNone
				ev.CustomData = nil
			}
		}
	}
}

// Timers returns the live timers.
func (m *Manager) Timers() []*Timer {
	out := make([]*Timer, 0, len(m.timers))
	for _, t := range m.timers {
		if !t.removed {
			out = append(out, t)
		}
	}
	return out
}

// NextTimer returns the time the next timer is due, for the main loop's
// idle sleep.
func (m *Manager) NextTimer() (time.Time, bool) {
	var next time.Time
	found := false
	for _, t := range m.timers {
		if t.removed || t.Sleep {
			continue
		}
		if !found || t.next.Before(next) {
			next = t.next
			found = true
		}
	}
	return next, found
}

// ProcessTimers fires every due timer.
func (m *Manager) ProcessTimers(now time.Time) {
	// Firing may add or remove timers.
	timers := make([]*Timer, len(m.timers))
	copy(timers, m.timers)

	for _, t := range timers {
		if t.removed || t.Sleep || now.Before(t.next) {
			continue
		}
		t.delta = now.Sub(t.last)
		t.duration += t.delta
		t.last = now
		if t.step > 0 {
			for !t.next.After(now) {
				t.next = t.next.Add(t.step)
			}
		} else {
			t.next = now
		}
		m.fireTimer(t, now)
	}

	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.removed {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.timers); i++ {
		m.timers[i] = nil
	}
	m.timers = live
}

func (m *Manager) fireTimer(t *Timer, now time.Time) {
	switch t.Type {
	case event.TimerJobs:
		m.jobs.HandleTimer(t)
	case event.TimerNotifier:
		m.AddNotifier(nil, t.note, nil)
	case event.TimerReport:
		m.updateBanner(t, now)
	default:
		if t.win == nil || t.win.closed {
			return
		}
		ev := t.win.state.NewEvent(now)
		ev.Type = t.Type
		ev.Value = event.ValueNothing
		ev.CustomData = &event.TimerData{Timer: t, Delta: t.delta, Duration: t.duration}
		t.win.AddEvent(ev)
	}
}

// windowOf narrows a notifier.Window back to a window of this package.
func windowOf(win notifier.Window) *Window {
	w, _ := win.(*Window)
	return w
}
