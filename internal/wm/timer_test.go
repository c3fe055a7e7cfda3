package wm

import (
	"testing"
	"time"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/handler"
	"github.com/dshills/wmcore/internal/job"
	"github.com/dshills/wmcore/internal/notifier"
	"github.com/dshills/wmcore/internal/operator"
)

func (h *harness) tick(d time.Duration) {
	h.clk.Advance(d)
	h.m.ProcessTimers(h.clk.now)
	h.run()
}

func TestWindowTimerEvents(t *testing.T) {
	h := newHarness(t)
	var got []*event.TimerData
	for i := 0; i < 2; i++ {
		h.win.Handlers.AddTail(&handler.UI{Handle: func(_ operator.Context, ev *event.Event) handler.Action {
			if td, ok := ev.CustomData.(*event.TimerData); ok && ev.Type == event.Timer0 {
				got = append(got, td)
			}
			return handler.Break
		}})
	}

	tm := h.m.AddTimer(h.win, event.Timer0, 100*time.Millisecond)
	h.tick(50 * time.Millisecond)
	if len(got) != 0 {
		t.Fatal("timer fired before its step")
	}

	h.tick(50 * time.Millisecond)
	// Timer events reach every handler even though each one breaks.
	if len(got) != 2 {
		t.Fatalf("timer seen %d times, want 2", len(got))
	}
	if got[0].Timer != tm || got[0].Delta != 100*time.Millisecond {
		t.Errorf("timer data = %+v", got[0])
	}

	h.tick(100 * time.Millisecond)
	if d := got[len(got)-1].Duration; d != 200*time.Millisecond {
		t.Errorf("duration = %v, want 200ms", d)
	}
}

func TestRemovedTimerNeutralizesQueuedEvents(t *testing.T) {
	h := newHarness(t)
	h.record()

	tm := h.m.AddTimer(h.win, event.Timer1, 10*time.Millisecond)
	h.clk.Advance(10 * time.Millisecond)
	h.m.ProcessTimers(h.clk.now)
	if len(h.win.Queue()) != 1 {
		t.Fatalf("queued %d timer events, want 1", len(h.win.Queue()))
	}

	h.m.RemoveTimer(h.win, tm)
	h.run()

	if len(h.log) != 0 {
		t.Errorf("handler saw %v from a removed timer", h.seen())
	}
	if len(h.m.Timers()) != 0 {
		t.Error("removed timer still listed")
	}
}

func TestSleepingTimer(t *testing.T) {
	h := newHarness(t)
	tm := h.m.AddTimer(h.win, event.Timer0, 10*time.Millisecond).(*Timer)
	tm.Sleep = true

	h.clk.Advance(time.Second)
	h.m.ProcessTimers(h.clk.now)
	if len(h.win.Queue()) != 0 {
		t.Error("sleeping timer fired")
	}
	if _, ok := h.m.NextTimer(); ok {
		t.Error("sleeping timer reported as next")
	}
}

func TestNextTimer(t *testing.T) {
	h := newHarness(t)
	if _, ok := h.m.NextTimer(); ok {
		t.Fatal("NextTimer with no timers")
	}
	h.m.AddTimer(h.win, event.Timer0, time.Second)
	h.m.AddTimer(nil, event.TimerNotifier, 200*time.Millisecond)

	next, ok := h.m.NextTimer()
	if !ok || !next.Equal(epoch.Add(200*time.Millisecond)) {
		t.Errorf("NextTimer() = %v, %v", next, ok)
	}
}

func TestTimerNotifier(t *testing.T) {
	h := newHarness(t)
	got := h.listen()
	h.m.AddTimerNotifier(notifier.NCScene|notifier.NDFrame, 40*time.Millisecond)

	h.clk.Advance(40 * time.Millisecond)
	h.m.ProcessTimers(h.clk.now)
	h.m.ProcessNotifiers()

	if len(*got) != 1 || (*got)[0].note != notifier.NCScene|notifier.NDFrame {
		t.Errorf("deliveries = %v", *got)
	}
}

func TestCloseWindowStopsTimers(t *testing.T) {
	h := newHarness(t)
	h.m.AddTimer(h.win, event.Timer0, 10*time.Millisecond)
	h.m.AddTimer(nil, event.TimerNotifier, 10*time.Millisecond)

	h.m.CloseWindow(h.win)
	if n := len(h.m.Timers()); n != 1 {
		t.Errorf("live timers = %d, want only the global one", n)
	}
}

func TestModalOperatorTimer(t *testing.T) {
	h := newHarness(t)
	ticks := 0
	h.register(&operator.Type{
		ID: "test.animate",
		Invoke: func(ctx operator.Context, op *operator.Operator, _ *event.Event) operator.Result {
			op.CustomData = ctx.AddTimer(event.Timer2, 10*time.Millisecond)
			return operator.RunningModal
		},
		Modal: func(ctx operator.Context, op *operator.Operator, ev *event.Event) operator.Result {
			td, ok := ev.CustomData.(*event.TimerData)
			if ev.Type != event.Timer2 || !ok || td.Timer != op.CustomData {
				return operator.PassThrough | operator.RunningModal
			}
			ticks++
			if ticks == 3 {
				ctx.RemoveTimer(td.Timer)
				return operator.Finished
			}
			return operator.RunningModal
		},
	})

	press := &event.Event{Type: event.KeyA, Value: event.Press}
	if _, err := h.m.OperatorCall(h.win, "test.animate", nil, press); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		h.tick(10 * time.Millisecond)
	}

	if ticks != 3 {
		t.Errorf("ticks = %d, want 3", ticks)
	}
	if h.win.Modal.Len() != 0 || len(h.m.Timers()) != 0 {
		t.Error("operator or timer left behind")
	}
}

func TestJobLocksInterface(t *testing.T) {
	h := newHarness(t)
	release := make(chan struct{})
	completed := false

	j := h.m.Jobs().GetOrCreate(h.win, h.win, "bake", job.FlagLockInterface)
	j.SetCallbacks(job.Callbacks{
		Start:     func(any, *job.Status) { <-release },
		Completed: func(any) { completed = true },
	})
	j.SetTimer(10*time.Millisecond, 0, notifier.NCScene|notifier.NDFrame)
	j.SetCustomData("scene", nil)
	h.m.Jobs().Start(j)

	if !h.m.InterfaceLocked() {
		t.Fatal("interface not locked while the job runs")
	}
	close(release)

	deadline := time.Now().Add(5 * time.Second)
	for h.m.Jobs().Len() > 0 {
		if time.Now().After(deadline) {
			t.Fatal("job never finished")
		}
		time.Sleep(time.Millisecond)
		h.clk.Advance(10 * time.Millisecond)
		h.m.ProcessTimers(h.clk.now)
	}

	if !completed {
		t.Error("completed callback not run")
	}
	if h.m.InterfaceLocked() {
		t.Error("interface still locked")
	}
	if len(h.m.Timers()) != 0 {
		t.Error("job timer left behind")
	}
}

func TestCloseWindowKillsJobs(t *testing.T) {
	h := newHarness(t)
	canceled := make(chan struct{})

	j := h.m.Jobs().GetOrCreate(h.win, h.win, "render", 0)
	j.SetCallbacks(job.Callbacks{
		Start: func(_ any, st *job.Status) {
			for !st.Stopped() {
				time.Sleep(time.Millisecond)
			}
		},
		Canceled: func(any) { close(canceled) },
	})
	j.SetCustomData(1, nil)
	h.m.Jobs().Start(j)

	h.m.CloseWindow(h.win)

	select {
	case <-canceled:
	default:
		t.Error("job not cancelled with its window")
	}
	if h.m.Jobs().Len() != 0 {
		t.Error("job still registered")
	}
}
