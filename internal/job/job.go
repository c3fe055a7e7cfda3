package job

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/notifier"
)

// Flag holds job options.
type Flag uint8

const (
	// FlagPriority asks to run before other jobs of the window.
	FlagPriority Flag = 1 << iota
	// FlagProgress emits NC_WM|ND_JOB on each update so progress bars
	// refresh.
	FlagProgress
	// FlagLockInterface locks the interface while the job runs.
	FlagLockInterface
)

// Status is shared between a worker and the main loop.
type Status struct {
	stop     atomic.Bool
	doUpdate atomic.Bool
	progress atomic.Uint64
}

// Stopped reports whether the worker was asked to stop. Workers poll it.
func (s *Status) Stopped() bool { return s.stop.Load() }

// RequestUpdate asks the main loop to run the update callback.
func (s *Status) RequestUpdate() { s.doUpdate.Store(true) }

// SetProgress stores progress in [0, 1].
func (s *Status) SetProgress(p float64) {
	s.progress.Store(math.Float64bits(p))
}

// Progress returns the last stored progress.
func (s *Status) Progress() float64 {
	return math.Float64frombits(s.progress.Load())
}

func (s *Status) reset() {
	s.stop.Store(false)
	s.doUpdate.Store(false)
	s.SetProgress(0)
}

// StartFunc is the worker body.
type StartFunc func(data any, st *Status)

// Func is a main-loop callback receiving the job's data.
type Func func(data any)

// Callbacks groups the job callbacks. Only Start is required.
type Callbacks struct {
	Start StartFunc
	// Init runs on the main loop right before the worker starts.
	Init Func
	// Update runs on a timer tick after the worker requested one.
	Update Func
	// End runs once the worker returned.
	End Func
	// Completed runs after End when the job was not stopped, Canceled
	// when it was.
	Completed Func
	Canceled  Func
}

// Job is one unit of background work.
type Job struct {
	ID     uuid.UUID
	Name   string
	Window notifier.Window
	Owner  any
	Flag   Flag

	cb Callbacks

	// Pending data for the next run.
	customData any
	free       Func
	// Data of the current run.
	runData any
	runFree Func

	step    time.Duration
	note    notifier.Type
	endNote notifier.Type
	timer   event.TimerRef

	running   bool
	ready     atomic.Bool
	status    Status
	done      chan struct{}
	startTime time.Time
}

// SetCallbacks installs the callbacks.
func (j *Job) SetCallbacks(cb Callbacks) {
	j.cb = cb
}

// SetCustomData hands data to the next run, freeing data that was pending.
// Setting data on a running job asks it to stop so it restarts with the
// new data.
func (j *Job) SetCustomData(data any, free Func) {
	if j.customData != nil && j.free != nil {
		j.free(j.customData)
	}
	j.customData = data
	j.free = free
	if j.running {
		j.status.stop.Store(true)
	}
}

// SetTimer sets the polling step and the notifiers sent on update and at
// the end. Zero notifier types are not sent.
func (j *Job) SetTimer(step time.Duration, note, endNote notifier.Type) {
	j.step = step
	j.note = note
	j.endNote = endNote
}

// Running reports whether a worker is active.
func (j *Job) Running() bool { return j.running }

// Progress returns the worker's last reported progress.
func (j *Job) Progress() float64 { return j.status.Progress() }

// StartTime returns when the current run began.
func (j *Job) StartTime() time.Time { return j.startTime }

func (j *Job) run() {
	defer close(j.done)
	defer j.ready.Store(true)
	j.cb.Start(j.runData, &j.status)
}

func (j *Job) freeRunData() {
	if j.runFree != nil && j.runData != nil {
		j.runFree(j.runData)
	}
	j.runData = nil
	j.runFree = nil
}

func (j *Job) freePending() {
	if j.free != nil && j.customData != nil {
		j.free(j.customData)
	}
	j.customData = nil
	j.free = nil
}
