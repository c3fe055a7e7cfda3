package job

import (
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/logging"
	"github.com/dshills/wmcore/internal/notifier"
)

// DefaultStep is the timer step used when a job sets none.
const DefaultStep = 500 * time.Millisecond

// Host is the window manager side a job manager needs.
type Host interface {
	AddTimer(win notifier.Window, typ event.Type, step time.Duration) event.TimerRef
	RemoveTimer(win notifier.Window, t event.TimerRef)
	AddNotifier(win notifier.Window, typ notifier.Type, ref any)
	SetInterfaceLocked(locked bool)
}

// Manager owns every job of a window manager. Methods other than the
// Status calls made by workers must be called from the main loop.
type Manager struct {
	mu   sync.RWMutex
	jobs []*Job
	host Host
	log  *logging.Logger
}

// NewManager creates a job manager.
func NewManager(host Host, log *logging.Logger) *Manager {
	if log == nil {
		log = logging.Null()
	}
	return &Manager{
		host: host,
		log:  log.WithComponent(logging.CategoryJobs),
	}
}

// GetOrCreate returns the job of owner with the given name, creating it.
func (m *Manager) GetOrCreate(win notifier.Window, owner any, name string, flag Flag) *Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, j := range m.jobs {
		if sameOwner(j.Owner, owner) && j.Name == name {
			return j
		}
	}
	j := &Job{
		ID:     uuid.New(),
		Name:   name,
		Window: win,
		Owner:  owner,
		Flag:   flag,
		step:   DefaultStep,
	}
	if flag&FlagPriority != 0 {
		m.jobs = append([]*Job{j}, m.jobs...)
	} else {
		m.jobs = append(m.jobs, j)
	}
	return j
}

// Start launches the worker. Starting a running job asks it to stop; it
// restarts with its pending data when the stop is merged.
func (m *Manager) Start(j *Job) {
	if j.running {
		j.status.stop.Store(true)
		return
	}
	if j.customData == nil || j.cb.Start == nil {
		return
	}

	j.runData, j.runFree = j.customData, j.free
	j.customData, j.free = nil, nil
	j.running = true
	if j.cb.Init != nil {
		j.cb.Init(j.runData)
	}
	j.status.reset()
	j.ready.Store(false)
	j.done = make(chan struct{})
	j.startTime = time.Now()

	if j.Flag&FlagLockInterface != 0 {
		m.host.SetInterfaceLocked(true)
	}
	if j.step <= 0 {
		j.step = DefaultStep
	}
	if j.timer != nil && j.timer.Step() > j.step {
		m.host.RemoveTimer(j.Window, j.timer)
		j.timer = nil
	}
	if j.timer == nil {
		j.timer = m.host.AddTimer(j.Window, event.TimerJobs, j.step)
	}

	m.log.Debug("job %s started", j.Name)
	go j.run()
}

// HandleTimer merges worker state for the job owning t. It reports whether
// a job owned the timer.
func (m *Manager) HandleTimer(t event.TimerRef) bool {
	var j *Job
	m.mu.RLock()
	for _, cur := range m.jobs {
		if cur.timer == t {
			j = cur
			break
		}
	}
	m.mu.RUnlock()
	if j == nil {
		return false
	}
	if !j.running {
		return true
	}

	ready := j.ready.Load()
	if j.status.doUpdate.Swap(false) || ready {
		if j.cb.Update != nil {
			j.cb.Update(j.runData)
		}
		if j.note != 0 {
			m.host.AddNotifier(j.Window, j.note, nil)
		}
		if j.Flag&FlagProgress != 0 {
			m.host.AddNotifier(j.Window, notifier.NCWM|notifier.NDJob, nil)
		}
	}
	if !ready {
		return true
	}

	<-j.done
	m.finish(j)

	if j.customData != nil {
		m.log.Debug("job %s restarted with new data", j.Name)
		m.Start(j)
	} else {
		m.host.RemoveTimer(j.Window, j.timer)
		j.timer = nil
		m.remove(j)
	}
	return true
}

// finish runs the end-of-run callbacks of a returned worker.
func (m *Manager) finish(j *Job) {
	stopped := j.status.Stopped()
	if j.cb.End != nil {
		j.cb.End(j.runData)
	}
	if stopped {
		if j.cb.Canceled != nil {
			j.cb.Canceled(j.runData)
		}
	} else if j.cb.Completed != nil {
		j.cb.Completed(j.runData)
	}
	j.freeRunData()
	j.running = false

	m.log.Debug("job %s finished in %s (stopped=%v)", j.Name, time.Since(j.startTime), stopped)

	if j.Flag&FlagLockInterface != 0 && !m.anyLocking(j) {
		m.host.SetInterfaceLocked(false)
	}
	if j.endNote != 0 {
		m.host.AddNotifier(j.Window, j.endNote, nil)
	}
	m.host.AddNotifier(j.Window, notifier.NCWM|notifier.NDJob, nil)
}

// Stop asks running jobs of owner to stop. A nil owner stops every job.
func (m *Manager) Stop(owner any) {
	for _, j := range m.Jobs() {
		if (owner == nil || sameOwner(j.Owner, owner)) && j.running {
			j.status.stop.Store(true)
		}
	}
}

// Kill stops the jobs of owner, waits for their workers and frees them.
func (m *Manager) Kill(owner any) {
	for _, j := range m.Jobs() {
		if sameOwner(j.Owner, owner) {
			m.kill(j)
		}
	}
}

// KillWindow kills every job of win.
func (m *Manager) KillWindow(win notifier.Window) {
	for _, j := range m.Jobs() {
		if j.Window != nil && win != nil && j.Window.ID() == win.ID() {
			m.kill(j)
		}
	}
}

// KillAll kills every job.
func (m *Manager) KillAll() {
	for _, j := range m.Jobs() {
		m.kill(j)
	}
}

func (m *Manager) kill(j *Job) {
	if j.running {
		j.status.stop.Store(true)
		<-j.done
		if j.cb.End != nil {
			j.cb.End(j.runData)
		}
		if j.cb.Canceled != nil {
			j.cb.Canceled(j.runData)
		}
		j.freeRunData()
		j.running = false
		if j.Flag&FlagLockInterface != 0 && !m.anyLocking(j) {
			m.host.SetInterfaceLocked(false)
		}
	}
	if j.timer != nil {
		m.host.RemoveTimer(j.Window, j.timer)
		j.timer = nil
	}
	j.freePending()
	m.remove(j)
	m.log.Debug("job %s killed", j.Name)
}

// IsRunning reports whether owner has a running job.
func (m *Manager) IsRunning(owner any) bool {
	for _, j := range m.Jobs() {
		if sameOwner(j.Owner, owner) && j.running {
			return true
		}
	}
	return false
}

// Progress returns the progress of the first progress-reporting job of
// owner, or 0.
func (m *Manager) Progress(owner any) float64 {
	for _, j := range m.Jobs() {
		if sameOwner(j.Owner, owner) && j.Flag&FlagProgress != 0 {
			return j.Progress()
		}
	}
	return 0
}

// Find returns the job with the given ID.
func (m *Manager) Find(id uuid.UUID) *Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, j := range m.jobs {
		if j.ID == id {
			return j
		}
	}
	return nil
}

// Jobs returns every job in priority order.
func (m *Manager) Jobs() []*Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Job, len(m.jobs))
	copy(out, m.jobs)
	return out
}

// Len returns the number of jobs.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.jobs)
}

func (m *Manager) remove(j *Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, cur := range m.jobs {
		if cur == j {
			m.jobs = append(m.jobs[:i:i], m.jobs[i+1:]...)
			return
		}
	}
}

func (m *Manager) anyLocking(except *Job) bool {
	for _, j := range m.Jobs() {
		if j != except && j.running && j.Flag&FlagLockInterface != 0 {
			return true
		}
	}
	return false
}

// sameOwner compares owners by identity; values of non-comparable types
// never match.
func sameOwner(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
