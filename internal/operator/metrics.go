package operator

import (
	"sort"
	"sync"
	"time"
)

// Metrics collects per-type invocation statistics.
type Metrics struct {
	mu sync.RWMutex

	types map[string]*TypeMetrics

	totalCalls     uint64
	totalCancelled uint64
	totalPanics    uint64
	totalDuration  time.Duration
}

// TypeMetrics holds statistics for one operator type.
type TypeMetrics struct {
	ID             string
	CallCount      uint64
	FinishedCount  uint64
	CancelledCount uint64
	ModalCount     uint64
	PanicCount     uint64
	TotalDuration  time.Duration
	MinDuration    time.Duration
	MaxDuration    time.Duration
	LastResult     Result
	LastCall       time.Time
}

// AverageDuration returns the mean callback duration.
func (tm *TypeMetrics) AverageDuration() time.Duration {
	if tm.CallCount == 0 {
		return 0
	}
	return tm.TotalDuration / time.Duration(tm.CallCount)
}

// NewMetrics creates an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{types: make(map[string]*TypeMetrics)}
}

// RecordCall records one callback run of type id.
func (m *Metrics) RecordCall(id string, d time.Duration, r Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalCalls++
	m.totalDuration += d
	if r.Any(Cancelled) {
		m.totalCancelled++
	}

	tm := m.types[id]
	if tm == nil {
		tm = &TypeMetrics{ID: id, MinDuration: d, MaxDuration: d}
		m.types[id] = tm
	}
	tm.CallCount++
	tm.TotalDuration += d
	tm.LastResult = r
	tm.LastCall = time.Now()
	if d < tm.MinDuration {
		tm.MinDuration = d
	}
	if d > tm.MaxDuration {
		tm.MaxDuration = d
	}
	switch {
	case r.Any(Finished):
		tm.FinishedCount++
	case r.Any(Cancelled):
		tm.CancelledCount++
	case r.Any(RunningModal):
		tm.ModalCount++
	}
}

// RecordPanic records a recovered panic in a callback of type id.
func (m *Metrics) RecordPanic(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalPanics++
	tm := m.types[id]
	if tm == nil {
		tm = &TypeMetrics{ID: id}
		m.types[id] = tm
	}
	tm.PanicCount++
}

// Type returns a copy of the statistics for id.
func (m *Metrics) Type(id string) (TypeMetrics, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tm, ok := m.types[id]
	if !ok {
		return TypeMetrics{}, false
	}
	return *tm, true
}

// Totals returns the global counters.
func (m *Metrics) Totals() (calls, cancelled, panics uint64, total time.Duration) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalCalls, m.totalCancelled, m.totalPanics, m.totalDuration
}

// TopByCount returns up to n types ordered by call count.
func (m *Metrics) TopByCount(n int) []TypeMetrics {
	m.mu.RLock()
	out := make([]TypeMetrics, 0, len(m.types))
	for _, tm := range m.types {
		out = append(out, *tm)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CallCount != out[j].CallCount {
			return out[i].CallCount > out[j].CallCount
		}
		return out[i].ID < out[j].ID
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Reset clears all statistics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types = make(map[string]*TypeMetrics)
	m.totalCalls = 0
	m.totalCancelled = 0
	m.totalPanics = 0
	m.totalDuration = 0
}
