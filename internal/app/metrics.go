package app

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Metrics tracks main loop activity. Counters are atomic so a snapshot
// can be taken from any goroutine.
type Metrics struct {
	// Loop passes
	passCount   atomic.Uint64
	passTotalNs atomic.Int64
	passMinNs   atomic.Int64
	passMaxNs   atomic.Int64

	// Input
	rawCount     atomic.Uint64
	inputBatches atomic.Uint64

	// Config reloads
	reloads atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.passMinNs.Store(1<<63 - 1)
	return m
}

// RecordPass records the time one timers/events/notifiers pass took.
func (m *Metrics) RecordPass(d time.Duration) {
	ns := d.Nanoseconds()
	m.passCount.Add(1)
	m.passTotalNs.Add(ns)

	for {
		old := m.passMinNs.Load()
		if ns >= old || m.passMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.passMaxNs.Load()
		if ns <= old || m.passMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordInput records a batch of raw events handed to the window manager.
func (m *Metrics) RecordInput(n int) {
	m.inputBatches.Add(1)
	m.rawCount.Add(uint64(n))
}

// RecordReload records an applied file change.
func (m *Metrics) RecordReload() {
	m.reloads.Add(1)
}

// Snapshot returns a point-in-time copy.
func (m *Metrics) Snapshot() MetricsSnapshot {
	passes := m.passCount.Load()
	var avg int64
	if passes > 0 {
		avg = m.passTotalNs.Load() / int64(passes)
	}
	minNs := m.passMinNs.Load()
	if minNs == 1<<63-1 {
		minNs = 0
	}
	return MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		Passes:       passes,
		AvgPass:      time.Duration(avg),
		MinPass:      time.Duration(minNs),
		MaxPass:      time.Duration(m.passMaxNs.Load()),
		RawEvents:    m.rawCount.Load(),
		InputBatches: m.inputBatches.Load(),
		Reloads:      m.reloads.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	Passes       uint64
	AvgPass      time.Duration
	MinPass      time.Duration
	MaxPass      time.Duration
	RawEvents    uint64
	InputBatches uint64
	Reloads      uint64
}

func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("uptime=%s passes=%d avg=%s max=%s raw=%d reloads=%d",
		s.Uptime.Round(time.Millisecond), s.Passes, s.AvgPass, s.MaxPass, s.RawEvents, s.Reloads)
}
