package model

import (
	"sync"
	"time"
)

// StatsModel accumulates detection pipeline counters and camera session
// durations. Counters are written from the UI tick and from the detection
// worker. The zero value is ready to use.
type StatsModel struct {
	mu sync.Mutex

	dispatched  uint64
	dropped     uint64
	inferences  uint64
	failures    uint64
	discarded   uint64
	lastLatency time.Duration
	lastCount   int

	active              bool
	captureStart        time.Time
	lastSessionDuration time.Duration
	accumulated         time.Duration
}

// Stats is a point-in-time copy of StatsModel.
type Stats struct {
	Dispatched  uint64
	Dropped     uint64
	Inferences  uint64
	Failures    uint64
	Discarded   uint64
	LastLatency time.Duration
	LastCount   int
	Session     time.Duration
	Total       time.Duration
}

func NewStatsModel() *StatsModel { return &StatsModel{} }

// FrameDispatched counts a frame handed to the worker. replaced is true when
// it displaced a queued frame that never ran.
func (m *StatsModel) FrameDispatched(replaced bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.dispatched++
	if replaced {
		m.dropped++
	}
	m.mu.Unlock()
}

// InferenceDone records a completed pass.
func (m *StatsModel) InferenceDone(latency time.Duration, count int, err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.inferences++
	m.lastLatency = latency
	if err != nil {
		m.failures++
	} else {
		m.lastCount = count
	}
	m.mu.Unlock()
}

// ResultDiscarded counts a result that arrived after its session ended.
func (m *StatsModel) ResultDiscarded() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.discarded++
	m.mu.Unlock()
}

// OnTick updates session durations from the running flag.
func (m *StatsModel) OnTick(running bool, now time.Time) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if running {
		if !m.active { // off -> on
			m.active = true
			m.captureStart = now
		}
		m.lastSessionDuration = now.Sub(m.captureStart)
	} else if m.active { // on -> off
		m.lastSessionDuration = now.Sub(m.captureStart)
		m.accumulated += m.lastSessionDuration
		m.active = false
	}
}

// Snapshot returns the current values. Total includes the ongoing session.
func (m *StatsModel) Snapshot() Stats {
	if m == nil {
		return Stats{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Stats{
		Dispatched:  m.dispatched,
		Dropped:     m.dropped,
		Inferences:  m.inferences,
		Failures:    m.failures,
		Discarded:   m.discarded,
		LastLatency: m.lastLatency,
		LastCount:   m.lastCount,
		Session:     m.lastSessionDuration,
		Total:       m.accumulated,
	}
	if m.active {
		s.Total += s.Session
	}
	return s
}
