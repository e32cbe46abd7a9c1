package model

import (
	"errors"
	"testing"
	"time"
)

func TestStatsModel_SessionLifecycle(t *testing.T) {
	m := NewStatsModel()
	base := time.Unix(0, 0)

	m.OnTick(true, base)
	m.OnTick(true, base.Add(5*time.Second))
	s := m.Snapshot()
	if s.Session != 5*time.Second || s.Total != 5*time.Second {
		t.Fatalf("expected 5s session & total; got session=%v total=%v", s.Session, s.Total)
	}

	m.OnTick(false, base.Add(5*time.Second))
	m.OnTick(false, base.Add(7*time.Second))
	s = m.Snapshot()
	if s.Session != 5*time.Second || s.Total != 5*time.Second {
		t.Fatalf("idle tick changed durations: session=%v total=%v", s.Session, s.Total)
	}

	m.OnTick(true, base.Add(10*time.Second))
	m.OnTick(true, base.Add(13*time.Second))
	s = m.Snapshot()
	if s.Session != 3*time.Second || s.Total != 8*time.Second {
		t.Fatalf("second session: session=%v total=%v", s.Session, s.Total)
	}
}

func TestStatsModel_Counters(t *testing.T) {
	m := NewStatsModel()
	m.FrameDispatched(false)
	m.FrameDispatched(true)
	m.InferenceDone(20*time.Millisecond, 3, nil)
	m.InferenceDone(40*time.Millisecond, 0, errors.New("boom"))
	m.ResultDiscarded()
	s := m.Snapshot()
	if s.Dispatched != 2 || s.Dropped != 1 || s.Inferences != 2 || s.Failures != 1 || s.Discarded != 1 {
		t.Fatalf("counters=%+v", s)
	}
	if s.LastCount != 3 || s.LastLatency != 40*time.Millisecond {
		t.Fatalf("last count=%d latency=%v", s.LastCount, s.LastLatency)
	}
}
