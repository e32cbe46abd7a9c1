package motion

import (
	"math"
	"time"
)

// Point is a position in normalized frame coordinates.
type Point struct {
	X, Y float64
}

// Sample is one motion measurement. Elapsed is measured from the first
// observation since the last Reset.
type Sample struct {
	Elapsed      time.Duration
	Velocity     float64 // normalized units per second
	Acceleration float64 // normalized units per second squared
}

// Tracker derives speed and acceleration from successive object centers.
// It is not safe for concurrent use.
type Tracker struct {
	start   time.Time
	prev    Point
	prevAt  time.Time
	prevVel float64
	n       int
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker { return &Tracker{} }

// Observe records p at time at and reports a sample once two positions are
// known. Observations that do not advance time are ignored.
func (t *Tracker) Observe(p Point, at time.Time) (Sample, bool) {
	if t.n == 0 {
		t.start, t.prev, t.prevAt = at, p, at
		t.n = 1
		return Sample{}, false
	}
	dt := at.Sub(t.prevAt).Seconds()
	if dt <= 0 {
		return Sample{}, false
	}
	vel := math.Hypot(p.X-t.prev.X, p.Y-t.prev.Y) / dt
	acc := 0.0
	// first velocity has no predecessor to differentiate against
	if t.n > 1 {
		acc = (vel - t.prevVel) / dt
	}
	t.prev, t.prevAt, t.prevVel = p, at, vel
	t.n++
	return Sample{Elapsed: at.Sub(t.start), Velocity: vel, Acceleration: acc}, true
}

// Reset forgets all history, e.g. when the tracked object disappears.
func (t *Tracker) Reset() { *t = Tracker{} }
