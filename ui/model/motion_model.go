package model

import (
	"github.com/soocke/vision-overlay-go/domain/motion"
)

// MotionModel keeps the most recent motion samples in a fixed-size ring.
// Written and read on the UI thread only.
type MotionModel struct {
	buf   []motion.Sample
	start int
	n     int
}

// NewMotionModel returns a model retaining at most window samples.
func NewMotionModel(window int) *MotionModel {
	if window < 2 {
		window = 2
	}
	return &MotionModel{buf: make([]motion.Sample, window)}
}

// Add appends s, evicting the oldest sample when full.
func (m *MotionModel) Add(s motion.Sample) {
	if m == nil {
		return
	}
	if m.n < len(m.buf) {
		m.buf[(m.start+m.n)%len(m.buf)] = s
		m.n++
		return
	}
	m.buf[m.start] = s
	m.start = (m.start + 1) % len(m.buf)
}

// Samples returns the retained samples, oldest first.
func (m *MotionModel) Samples() []motion.Sample {
	if m == nil {
		return nil
	}
	out := make([]motion.Sample, m.n)
	for i := 0; i < m.n; i++ {
		out[i] = m.buf[(m.start+i)%len(m.buf)]
	}
	return out
}

// Len returns the number of retained samples.
func (m *MotionModel) Len() int {
	if m == nil {
		return 0
	}
	return m.n
}

// Resize changes the window, keeping the newest samples.
func (m *MotionModel) Resize(window int) {
	if m == nil {
		return
	}
	if window < 2 {
		window = 2
	}
	if window == len(m.buf) {
		return
	}
	s := m.Samples()
	if len(s) > window {
		s = s[len(s)-window:]
	}
	m.buf = make([]motion.Sample, window)
	m.start = 0
	m.n = copy(m.buf, s)
}

// Clear drops all samples.
func (m *MotionModel) Clear() {
	if m == nil {
		return
	}
	m.start, m.n = 0, 0
}
