package model

import (
	"sync/atomic"
)

// CaptureModel tracks whether the camera session is running. The zero value
// is stopped and usable. Start/stop callbacks arrive off the UI thread.
type CaptureModel struct {
	running atomic.Bool
	frames  atomic.Uint64 // last frame sequence handed to the detector
}

// Running reports whether frames are being captured.
func (m *CaptureModel) Running() bool {
	if m == nil {
		return false
	}
	return m.running.Load()
}

// SetRunning stores the flag and reports whether it changed.
func (m *CaptureModel) SetRunning(b bool) bool {
	if m == nil {
		return false
	}
	return m.running.Swap(b) != b
}

// MarkFrame records the sequence of the newest frame seen.
func (m *CaptureModel) MarkFrame(seq uint64) {
	if m == nil {
		return
	}
	m.frames.Store(seq)
}

// LastFrame returns the newest frame sequence recorded by MarkFrame.
func (m *CaptureModel) LastFrame() uint64 {
	if m == nil {
		return 0
	}
	return m.frames.Load()
}
