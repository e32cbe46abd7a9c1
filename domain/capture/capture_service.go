package capture

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const captureStatsLogInterval = 5 * time.Second

// CaptureService acquires frames from a Grabber on a background goroutine and
// exposes the latest capture alongside instrumentation data. Use
// NewCaptureService to construct an instance.
type CaptureService interface {
	Start() error
	Stop()
	LatestFrame() FrameSnapshot
	Running() bool
	Stats() CaptureStats
	SetInterval(time.Duration)
}

type captureService struct {
	grabber      Grabber
	interval     atomic.Int64 // nanoseconds
	logger       *slog.Logger
	mu           sync.Mutex // serializes Start/Stop
	running      atomic.Bool
	stop         chan struct{}
	done         chan struct{}
	latest       atomic.Pointer[FrameSnapshot]
	captures     atomic.Uint64
	skipped      atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
}

// NewCaptureService constructs a capture service that pulls frames from
// grabber every interval.
func NewCaptureService(logger *slog.Logger, grabber Grabber, interval time.Duration) CaptureService {
	s := &captureService{grabber: grabber, logger: logger}
	s.SetInterval(interval)
	return s
}

// SetInterval changes the pause between grabs; it applies from the next grab.
func (s *captureService) SetInterval(d time.Duration) {
	if d <= 0 {
		d = time.Millisecond
	}
	s.interval.Store(int64(d))
}

func (s *captureService) LatestFrame() FrameSnapshot {
	snap := s.latest.Load()
	if snap == nil {
		return FrameSnapshot{}
	}
	return *snap
}

func (s *captureService) Running() bool { return s.running.Load() }

func (s *captureService) Stats() CaptureStats {
	captures := s.captures.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
	}
	snapshot := s.LatestFrame()
	age := time.Duration(0)
	if !snapshot.CapturedAt.IsZero() {
		age = time.Since(snapshot.CapturedAt)
	}
	return CaptureStats{
		Captures:       captures,
		Skipped:        s.skipped.Load(),
		AvgCapture:     avg,
		LastCapture:    snapshot.CapturedAt,
		LatestFrameAge: age,
		Sequence:       snapshot.Sequence,
	}
}

// Start opens the grabber and begins capturing. An open failure is returned
// and the service stays stopped. Calling Start on a running service is a no-op.
func (s *captureService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running.Load() {
		return nil
	}
	if s.grabber == nil {
		return ErrCameraUnavailable
	}
	if err := s.grabber.Open(); err != nil {
		if s.logger != nil {
			s.logger.Warn("capture open failed", "error", err)
		}
		return fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}
	// Frames from a previous session must not be mistaken for live ones.
	s.latest.Store(nil)
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.running.Store(true)
	go s.loop(s.stop, s.done)
	if s.logger != nil {
		s.logger.Info("capture session started")
	}
	return nil
}

// Stop halts the capture loop and closes the grabber. It waits for an
// in-progress grab to finish.
func (s *captureService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running.Load() {
		return
	}
	s.running.Store(false)
	close(s.stop)
	<-s.done
	if err := s.grabber.Close(); err != nil && s.logger != nil {
		s.logger.Error("capture close", "error", err)
	}
	if s.logger != nil {
		s.logger.Info("capture session stopped")
	}
}

func (s *captureService) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	logTicker := time.NewTicker(captureStatsLogInterval)
	defer logTicker.Stop()
	for {
		select {
		case <-stop:
			return
		default:
		}

		start := time.Now()
		img, err := s.grabber.Grab()
		if err != nil || img == nil {
			if err != nil && s.logger != nil {
				s.logger.Error("capture grab", "error", err)
			}
			s.skipped.Add(1)
		} else {
			s.captureNanos.Add(uint64(time.Since(start).Nanoseconds()))
			s.captures.Add(1)
			seq := s.sequence.Add(1)
			s.latest.Store(&FrameSnapshot{Image: img, CapturedAt: time.Now(), Sequence: seq})
		}

		select {
		case <-stop:
			return
		case <-logTicker.C:
			s.logStats()
		case <-time.After(time.Duration(s.interval.Load())):
		}
	}
}

func (s *captureService) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"skipped", stats.Skipped,
		"avg_capture", stats.AvgCapture,
		"age", stats.LatestFrameAge,
	)
}
