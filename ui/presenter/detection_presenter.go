package presenter

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime/debug"
	"slices"
	"sync"
	"time"

	"github.com/soocke/vision-overlay-go/config"
	"github.com/soocke/vision-overlay-go/domain/capture"
	"github.com/soocke/vision-overlay-go/domain/detection"
)

// FrameSource supplies the most recent captured frame.
type FrameSource interface {
	Running() bool
	LatestFrame() capture.FrameSnapshot
}

// ResultSink consumes the filtered output of a successful inference pass.
// Sinks are called on the UI thread.
type ResultSink interface {
	OnInferenceComplete(detection.List)
}

// TimedResultSink is a ResultSink that also wants the capture time of the
// frame behind the pass.
type TimedResultSink interface {
	ResultSink
	OnInferenceCompleteAt(list detection.List, capturedAt time.Time)
}

// DetectionStats receives pipeline counters.
type DetectionStats interface {
	FrameDispatched(replaced bool)
	InferenceDone(latency time.Duration, count int, err error)
	ResultDiscarded()
}

type detectionTask struct {
	snapshot   capture.FrameSnapshot
	generation uint64
	cfg        *config.Config
}

type detectionResult struct {
	generation uint64
	sequence   uint64
	capturedAt time.Time
	frame      *image.RGBA
	results    []detection.Result
	err        error
	duration   time.Duration
}

// DetectionPresenter hands the newest captured frame to a single background
// worker and routes finished passes to the sinks. At most one inference runs
// at a time; a frame waiting for the worker is replaced by a newer one.
type DetectionPresenter struct {
	Source  FrameSource
	Backend detection.Backend // nil disables detection
	Sinks   []ResultSink
	Stats   DetectionStats
	Config  *config.Config
	logger  *slog.Logger

	workerOnce sync.Once
	workCh     chan detectionTask
	resultCh   chan detectionResult
	ctx        context.Context
	cancel     context.CancelFunc
	closed     bool

	lastSeq     uint64
	generation  uint64
	resultFrame *image.RGBA
}

// NewDetectionPresenter constructs a detection presenter.
func NewDetectionPresenter(source FrameSource, backend detection.Backend, cfg *config.Config, stats DetectionStats, logger *slog.Logger, sinks ...ResultSink) *DetectionPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &DetectionPresenter{
		Source:   source,
		Backend:  backend,
		Sinks:    sinks,
		Stats:    stats,
		Config:   cfg,
		logger:   logger,
		workCh:   make(chan detectionTask, 1),
		resultCh: make(chan detectionResult, 1),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// ProcessFrame handles finished passes and dispatches the latest unseen frame.
// Call from the UI tick.
func (p *DetectionPresenter) ProcessFrame() {
	if p == nil || p.Source == nil || p.closed {
		return
	}

	p.ensureWorker()

	for {
		select {
		case res := <-p.resultCh:
			p.handleResult(res)
		default:
			goto drained
		}
	}

drained:
	if p.Backend == nil || !p.Source.Running() {
		return
	}
	snapshot := p.Source.LatestFrame()
	if snapshot.Image == nil || snapshot.Sequence == 0 || snapshot.Sequence == p.lastSeq {
		return
	}
	p.lastSeq = snapshot.Sequence
	p.dispatchTask(detectionTask{
		snapshot:   snapshot,
		generation: p.generation,
		cfg:        p.copyConfig(),
	})
}

// Reset starts a new session generation. Passes still running for the old
// generation are discarded when they finish.
func (p *DetectionPresenter) Reset() {
	if p == nil {
		return
	}
	p.generation++
	p.lastSeq = 0
	p.resultFrame = nil
	select {
	case <-p.workCh:
	default:
	}
}

// ResultFrame returns the frame behind the most recent successful pass.
func (p *DetectionPresenter) ResultFrame() *image.RGBA {
	if p == nil {
		return nil
	}
	return p.resultFrame
}

// Close stops the worker. The backend is owned by the caller.
func (p *DetectionPresenter) Close() {
	if p == nil || p.closed {
		return
	}
	p.closed = true
	p.cancel()
	close(p.workCh)
}

func (p *DetectionPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *DetectionPresenter) runWorker() {
	defer func() {
		if r := recover(); r != nil && p.logger != nil {
			p.logger.Error("detection worker panic", "error", r, "stack", string(debug.Stack()))
		}
	}()
	for task := range p.workCh {
		res := p.executeTask(task)
		select {
		case p.resultCh <- res:
		default:
			select {
			case <-p.resultCh:
			default:
			}
			select {
			case p.resultCh <- res:
			default:
			}
		}
	}
}

func (p *DetectionPresenter) dispatchTask(task detectionTask) {
	replaced := false
	select {
	case p.workCh <- task:
	default:
		select {
		case <-p.workCh:
			replaced = true
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
	if p.Stats != nil {
		p.Stats.FrameDispatched(replaced)
	}
}

// executeTask runs one pass. A panic inside the backend fails only this
// pass; the worker keeps serving frames.
func (p *DetectionPresenter) executeTask(task detectionTask) (res detectionResult) {
	res = detectionResult{
		generation: task.generation,
		sequence:   task.snapshot.Sequence,
		capturedAt: task.snapshot.CapturedAt,
		frame:      task.snapshot.Image,
	}
	if task.snapshot.Image == nil {
		res.err = errors.New("nil frame")
		return res
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			if p.logger != nil {
				p.logger.Error("detection backend panic", "error", r, "sequence", task.snapshot.Sequence, "stack", string(debug.Stack()))
			}
			res.results = nil
			res.duration = time.Since(start)
			res.err = &detection.InferenceError{Backend: "worker", Stage: "panic", Cause: fmt.Errorf("%v", r)}
		}
	}()
	res.results, res.err = p.Backend.Infer(p.ctx, task.snapshot.Image)
	res.duration = time.Since(start)
	if res.err == nil {
		res.results = filterResults(res.results, task.cfg)
	}
	return res
}

func (p *DetectionPresenter) handleResult(res detectionResult) {
	if res.generation != p.generation {
		if p.Stats != nil {
			p.Stats.ResultDiscarded()
		}
		return
	}
	if p.Stats != nil {
		p.Stats.InferenceDone(res.duration, len(res.results), res.err)
	}
	if res.err != nil {
		if p.logger != nil {
			p.logger.Error("detection", "error", res.err, "sequence", res.sequence)
		}
		return
	}
	p.resultFrame = res.frame
	list := detection.NewList(res.results)
	for _, s := range p.Sinks {
		if ts, ok := s.(TimedResultSink); ok {
			ts.OnInferenceCompleteAt(list, res.capturedAt)
			continue
		}
		s.OnInferenceComplete(list)
	}
}

func (p *DetectionPresenter) copyConfig() *config.Config {
	if p.Config == nil {
		return config.DefaultConfig()
	}
	clone := *p.Config
	return &clone
}

// filterResults drops detections under the configured confidence floor and
// keeps the strongest MaxDetections, highest confidence first.
func filterResults(in []detection.Result, cfg *config.Config) []detection.Result {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	out := make([]detection.Result, 0, len(in))
	for _, r := range in {
		if float64(r.Confidence) < cfg.MinConfidence {
			continue
		}
		out = append(out, r)
	}
	slices.SortStableFunc(out, func(a, b detection.Result) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	if cfg.MaxDetections > 0 && len(out) > cfg.MaxDetections {
		out = out[:cfg.MaxDetections]
	}
	return out
}
