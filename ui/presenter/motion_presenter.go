package presenter

import (
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/soocke/vision-overlay-go/config"
	"github.com/soocke/vision-overlay-go/domain/detection"
	"github.com/soocke/vision-overlay-go/domain/motion"
	"github.com/soocke/vision-overlay-go/ui/images"
	"github.com/soocke/vision-overlay-go/ui/model"
)

// ChartView displays a rendered chart image.
type ChartView interface {
	UpdateChart(png []byte)
}

// MotionPresenter tracks the center of the best detection across inference
// passes and redraws the velocity chart at most every interval.
type MotionPresenter struct {
	tracker  *motion.Tracker
	series   *model.MotionModel
	view     ChartView
	cfg      *config.Config
	clock    clock.Clock
	logger   *slog.Logger
	interval time.Duration
	width    int
	height   int

	dirty      bool
	lastRender time.Time
}

func NewMotionPresenter(series *model.MotionModel, view ChartView, cfg *config.Config, clk clock.Clock, logger *slog.Logger) *MotionPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if clk == nil {
		clk = clock.New()
	}
	return &MotionPresenter{
		tracker:  motion.NewTracker(),
		series:   series,
		view:     view,
		cfg:      cfg,
		clock:    clk,
		logger:   logger,
		interval: 500 * time.Millisecond,
		width:    360,
		height:   220,
	}
}

// OnInferenceComplete feeds the best matching detection to the tracker,
// stamped with the current time.
func (p *MotionPresenter) OnInferenceComplete(list detection.List) {
	if p == nil {
		return
	}
	p.OnInferenceCompleteAt(list, p.clock.Now())
}

// OnInferenceCompleteAt feeds the best matching detection to the tracker,
// stamped with the capture time of its frame. Passes without a match leave
// the history untouched.
func (p *MotionPresenter) OnInferenceCompleteAt(list detection.List, capturedAt time.Time) {
	if p == nil || p.series == nil {
		return
	}
	if capturedAt.IsZero() {
		capturedAt = p.clock.Now()
	}
	best, ok := list.Best(p.cfg.TrackLabel)
	if !ok {
		return
	}
	x, y := best.Box.Center()
	if s, ok := p.tracker.Observe(motion.Point{X: x, Y: y}, capturedAt); ok {
		p.series.Add(s)
		p.dirty = true
	}
}

var _ TimedResultSink = (*MotionPresenter)(nil)

// Reset forgets the tracked object and clears the chart.
func (p *MotionPresenter) Reset() {
	if p == nil {
		return
	}
	p.tracker.Reset()
	p.series.Clear()
	p.dirty = true
}

// ApplyConfig resizes the retained window after a config change.
func (p *MotionPresenter) ApplyConfig() {
	if p == nil || p.series == nil {
		return
	}
	p.series.Resize(p.cfg.MotionWindow)
	p.dirty = true
}

// Tick re-renders the chart when samples changed and the interval passed.
func (p *MotionPresenter) Tick(now time.Time) {
	if p == nil || p.view == nil || !p.dirty {
		return
	}
	if !p.lastRender.IsZero() && now.Sub(p.lastRender) < p.interval {
		return
	}
	p.lastRender = now
	p.dirty = false
	png, err := images.RenderMotionChart(p.series.Samples(), p.width, p.height)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("motion chart", "error", err)
		}
		return
	}
	p.view.UpdateChart(png)
}
