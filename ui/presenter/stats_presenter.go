package presenter

import (
	"time"

	"github.com/soocke/vision-overlay-go/domain/capture"
	"github.com/soocke/vision-overlay-go/ui/model"
)

// RunningModel reports whether the camera session is running.
type RunningModel interface{ Running() bool }

// StatsSource supplies capture loop instrumentation.
type StatsSource interface{ Stats() capture.CaptureStats }

// PublishCounter reports published list statistics.
type PublishCounter interface {
	Len() int
	Publishes() uint64
}

// StatsView displays pipeline and session statistics.
type StatsView interface {
	SetStats(s model.Stats, capture capture.CaptureStats, published int, publishes uint64)
}

// StatsPresenter advances the stats model and pushes values to the view.
type StatsPresenter struct {
	stats     *model.StatsModel
	running   RunningModel
	capture   StatsSource
	published PublishCounter
	view      StatsView
	interval  time.Duration
	lastPush  time.Time
}

// NewStatsPresenter returns a presenter refreshing the view at most every
// interval.
func NewStatsPresenter(stats *model.StatsModel, running RunningModel, capture StatsSource, published PublishCounter, view StatsView, interval time.Duration) *StatsPresenter {
	return &StatsPresenter{stats: stats, running: running, capture: capture, published: published, view: view, interval: interval}
}

// Tick updates the session durations and, when due, the view.
func (p *StatsPresenter) Tick(now time.Time) {
	if p == nil || p.stats == nil || p.running == nil || p.view == nil {
		return
	}
	p.stats.OnTick(p.running.Running(), now)
	if !p.lastPush.IsZero() && now.Sub(p.lastPush) < p.interval {
		return
	}
	p.lastPush = now
	var cs capture.CaptureStats
	if p.capture != nil {
		cs = p.capture.Stats()
	}
	var n int
	var pubs uint64
	if p.published != nil {
		n, pubs = p.published.Len(), p.published.Publishes()
	}
	p.view.SetStats(p.stats.Snapshot(), cs, n, pubs)
}
