package presenter

import (
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/soocke/vision-overlay-go/domain/detection"
)

// PublishedList is the observable list the republisher owns.
type PublishedList interface {
	WillChange()
	Set(detection.List) bool
	NotifyChanged()
	List() detection.List
}

// Poster schedules a function on the UI thread.
type Poster interface{ Post(func()) }

// Republisher turns inference results into updates of the published list.
// Unchanged results are ignored. A changed result announces the change,
// optionally clears the overlay, and publishes after a short delay; a newer
// result arriving in that window replaces the pending one.
//
// All methods must be called on the UI thread.
type Republisher struct {
	model      PublishedList
	ui         Poster
	clock      clock.Clock
	logger     *slog.Logger
	delay      time.Duration
	clearFirst bool

	timer   *clock.Timer
	pending detection.List
	armed   bool
	gen     uint64
}

// NewRepublisher returns a republisher publishing into model. clk may be nil
// for the wall clock.
func NewRepublisher(model PublishedList, ui Poster, clk clock.Clock, delay time.Duration, clearFirst bool, logger *slog.Logger) *Republisher {
	if clk == nil {
		clk = clock.New()
	}
	if delay < 0 {
		delay = 0
	}
	return &Republisher{model: model, ui: ui, clock: clk, delay: delay, clearFirst: clearFirst, logger: logger}
}

// Configure updates timing for future results; a pending publish keeps its
// original deadline.
func (r *Republisher) Configure(delay time.Duration, clearFirst bool) {
	if r == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	r.delay = delay
	r.clearFirst = clearFirst
}

// OnInferenceComplete handles the output of one successful inference pass.
func (r *Republisher) OnInferenceComplete(list detection.List) {
	if r == nil || r.model == nil {
		return
	}
	current := r.pending
	if !r.armed {
		current = r.model.List()
	}
	if current.Equal(list) {
		return
	}
	if r.armed && r.model.List().Equal(list) {
		// Back to what is on screen before the pending publish fired.
		r.Cancel()
		r.model.NotifyChanged()
		return
	}
	r.stopTimer()

	r.model.WillChange()
	if r.clearFirst {
		r.model.Set(nil)
	}
	r.pending = list.Clone()
	r.armed = true
	r.gen++
	gen := r.gen

	if r.delay == 0 || r.ui == nil {
		r.publish(gen)
		return
	}
	r.timer = r.clock.AfterFunc(r.delay, func() {
		r.ui.Post(func() { r.publish(gen) })
	})
}

// Pending reports whether a delayed publish is armed.
func (r *Republisher) Pending() bool { return r != nil && r.armed }

// Cancel drops a pending publish, leaving the published list as is.
func (r *Republisher) Cancel() {
	if r == nil || !r.armed {
		return
	}
	r.stopTimer()
	r.armed = false
	r.pending = nil
	r.gen++
}

// Clear cancels any pending publish and empties the published list.
func (r *Republisher) Clear() {
	if r == nil || r.model == nil {
		return
	}
	r.Cancel()
	if len(r.model.List()) == 0 {
		return
	}
	r.model.WillChange()
	r.model.Set(nil)
}

func (r *Republisher) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Republisher) publish(gen uint64) {
	if !r.armed || gen != r.gen {
		// superseded or cancelled
		return
	}
	list := r.pending
	r.armed = false
	r.pending = nil
	r.timer = nil
	if !r.model.Set(list) {
		// Every WillChange ends with a Changed, even when the list held.
		r.model.NotifyChanged()
		return
	}
	if r.logger != nil {
		r.logger.Debug("detections published", "count", len(list))
	}
}
