package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// Each tick first runs work posted from background goroutines, then the
// sub-presenters, then the scheduler callback. The zero value is usable
// (methods are nil-safe).
type Loop struct {
	UI       *Dispatcher
	FSM      *FSMPresenter
	Stats    *StatsPresenter
	Detect   *DetectionPresenter
	Overlay  *OverlayPresenter
	Motion   *MotionPresenter
	Schedule func()
	now      func() time.Time
}

func NewLoop(ui *Dispatcher, fsm *FSMPresenter, stats *StatsPresenter, detect *DetectionPresenter, overlay *OverlayPresenter, motion *MotionPresenter, schedule func()) *Loop {
	return &Loop{UI: ui, FSM: fsm, Stats: stats, Detect: detect, Overlay: overlay, Motion: motion, Schedule: schedule, now: time.Now}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.now != nil {
		now = l.now()
	}
	l.UI.Drain()
	if l.FSM != nil {
		l.FSM.Tick(now)
	}
	if l.Stats != nil {
		l.Stats.Tick(now)
	}
	if l.Detect != nil {
		l.Detect.ProcessFrame()
	}
	if l.Overlay != nil {
		l.Overlay.Tick()
	}
	if l.Motion != nil {
		l.Motion.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
