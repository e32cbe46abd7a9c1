package presenter

import (
	"log/slog"

	"github.com/soocke/vision-overlay-go/domain/session"
)

// CaptureModel provides running state access.
type CaptureModel interface {
	Running() bool
	SetRunning(bool) bool
}

// LifecycleContract narrows what the presenter needs from the capture layer.
type LifecycleContract interface {
	Start() error
	Stop()
}

// CaptureFSM exposes the session events driven by this presenter.
type CaptureFSM interface {
	EventStart()
	EventStarted()
	EventUnavailable(error)
	EventStop()
}

// CaptureView updates UI elements affected by starting and stopping.
// The status label is owned by FSMPresenter.
type CaptureView interface {
	PreviewReset()
	ConfigEditable(bool)
}

// SessionResetter is told when a session ends so in-flight work is dropped.
type SessionResetter interface{ Reset() }

// OverlayClearer empties the published detections.
type OverlayClearer interface{ Clear() }

// CapturePresenter owns presentation logic for starting and stopping the
// camera session. Opening a camera may block on a permission prompt, so Start
// runs off the UI thread and reports back through the dispatcher.
type CapturePresenter struct {
	model   CaptureModel
	service LifecycleContract
	fsm     CaptureFSM
	view    CaptureView
	ui      Poster
	logger  *slog.Logger

	Detect  SessionResetter
	Overlay OverlayClearer
	Motion  SessionResetter

	starting  bool
	abortNext bool
	// async runs blocking work; tests replace it to run inline.
	async func(func())
}

func NewCapturePresenter(model CaptureModel, service LifecycleContract, fsm CaptureFSM, view CaptureView, ui Poster, logger *slog.Logger) *CapturePresenter {
	return &CapturePresenter{
		model:   model,
		service: service,
		fsm:     fsm,
		view:    view,
		ui:      ui,
		logger:  logger,
		async:   func(fn func()) { go fn() },
	}
}

func (c *CapturePresenter) ready() bool {
	return c != nil && c.model != nil && c.service != nil && c.view != nil && c.fsm != nil && c.ui != nil
}

// Enable starts the capture service. Idempotent.
func (c *CapturePresenter) Enable() {
	if !c.ready() {
		return
	}
	if c.model.Running() || c.starting {
		c.abortNext = false
		return
	}
	c.starting = true
	c.abortNext = false
	c.fsm.EventStart()
	c.view.ConfigEditable(false)
	c.async(func() {
		err := c.service.Start()
		c.ui.Post(func() { c.started(err) })
	})
}

func (c *CapturePresenter) started(err error) {
	c.starting = false
	if err != nil {
		if c.logger != nil {
			c.logger.Error("capture start", "error", err)
		}
		c.fsm.EventUnavailable(err)
		c.view.ConfigEditable(true)
		return
	}
	c.model.SetRunning(true)
	c.fsm.EventStarted()
	if c.abortNext {
		// stop was requested while the device was opening
		c.abortNext = false
		c.Disable()
	}
}

// Disable stops the capture service, drops pending detections and resets
// the preview. Idempotent.
func (c *CapturePresenter) Disable() {
	if !c.ready() {
		return
	}
	if c.starting {
		c.abortNext = true
		return
	}
	if !c.model.Running() {
		return
	}
	c.service.Stop()
	c.model.SetRunning(false)
	if c.Detect != nil {
		c.Detect.Reset()
	}
	if c.Overlay != nil {
		c.Overlay.Clear()
	}
	if c.Motion != nil {
		c.Motion.Reset()
	}
	c.view.PreviewReset()
	c.fsm.EventStop()
	c.view.ConfigEditable(true)
}

// Toggle flips running state delegating to Enable/Disable.
func (c *CapturePresenter) Toggle() {
	if !c.ready() {
		return
	}
	if c.model.Running() || (c.starting && !c.abortNext) {
		c.Disable()
		return
	}
	c.Enable()
}

var _ CaptureFSM = (session.Contract)(nil)
