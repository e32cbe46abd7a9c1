package app

import (
	"image"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/soocke/vision-overlay-go/assets"
	"github.com/soocke/vision-overlay-go/config"
	"github.com/soocke/vision-overlay-go/domain/capture"
	"github.com/soocke/vision-overlay-go/domain/detection"
	"github.com/soocke/vision-overlay-go/domain/session"
	"github.com/soocke/vision-overlay-go/ui/model"
	"github.com/soocke/vision-overlay-go/ui/presenter"
	"github.com/soocke/vision-overlay-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	// Models
	Capture   *model.CaptureModel
	Stats     *model.StatsModel
	Detection *model.DetectionModel
	Motion    *model.MotionModel

	// Services
	Grabber    *capture.SelectableGrabber
	CaptureSvc capture.CaptureService
	Backend    detection.Backend
	FSM        session.Contract
	UI         *presenter.Dispatcher
	RootView   *view.RootView

	// Presenters
	Republisher        *presenter.Republisher
	FSMPresenter       *presenter.FSMPresenter
	StatsPresenter     *presenter.StatsPresenter
	DetectionPresenter *presenter.DetectionPresenter
	OverlayPresenter   *presenter.OverlayPresenter
	MotionPresenter    *presenter.MotionPresenter
	CapturePresenter   *presenter.CapturePresenter
	Loop               *presenter.Loop
}

// BuildContainer constructs models and services. A backend that fails to
// load is logged and detection stays disabled.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string) *AppContainer {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}
	c.Capture = &model.CaptureModel{}
	c.Stats = model.NewStatsModel()
	c.Detection = model.NewDetectionModel()
	c.Motion = model.NewMotionModel(cfg.MotionWindow)

	c.Grabber = &capture.SelectableGrabber{}
	c.Grabber.Select(NewGrabber(cfg))
	c.CaptureSvc = capture.NewCaptureService(logger, c.Grabber, cfg.CaptureInterval())

	backend, err := NewBackend(cfg)
	if err != nil {
		if logger != nil {
			logger.Error("detection backend unavailable", "backend", cfg.Backend, "model", cfg.ModelPath, "error", err)
		}
		backend = nil
	}
	c.Backend = backend

	c.FSM = session.NewFSM(logger)
	c.UI = presenter.NewDispatcher()
	c.Republisher = presenter.NewRepublisher(c.Detection, c.UI, clock.New(), cfg.PublishDelay(), cfg.ClearBeforePublish, logger)
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	return c
}

// WirePresenters connects presenters to the built view. Call after
// RootView.Build.
func (c *AppContainer) WirePresenters(schedule func()) {
	c.FSMPresenter = presenter.NewFSMPresenter(c.FSM, c.RootView)
	c.FSM.AddListener(func(prev, next session.State) { c.FSMPresenter.OnState(next) })
	c.StatsPresenter = presenter.NewStatsPresenter(c.Stats, c.Capture, c.CaptureSvc, c.Detection, c.RootView, 500*time.Millisecond)
	c.MotionPresenter = presenter.NewMotionPresenter(c.Motion, c.RootView, c.Config, nil, c.Logger)
	c.DetectionPresenter = presenter.NewDetectionPresenter(c.CaptureSvc, c.Backend, c.Config, c.Stats, c.Logger, c.Republisher, c.MotionPresenter)
	c.OverlayPresenter = presenter.NewOverlayPresenter(c.CaptureSvc, c.Detection, c.DetectionPresenter, c.RootView, c.Config, c.Logger)
	c.CapturePresenter = presenter.NewCapturePresenter(c.Capture, c.CaptureSvc, c.FSM, c.RootView, c.UI, c.Logger)
	c.CapturePresenter.Detect = c.DetectionPresenter
	c.CapturePresenter.Overlay = c.Republisher
	c.CapturePresenter.Motion = c.MotionPresenter
	c.Loop = presenter.NewLoop(c.UI, c.FSMPresenter, c.StatsPresenter, c.DetectionPresenter, c.OverlayPresenter, c.MotionPresenter, schedule)
}

// ApplyConfig pushes the current config into running components.
func (c *AppContainer) ApplyConfig() {
	c.Republisher.Configure(c.Config.PublishDelay(), c.Config.ClearBeforePublish)
	c.CaptureSvc.SetInterval(c.Config.CaptureInterval())
	c.Grabber.Select(NewGrabber(c.Config))
	if c.MotionPresenter != nil {
		c.MotionPresenter.ApplyConfig()
	}
}

// Close releases services. The capture session is stopped first so no frame
// reaches a closed backend.
func (c *AppContainer) Close() {
	c.CaptureSvc.Stop()
	if c.OverlayPresenter != nil {
		c.OverlayPresenter.Close()
	}
	if c.DetectionPresenter != nil {
		c.DetectionPresenter.Close()
	}
	if c.Backend != nil {
		if err := c.Backend.Close(); err != nil && c.Logger != nil {
			c.Logger.Error("backend close", "error", err)
		}
	}
	c.FSM.Close()
}

// NewGrabber returns the frame source named by cfg.Source.
func NewGrabber(cfg *config.Config) capture.Grabber {
	if cfg.Source == config.SourceScreen {
		var region image.Rectangle
		if cfg.ScreenW > 0 && cfg.ScreenH > 0 {
			region = image.Rect(cfg.ScreenX, cfg.ScreenY, cfg.ScreenX+cfg.ScreenW, cfg.ScreenY+cfg.ScreenH)
		}
		return capture.NewScreenGrabber(region)
	}
	return capture.NewCameraGrabber(cfg.CameraDevice)
}

// NewBackend loads the configured model with its labels.
func NewBackend(cfg *config.Config) (detection.Backend, error) {
	labels, err := assets.LoadLabels(cfg.LabelsPath)
	if err != nil {
		return nil, err
	}
	return detection.NewBackend(cfg.Backend, detection.Options{
		ModelPath:   cfg.ModelPath,
		LibraryPath: cfg.LibraryPath,
		Labels:      labels,
		InputSize:   cfg.InputSize,
		Confidence:  float32(cfg.Confidence),
		NMS:         float32(cfg.NMSThreshold),
	})
}
