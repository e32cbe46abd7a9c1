package view

import (
	"image"
	"log/slog"

	"github.com/soocke/vision-overlay-go/config"
	"github.com/soocke/vision-overlay-go/domain/capture"
	"github.com/soocke/vision-overlay-go/ui/model"
	"github.com/soocke/vision-overlay-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Stats       StatsPanel
	ConfigPanel ConfigPanel
	Preview     OverlayPreview
	Chart       MotionChart
	Region      RegionSelector

	// Widgets
	StateLabel *LabelWidget
	ToggleBtn  *TButtonWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	SetStateLabel(text string)
	SetConfigEditable(enabled bool)
	UpdatePreview(img image.Image)
	UpdateCrop(img image.Image)
	UpdateChart(png []byte)
	SetStats(s model.Stats, cs capture.CaptureStats, published int, publishes uint64)
	PreviewReset()
	ConfigEditable(bool)
	RefreshConfig()
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout. Handlers are invoked on user actions.
func (rv *RootView) Build(onToggleCapture func(), onConfigApplied func(), onExit func()) {
	if rv == nil {
		return
	}
	// Row 0: stats, state label, buttons frame
	statsFrame := Frame()
	Grid(statsFrame, Row(0), Column(0), Columnspan(2), Sticky("nw"), Padx("0.3m"), Pady("0.3m"))
	rv.Stats = NewStatsPanel(statsFrame, 0, 0)
	rv.StateLabel = Label(Txt("Camera Stopped"), Borderwidth(1), Relief("ridge"))
	Grid(rv.StateLabel, Row(0), Column(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(4), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	rv.ToggleBtn = TButton(Txt("Start / Stop Camera"), Command(onToggleCapture), Style(theme.StylePrimaryButton))
	Grid(rv.ToggleBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.Region = NewRegionSelector(rv.cfg, rv.cfgPath, rv.logger, onConfigApplied)
	regionBtn := Button(Txt("Screen Region"), Command(func() { rv.Region.OpenOrFocus() }))
	Grid(regionBtn, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := TButton(Txt("Exit"), Command(onExit), Style(theme.StyleDangerButton))
	Grid(exitBtn, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Config panel rows
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, onConfigApplied)
	row := rv.ConfigPanel.Build(1)

	rv.Preview = NewOverlayPreview(row, rv.cfg.PreviewW, rv.cfg.PreviewH)
	rv.Chart = NewMotionChart(row+1, 360, 220)
}

// SetStateLabel updates the state label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// SetConfigEditable toggles config panel editability.
func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

// RefreshConfig reloads the form after the config changed on disk.
func (rv *RootView) RefreshConfig() {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.Refresh()
	}
}

func (rv *RootView) UpdatePreview(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdatePreview(img)
	}
}

func (rv *RootView) UpdateCrop(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdateCrop(img)
	}
}

func (rv *RootView) UpdateChart(png []byte) {
	if rv != nil && rv.Chart != nil {
		rv.Chart.UpdateChart(png)
	}
}

// SetStats forwards pipeline statistics to the stats panel.
func (rv *RootView) SetStats(s model.Stats, cs capture.CaptureStats, published int, publishes uint64) {
	if rv == nil || rv.Stats == nil {
		return
	}
	rv.Stats.SetStats(s, cs, published, publishes)
}

// --- CapturePresenter view contract methods ---
// PreviewReset clears the preview and crop.
func (rv *RootView) PreviewReset() {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Reset()
	}
}

// ConfigEditable redirects to SetConfigEditable to satisfy CaptureView interface.
func (rv *RootView) ConfigEditable(b bool) { rv.SetConfigEditable(b) }

var _ UI = (*RootView)(nil)
