package view

import (
	"log/slog"
	"strings"

	"github.com/soocke/vision-overlay-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the configuration form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() // parses widget text into underlying config and persists
	Refresh()      // reloads widget text from the config
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	onApply  func()
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget // keyed by config form field id
}

// NewConfigPanel creates the view bound to cfg. onApply runs after a
// successful apply.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApply func()) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApply: onApply, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(startRow int) (row int) {
	values := v.cfg.FormValues()
	row = startRow
	makeRow := func(id, label string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", values[id])
		v.widgets[id] = w
		row++
	}
	makeRow(config.FieldSource, "Source (camera/screen)")
	makeRow(config.FieldCameraDevice, "Camera Device")
	makeRow(config.FieldCaptureIntervalMs, "Capture Interval ms")
	makeRow(config.FieldMinConfidence, "Min Confidence (0-1)")
	makeRow(config.FieldMaxDetections, "Max Detections")
	makeRow(config.FieldPublishDelayMs, "Publish Delay ms")
	makeRow(config.FieldClearBeforePublish, "Clear Before Publish (true/false)")
	makeRow(config.FieldShowLabels, "Show Labels (true/false)")
	makeRow(config.FieldTrackLabel, "Track Label (empty = best)")
	makeRow(config.FieldMotionWindow, "Motion Window Samples")
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.Join(parts, "")
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	values := make(map[string]string, len(v.widgets))
	for id, w := range v.widgets {
		values[id] = v.text(w)
	}
	cfg, invalid := v.cfg.ApplyForm(values)
	if len(invalid) > 0 && v.logger != nil {
		v.logger.Warn("config fields ignored", "fields", invalid)
	}
	*v.cfg = cfg
	v.Refresh()
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	if v.onApply != nil {
		v.onApply()
	}
}

func (v *configPanel) Refresh() {
	if v.cfg == nil {
		return
	}
	values := v.cfg.FormValues()
	for id, w := range v.widgets {
		if w == nil {
			continue
		}
		w.Delete("1.0", END)
		w.Insert("1.0", values[id])
	}
}
