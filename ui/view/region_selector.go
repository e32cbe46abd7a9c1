package view

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/vision-overlay-go/config"
	"github.com/soocke/vision-overlay-go/domain/capture"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// RegionSelector opens a see-through window the user positions over the part
// of the screen the screen source should capture.
type RegionSelector interface {
	OpenOrFocus()
	Clear()
	Region() image.Rectangle
}

type regionSelector struct {
	logger  *slog.Logger
	cfg     *config.Config
	cfgPath string
	onSave  func()
	win     *ToplevelWidget
}

// NewRegionSelector creates a selector persisting into cfg. onSave runs after
// the region changed.
func NewRegionSelector(cfg *config.Config, cfgPath string, logger *slog.Logger, onSave func()) RegionSelector {
	return &regionSelector{logger: logger, cfg: cfg, cfgPath: cfgPath, onSave: onSave}
}

// Region returns the configured screen region; empty means full screen.
func (v *regionSelector) Region() image.Rectangle {
	if v.cfg == nil || v.cfg.ScreenW <= 0 || v.cfg.ScreenH <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(v.cfg.ScreenX, v.cfg.ScreenY, v.cfg.ScreenX+v.cfg.ScreenW, v.cfg.ScreenY+v.cfg.ScreenH)
}

func (v *regionSelector) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel(Borderwidth(2), Background("#008080"))
	win.WmTitle("Screen Region")
	v.win = win
	r := v.Region()
	if r.Empty() {
		r = image.Rect(320, 180, 960, 540)
	}
	WmGeometry(win.Window, fmt.Sprintf("%dx%d+%d+%d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y))
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-alpha", 0.4)
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(1))
	center := win.Frame(Background("#008080"))
	Grid(center, Row(0), Column(0), Sticky("nsew"))
	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Sticky("we"))
	confirm := win.Button(Txt("Confirm [Enter]"), Command(v.confirm))
	Grid(confirm, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.cancel))
	Grid(cancel, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	clear := win.Button(Txt("Full Screen"), Command(func() { v.Clear(); v.destroy() }))
	Grid(clear, In(controls), Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.cancel))
}

func (v *regionSelector) Clear() {
	if v.cfg == nil {
		return
	}
	v.cfg.ScreenX, v.cfg.ScreenY, v.cfg.ScreenW, v.cfg.ScreenH = 0, 0, 0, 0
	v.save()
}

func (v *regionSelector) confirm() {
	if v.win == nil {
		return
	}
	geom := WmGeometry(v.win.Window)
	if rect, ok := capture.ParseGeometry(geom); ok && v.cfg != nil {
		v.cfg.ScreenX, v.cfg.ScreenY = rect.Min.X, rect.Min.Y
		v.cfg.ScreenW, v.cfg.ScreenH = rect.Dx(), rect.Dy()
		v.save()
	} else if v.logger != nil {
		v.logger.Warn("region geometry parse failed", "geometry", geom)
	}
	v.destroy()
}

func (v *regionSelector) save() {
	if err := v.cfg.Save(v.cfgPath); err != nil && v.logger != nil {
		v.logger.Error("config save failed", "error", err)
	}
	if v.onSave != nil {
		v.onSave()
	}
}

func (v *regionSelector) cancel() { v.destroy() }

func (v *regionSelector) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}
