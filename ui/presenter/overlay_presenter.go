package presenter

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/vision-overlay-go/config"
	"github.com/soocke/vision-overlay-go/domain/detection"
	"github.com/soocke/vision-overlay-go/ui/images"
	"github.com/soocke/vision-overlay-go/ui/model"
)

// cropPad is the margin kept around the cropped detection, in frame pixels.
const cropPad = 8

// ObservableList is the published detection list as seen by the overlay.
type ObservableList interface {
	List() detection.List
	Subscribe(model.Observer) (cancel func())
}

// ResultFrames returns the frame behind the latest inference pass.
type ResultFrames interface {
	ResultFrame() *image.RGBA
}

// PreviewView shows the annotated preview and the top detection crop.
// A nil crop resets it to the placeholder.
type PreviewView interface {
	UpdatePreview(img image.Image)
	UpdateCrop(img image.Image)
}

// OverlayPresenter draws the published detections over the live preview.
// It redraws when a new frame arrives or the published list changes.
type OverlayPresenter struct {
	source  FrameSource
	list    ObservableList
	results ResultFrames
	view    PreviewView
	cfg     *config.Config
	logger  *slog.Logger
	style   images.OverlayStyle

	cancel  func()
	lastSeq uint64
	dirty   bool
}

func NewOverlayPresenter(source FrameSource, list ObservableList, results ResultFrames, view PreviewView, cfg *config.Config, logger *slog.Logger) *OverlayPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	p := &OverlayPresenter{source: source, list: list, results: results, view: view, cfg: cfg, logger: logger, style: images.DefaultOverlayStyle()}
	if list != nil {
		p.cancel = list.Subscribe(p.observe)
	}
	return p
}

func (p *OverlayPresenter) observe(ev model.Event, l detection.List) {
	switch ev {
	case model.EventWillChange:
		if p.logger != nil {
			p.logger.Debug("overlay will change", "visible", len(l))
		}
	case model.EventChanged:
		p.dirty = true
	}
}

// Tick redraws the preview when needed. Call from the UI tick.
func (p *OverlayPresenter) Tick() {
	if p == nil || p.source == nil || p.view == nil {
		return
	}
	if !p.source.Running() {
		return
	}
	snap := p.source.LatestFrame()
	if snap.Image == nil {
		return
	}
	if snap.Sequence == p.lastSeq && !p.dirty {
		return
	}
	p.lastSeq = snap.Sequence

	var list detection.List
	if p.list != nil {
		list = p.list.List()
	}
	scaled := images.ScaleToFit(snap.Image, p.cfg.PreviewW, p.cfg.PreviewH)
	p.style.Captions = p.cfg.ShowLabels
	p.view.UpdatePreview(images.DrawBoxes(scaled, BoxesFor(list, scaled.Bounds(), p.cfg.ShowLabels), p.style))

	if p.dirty {
		p.dirty = false
		p.updateCrop(list)
	}
}

func (p *OverlayPresenter) updateCrop(list detection.List) {
	best, ok := list.Best(p.cfg.TrackLabel)
	var frame *image.RGBA
	if p.results != nil {
		frame = p.results.ResultFrame()
	}
	if !ok || frame == nil {
		p.view.UpdateCrop(nil)
		return
	}
	b := frame.Bounds()
	r := detection.MapToScreen(best.Box, detection.SizeOf(b)).Rectangle().Add(b.Min)
	crop, _, err := images.CropPadded(frame, r, cropPad)
	if err != nil {
		if p.logger != nil {
			p.logger.Debug("detection crop", "error", err, "label", best.Label)
		}
		p.view.UpdateCrop(nil)
		return
	}
	p.view.UpdateCrop(images.ScaleToFit(crop, p.cfg.PreviewW/3, p.cfg.PreviewH/3))
}

// Close stops observing the list.
func (p *OverlayPresenter) Close() {
	if p != nil && p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// BoxesFor maps detections onto a viewport occupying bounds.
func BoxesFor(list detection.List, bounds image.Rectangle, captions bool) []images.Box {
	if len(list) == 0 {
		return nil
	}
	vp := detection.SizeOf(bounds)
	out := make([]images.Box, 0, len(list))
	for _, d := range list {
		b := images.Box{Rect: detection.MapToScreen(d.Box, vp).Rectangle().Add(bounds.Min)}
		if captions {
			b.Caption = fmt.Sprintf("%s %.0f%%", d.Label, d.Confidence*100)
		}
		out = append(out, b)
	}
	return out
}
