package presenter

import (
	"image"
	"testing"

	"github.com/soocke/vision-overlay-go/config"
	"github.com/soocke/vision-overlay-go/domain/detection"
	"github.com/soocke/vision-overlay-go/ui/model"
)

type previewRecorder struct {
	previews []image.Image
	crops    []image.Image
}

func (v *previewRecorder) UpdatePreview(img image.Image) { v.previews = append(v.previews, img) }
func (v *previewRecorder) UpdateCrop(img image.Image)    { v.crops = append(v.crops, img) }

type staticFrames struct{ frame *image.RGBA }

func (s staticFrames) ResultFrame() *image.RGBA { return s.frame }

func TestBoxesFor_MapsToViewport(t *testing.T) {
	l := detection.List{{Label: "dog", Confidence: 0.5, Box: detection.NormRect{MinX: 0.25, MinY: 0.5, Width: 0.5, Height: 0.25}}}
	boxes := BoxesFor(l, image.Rect(0, 0, 400, 200), true)
	if len(boxes) != 1 {
		t.Fatalf("boxes=%v", boxes)
	}
	// top = (1 - 0.75) * 200
	if want := image.Rect(100, 50, 300, 100); boxes[0].Rect != want {
		t.Fatalf("rect=%v want %v", boxes[0].Rect, want)
	}
	if boxes[0].Caption != "dog 50%" {
		t.Fatalf("caption=%q", boxes[0].Caption)
	}
	if BoxesFor(nil, image.Rect(0, 0, 1, 1), true) != nil {
		t.Fatalf("expected nil boxes for empty list")
	}
}

func TestOverlayPresenter_RedrawsOnFrameOrListChange(t *testing.T) {
	src := &fakeSource{running: true}
	list := model.NewDetectionModel()
	frame := image.NewRGBA(image.Rect(0, 0, 100, 100))
	view := &previewRecorder{}
	cfg := config.DefaultConfig()
	p := NewOverlayPresenter(src, list, staticFrames{frame: frame}, view, cfg, nil)
	defer p.Close()

	p.Tick() // no frame yet
	src.push(1)
	p.Tick()
	p.Tick() // same frame, list unchanged
	if len(view.previews) != 1 || len(view.crops) != 0 {
		t.Fatalf("previews=%d crops=%d", len(view.previews), len(view.crops))
	}

	list.Set(detection.List{{Label: "cup", Confidence: 0.8, Box: detection.NormRect{MinX: 0.1, MinY: 0.1, Width: 0.3, Height: 0.3}}})
	p.Tick()
	if len(view.previews) != 2 || len(view.crops) != 1 || view.crops[0] == nil {
		t.Fatalf("expected redraw with crop, previews=%d crops=%v", len(view.previews), view.crops)
	}

	list.Set(nil)
	p.Tick()
	if len(view.crops) != 2 || view.crops[1] != nil {
		t.Fatalf("expected crop reset after clear, crops=%v", view.crops)
	}
}

func TestOverlayPresenter_IdleWhenStopped(t *testing.T) {
	src := &fakeSource{}
	src.push(1)
	view := &previewRecorder{}
	p := NewOverlayPresenter(src, model.NewDetectionModel(), nil, view, nil, nil)
	p.Tick()
	if len(view.previews) != 0 {
		t.Fatalf("expected no preview while stopped")
	}
}
