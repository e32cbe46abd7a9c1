package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/soocke/vision-overlay-go/domain/motion"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestScaleToFit_PreservesAspect(t *testing.T) {
	src := solid(400, 200, color.RGBA{A: 0xff})
	got := ScaleToFit(src, 100, 100)
	if b := got.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("expected 100x50, got %dx%d", b.Dx(), b.Dy())
	}
	if same := ScaleToFit(src, 800, 800); same != image.Image(src) {
		t.Fatalf("expected source returned when it already fits")
	}
	if ScaleToFit(nil, 10, 10) != nil {
		t.Fatalf("expected nil for nil source")
	}
}

func TestCropPadded_ClampsToFrame(t *testing.T) {
	frame := solid(100, 80, color.RGBA{G: 0xff, A: 0xff})
	img, r, err := CropPadded(frame, image.Rect(90, 70, 120, 100), 5)
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if r != image.Rect(85, 65, 100, 80) {
		t.Fatalf("unexpected rect %v", r)
	}
	if b := img.Bounds(); b.Dx() != 15 || b.Dy() != 15 {
		t.Fatalf("unexpected crop size %v", b)
	}
}

func TestCropPadded_OutsideFrame(t *testing.T) {
	frame := solid(10, 10, color.RGBA{A: 0xff})
	if _, _, err := CropPadded(frame, image.Rect(20, 20, 30, 30), 0); err == nil {
		t.Fatalf("expected error for crop outside frame")
	}
	if _, _, err := CropPadded(nil, image.Rect(0, 0, 1, 1), 0); err == nil {
		t.Fatalf("expected error for nil frame")
	}
}

func TestDrawBoxes_OutlinesInRed(t *testing.T) {
	base := solid(50, 50, color.RGBA{A: 0xff})
	style := DefaultOverlayStyle()
	style.Captions = false
	out := DrawBoxes(base, []Box{{Rect: image.Rect(10, 10, 30, 30)}}, style)
	if out.Bounds() != base.Bounds() {
		t.Fatalf("bounds changed: %v", out.Bounds())
	}
	r, g, b, _ := out.At(10, 20).RGBA()
	if r>>8 < 0x80 || g>>8 > 0x40 || b>>8 > 0x40 {
		t.Fatalf("expected red edge pixel, got r=%d g=%d b=%d", r>>8, g>>8, b>>8)
	}
	r, _, _, _ = out.At(20, 20).RGBA()
	if r != 0 {
		t.Fatalf("expected interior untouched, got r=%d", r>>8)
	}
	// base is not modified
	if br, _, _, _ := base.At(10, 20).RGBA(); br != 0 {
		t.Fatalf("base image was modified")
	}
}

func TestRenderMotionChart_ProducesPNG(t *testing.T) {
	samples := []motion.Sample{
		{Elapsed: time.Second, Velocity: 0.2, Acceleration: 0},
		{Elapsed: 2 * time.Second, Velocity: 0.4, Acceleration: 0.2},
		{Elapsed: 3 * time.Second, Velocity: 0.1, Acceleration: -0.3},
	}
	data, err := RenderMotionChart(samples, 320, 200)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() < 300 || b.Dx() > 340 {
		t.Fatalf("unexpected chart width %d", b.Dx())
	}
	if _, err := RenderMotionChart(samples, 0, 10); err == nil {
		t.Fatalf("expected size error")
	}
}
