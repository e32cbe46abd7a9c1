package view

import (
	"image"

	"github.com/soocke/vision-overlay-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// OverlayPreview shows the annotated camera frame and the crop of the top
// detection. It owns two LabelWidgets and disposes replaced photos.
type OverlayPreview interface {
	UpdatePreview(img image.Image)
	UpdateCrop(img image.Image)
	Reset()
}

type overlayPreview struct {
	previewLabel *LabelWidget
	cropLabel    *LabelWidget
	prevPreview  *Img
	prevCrop     *Img
	placeholderW int
	placeholderH int
}

// NewOverlayPreview creates the preview labels at row. The preview spans
// columns 0-3 and the crop sits in column 4.
func NewOverlayPreview(row, w, h int) OverlayPreview {
	v := &overlayPreview{placeholderW: w, placeholderH: h}
	v.prevPreview = NewPhoto(Data(placeholder(w, h)))
	v.prevCrop = NewPhoto(Data(placeholder(w/3, h/3)))
	v.previewLabel = Label(Image(v.prevPreview), Borderwidth(1), Relief("sunken"))
	v.cropLabel = Label(Image(v.prevCrop), Borderwidth(1), Relief("sunken"))
	Grid(v.previewLabel, Row(row), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	Grid(v.cropLabel, Row(row), Column(4), Columnspan(1), Sticky("n"), Padx("0.4m"), Pady("0.4m"))
	return v
}

func placeholder(w, h int) []byte {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return images.EncodePNG(image.NewRGBA(image.Rect(0, 0, w, h)))
}

func (v *overlayPreview) UpdatePreview(img image.Image) {
	if v.previewLabel == nil || img == nil {
		return
	}
	v.prevPreview = swapPhoto(v.previewLabel, v.prevPreview, images.EncodePNG(img))
}

func (v *overlayPreview) UpdateCrop(img image.Image) {
	if v.cropLabel == nil {
		return
	}
	if img == nil {
		v.prevCrop = swapPhoto(v.cropLabel, v.prevCrop, placeholder(v.placeholderW/3, v.placeholderH/3))
		return
	}
	v.prevCrop = swapPhoto(v.cropLabel, v.prevCrop, images.EncodePNG(img))
}

func (v *overlayPreview) Reset() {
	if v.previewLabel != nil {
		v.prevPreview = swapPhoto(v.previewLabel, v.prevPreview, placeholder(v.placeholderW, v.placeholderH))
	}
	v.UpdateCrop(nil)
}

// swapPhoto replaces the label image and frees the previous photo.
func swapPhoto(l *LabelWidget, prev *Img, png []byte) *Img {
	if prev != nil {
		prev.Delete()
	}
	next := NewPhoto(Data(png))
	l.Configure(Image(next))
	return next
}
