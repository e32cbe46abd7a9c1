package images

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Box is one rectangle to draw, in the target image's pixel coordinates.
type Box struct {
	Rect    image.Rectangle
	Caption string
}

// OverlayStyle controls box rendering.
type OverlayStyle struct {
	Stroke    color.Color
	LineWidth float64
	Captions  bool
	TextColor color.Color
}

// DefaultOverlayStyle draws 2px red outlines with white captions.
func DefaultOverlayStyle() OverlayStyle {
	return OverlayStyle{
		Stroke:    color.RGBA{R: 0xff, A: 0xff},
		LineWidth: 2,
		Captions:  true,
		TextColor: color.White,
	}
}

// DrawBoxes returns a copy of base with boxes outlined on top. Boxes with no
// area are skipped.
func DrawBoxes(base image.Image, boxes []Box, style OverlayStyle) image.Image {
	if base == nil {
		return nil
	}
	dc := gg.NewContextForImage(base)
	if len(boxes) == 0 {
		return dc.Image()
	}
	if style.LineWidth <= 0 {
		style.LineWidth = 2
	}
	dc.SetLineWidth(style.LineWidth)
	for _, b := range boxes {
		r := b.Rect.Sub(base.Bounds().Min)
		if r.Empty() {
			continue
		}
		dc.SetColor(style.Stroke)
		dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
		dc.Stroke()
		if !style.Captions || b.Caption == "" {
			continue
		}
		tw, th := dc.MeasureString(b.Caption)
		ty := float64(r.Min.Y) - 2
		if ty-th < 0 {
			// no room above the box
			ty = float64(r.Min.Y) + th + 2
		}
		dc.SetColor(style.Stroke)
		dc.DrawRectangle(float64(r.Min.X), ty-th-2, tw+4, th+4)
		dc.Fill()
		dc.SetColor(style.TextColor)
		dc.DrawString(b.Caption, float64(r.Min.X)+2, ty)
	}
	return dc.Image()
}
