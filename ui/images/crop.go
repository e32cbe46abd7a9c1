package images

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// CropPadded copies r, grown by pad pixels on every side, out of frame. The
// rectangle is clamped to the frame bounds and is at least 1x1.
// Returns the crop and the rectangle actually used, in frame coordinates.
func CropPadded(frame image.Image, r image.Rectangle, pad int) (image.Image, image.Rectangle, error) {
	if frame == nil {
		return nil, image.Rectangle{}, errors.New("nil frame")
	}
	b := frame.Bounds()
	if pad < 0 {
		pad = 0
	}
	r = r.Inset(-pad).Intersect(b)
	if r.Empty() {
		return nil, image.Rectangle{}, errors.New("crop outside frame")
	}
	return imaging.Crop(frame, r), r, nil
}
