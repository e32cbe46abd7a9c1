package detection

import (
	"image"
	"math"

	"github.com/google/uuid"
)

// NormRect is a bounding box expressed as fractions of the image size.
// The origin is the bottom-left corner of the image.
type NormRect struct {
	MinX   float64
	MinY   float64
	Width  float64
	Height float64
}

// MaxX returns the right edge.
func (r NormRect) MaxX() float64 { return r.MinX + r.Width }

// MaxY returns the top edge (bottom-left origin).
func (r NormRect) MaxY() float64 { return r.MinY + r.Height }

// Center returns the midpoint of the rectangle.
func (r NormRect) Center() (x, y float64) {
	return r.MinX + r.Width/2, r.MinY + r.Height/2
}

// Size is a viewport size in device pixels.
type Size struct {
	Width  float64
	Height float64
}

// SizeOf returns the size of b.
func SizeOf(b image.Rectangle) Size {
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// ScreenRect is a rectangle in device pixels with a top-left origin.
type ScreenRect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Rectangle rounds r to integer pixel coordinates.
func (r ScreenRect) Rectangle() image.Rectangle {
	x0 := int(math.Round(r.X))
	y0 := int(math.Round(r.Y))
	return image.Rect(x0, y0, x0+int(math.Round(r.Width)), y0+int(math.Round(r.Height)))
}

// Result is a single labeled box produced by a Backend for one frame.
type Result struct {
	Label      string
	Confidence float32
	Box        NormRect
}

// Detection is a Result with an identity assigned when the inference pass
// completed. Identities are not stable across frames.
type Detection struct {
	ID         uuid.UUID
	Label      string
	Confidence float32
	Box        NormRect
}

// SameAs reports whether d and o carry the same label, confidence and box.
// The ID is ignored.
func (d Detection) SameAs(o Detection) bool {
	return d.Label == o.Label && d.Confidence == o.Confidence && d.Box == o.Box
}

// List is the ordered output of one inference pass. Lists are replaced
// wholesale and never mutated after creation.
type List []Detection

// NewList assigns fresh identities to results.
func NewList(results []Result) List {
	if len(results) == 0 {
		return List{}
	}
	out := make(List, len(results))
	for i, r := range results {
		out[i] = Detection{ID: uuid.New(), Label: r.Label, Confidence: r.Confidence, Box: r.Box}
	}
	return out
}

// Equal compares two lists by value. A nil list equals an empty one.
func (l List) Equal(o List) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if !l[i].SameAs(o[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no backing array with l.
func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Best returns the highest confidence detection whose label matches label.
// An empty label matches everything.
func (l List) Best(label string) (Detection, bool) {
	var best Detection
	found := false
	for _, d := range l {
		if label != "" && d.Label != label {
			continue
		}
		if !found || d.Confidence > best.Confidence {
			best = d
			found = true
		}
	}
	return best, found
}
