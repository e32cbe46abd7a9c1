package detection

import (
	"cmp"
	"image"
	"slices"

	"gocv.io/x/gocv"
)

// yoloOutput describes a YOLOv8 head laid out as [1, 4+classes, anchors]
// with rows cx, cy, w, h followed by one score row per class. Box values are
// in input pixel space.
type yoloOutput struct {
	data    []float32
	classes int
	anchors int
	inputW  float32
	inputH  float32
}

// candidate is a decoded box in normalized top-left space.
type candidate struct {
	class int
	score float32
	x0    float32
	y0    float32
	x1    float32
	y1    float32
}

// decode extracts every anchor whose best class score reaches threshold.
func (o yoloOutput) decode(threshold float32) []candidate {
	if o.anchors <= 0 || o.classes <= 0 || len(o.data) < (4+o.classes)*o.anchors {
		return nil
	}
	n := o.anchors
	out := make([]candidate, 0, 32)
	for i := 0; i < n; i++ {
		best := float32(0)
		bestClass := -1
		for c := 0; c < o.classes; c++ {
			s := o.data[(4+c)*n+i]
			if s > best {
				best = s
				bestClass = c
			}
		}
		if bestClass < 0 || best < threshold {
			continue
		}
		cx := o.data[i] / o.inputW
		cy := o.data[n+i] / o.inputH
		w := o.data[2*n+i] / o.inputW
		h := o.data[3*n+i] / o.inputH
		out = append(out, candidate{
			class: bestClass,
			score: best,
			x0:    clamp32(cx-w/2, 0, 1),
			y0:    clamp32(cy-h/2, 0, 1),
			x1:    clamp32(cx+w/2, 0, 1),
			y1:    clamp32(cy+h/2, 0, 1),
		})
	}
	return out
}

// nmsScale converts normalized coordinates to the integer pixel grid
// NMSBoxes works on.
const nmsScale = 4096

// suppress runs per-class non-maximum suppression with gocv.NMSBoxes. Boxes
// of different classes are shifted apart on the x axis so they never overlap.
// The returned slice is ordered by descending score.
func suppress(cands []candidate, scoreThreshold, nmsThreshold float32) []candidate {
	if len(cands) == 0 {
		return nil
	}
	rects := make([]image.Rectangle, len(cands))
	scores := make([]float32, len(cands))
	for i, c := range cands {
		off := c.class * 2 * nmsScale
		rects[i] = image.Rect(
			off+int(c.x0*nmsScale), int(c.y0*nmsScale),
			off+int(c.x1*nmsScale), int(c.y1*nmsScale),
		)
		scores[i] = c.score
	}
	indices := gocv.NMSBoxes(rects, scores, scoreThreshold, nmsThreshold)
	kept := make([]candidate, 0, len(indices))
	for _, idx := range indices {
		kept = append(kept, cands[idx])
	}
	slices.SortStableFunc(kept, func(a, b candidate) int { return cmp.Compare(b.score, a.score) })
	return kept
}

// toResult flips a top-left candidate into the bottom-left Result space.
func (c candidate) toResult(labels []string) Result {
	return Result{
		Label:      labelFor(labels, c.class),
		Confidence: c.score,
		Box: NormRect{
			MinX:   float64(c.x0),
			MinY:   float64(1 - c.y1),
			Width:  float64(c.x1 - c.x0),
			Height: float64(c.y1 - c.y0),
		},
	}
}

func labelFor(labels []string, class int) string {
	if class >= 0 && class < len(labels) && labels[class] != "" {
		return labels[class]
	}
	return "Unknown"
}

func clamp32(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}
