package detection

import (
	"math"
	"testing"
)

// buildOutput lays out boxes in the [4+classes, anchors] YOLOv8 format.
func buildOutput(classes, anchors int, boxes [][4]float32, scores [][]float32) []float32 {
	data := make([]float32, (4+classes)*anchors)
	for i, b := range boxes {
		for k := 0; k < 4; k++ {
			data[k*anchors+i] = b[k]
		}
		for c, s := range scores[i] {
			data[(4+c)*anchors+i] = s
		}
	}
	return data
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-5 }

func TestYOLODecode_ThresholdAndFlip(t *testing.T) {
	// Input 100x100: box centered at (50,25) size 20x10, class 1.
	data := buildOutput(2, 3,
		[][4]float32{{50, 25, 20, 10}, {10, 10, 4, 4}, {0, 0, 0, 0}},
		[][]float32{{0.1, 0.9}, {0.2, 0.1}, {0, 0}},
	)
	out := yoloOutput{data: data, classes: 2, anchors: 3, inputW: 100, inputH: 100}
	cands := out.decode(0.5)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate above threshold, got %d", len(cands))
	}
	res := cands[0].toResult([]string{"cat", "dog"})
	if res.Label != "dog" || res.Confidence != 0.9 {
		t.Fatalf("unexpected label/conf: %+v", res)
	}
	// top-left y0=0.2 y1=0.3 → bottom-left minY = 0.7
	b := res.Box
	if !near(b.MinX, 0.4) || !near(b.MinY, 0.7) || !near(b.Width, 0.2) || !near(b.Height, 0.1) {
		t.Fatalf("unexpected box: %+v", b)
	}
}

func TestYOLODecode_ShortBuffer(t *testing.T) {
	out := yoloOutput{data: make([]float32, 5), classes: 2, anchors: 3, inputW: 1, inputH: 1}
	if c := out.decode(0.1); c != nil {
		t.Fatalf("expected nil for short buffer, got %v", c)
	}
}

func TestSuppress_PerClass(t *testing.T) {
	cands := []candidate{
		{class: 0, score: 0.6, x0: 0.1, y0: 0.1, x1: 0.5, y1: 0.5},
		{class: 0, score: 0.9, x0: 0.12, y0: 0.1, x1: 0.52, y1: 0.5},
		{class: 1, score: 0.7, x0: 0.1, y0: 0.1, x1: 0.5, y1: 0.5},
		{class: 0, score: 0.5, x0: 0.7, y0: 0.7, x1: 0.9, y1: 0.9},
	}
	kept := suppress(cands, 0.25, 0.45)
	if len(kept) != 3 {
		t.Fatalf("expected 3 boxes after nms, got %d: %+v", len(kept), kept)
	}
	if kept[0].score != 0.9 || kept[1].score != 0.7 || kept[2].score != 0.5 {
		t.Fatalf("unexpected order: %+v", kept)
	}
}

func TestSuppress_Empty(t *testing.T) {
	if kept := suppress(nil, 0.25, 0.45); len(kept) != 0 {
		t.Fatalf("expected no boxes, got %+v", kept)
	}
}

func TestLabelFor_Unknown(t *testing.T) {
	if got := labelFor([]string{"a"}, 3); got != "Unknown" {
		t.Fatalf("expected Unknown, got %q", got)
	}
}

func TestAnchorCount(t *testing.T) {
	if n := anchorCount(640); n != 8400 {
		t.Fatalf("expected 8400 anchors for 640 input, got %d", n)
	}
}
