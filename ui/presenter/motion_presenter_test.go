package presenter

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/soocke/vision-overlay-go/config"
	"github.com/soocke/vision-overlay-go/domain/detection"
	"github.com/soocke/vision-overlay-go/ui/model"
)

type chartRecorder struct{ charts [][]byte }

func (c *chartRecorder) UpdateChart(png []byte) { c.charts = append(c.charts, png) }

func at(x float64, label string) detection.List {
	return detection.List{{Label: label, Confidence: 0.9, Box: detection.NormRect{MinX: x, MinY: 0.4, Width: 0.2, Height: 0.2}}}
}

func TestMotionPresenter_TracksBestDetection(t *testing.T) {
	clk := clock.NewMock()
	series := model.NewMotionModel(10)
	view := &chartRecorder{}
	cfg := config.DefaultConfig()
	cfg.TrackLabel = "ball"
	p := NewMotionPresenter(series, view, cfg, clk, nil)

	p.OnInferenceComplete(at(0.1, "ball"))
	clk.Add(500 * time.Millisecond)
	p.OnInferenceComplete(at(0.3, "ball"))
	clk.Add(500 * time.Millisecond)
	p.OnInferenceComplete(at(0.9, "person")) // ignored, wrong label
	p.OnInferenceComplete(nil)

	samples := series.Samples()
	if len(samples) != 1 {
		t.Fatalf("expected one sample, got %d", len(samples))
	}
	if v := samples[0].Velocity; v < 0.399 || v > 0.401 {
		t.Fatalf("velocity=%v want 0.4", v)
	}

	now := clk.Now()
	p.Tick(now)
	p.Tick(now.Add(100 * time.Millisecond)) // throttled and clean
	if len(view.charts) != 1 || len(view.charts[0]) == 0 {
		t.Fatalf("expected one rendered chart, got %d", len(view.charts))
	}

	p.Reset()
	if series.Len() != 0 {
		t.Fatalf("expected series cleared")
	}
	p.Tick(now.Add(time.Second))
	if len(view.charts) != 2 {
		t.Fatalf("expected redraw after reset, got %d", len(view.charts))
	}
}

func TestMotionPresenter_UsesCaptureTime(t *testing.T) {
	clk := clock.NewMock()
	series := model.NewMotionModel(10)
	p := NewMotionPresenter(series, nil, config.DefaultConfig(), clk, nil)

	// Results are handled at the same wall time, but their frames were
	// captured 250ms apart.
	t0 := time.Unix(5000, 0)
	p.OnInferenceCompleteAt(at(0.1, "ball"), t0)
	p.OnInferenceCompleteAt(at(0.2, "ball"), t0.Add(250*time.Millisecond))

	samples := series.Samples()
	if len(samples) != 1 {
		t.Fatalf("expected one sample, got %d", len(samples))
	}
	if v := samples[0].Velocity; v < 0.399 || v > 0.401 {
		t.Fatalf("velocity=%v want 0.4", v)
	}
}
