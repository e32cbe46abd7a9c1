package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.PublishDelayMs != 100 || !cfg.ClearBeforePublish {
		t.Fatalf("unexpected defaults: delay=%d clear=%v", cfg.PublishDelayMs, cfg.ClearBeforePublish)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if cfg == nil || cfg.Source != SourceCamera {
		t.Fatalf("expected defaults alongside error, got %+v", cfg)
	}
}

func TestSaveLoad_PreservesEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	cfg := DefaultConfig()
	cfg.Source = SourceScreen
	cfg.TrackLabel = "sports ball"
	cfg.PublishDelayMs = 0
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Source != SourceScreen || got.TrackLabel != "sports ball" || got.PublishDelay() != 0 {
		t.Fatalf("edits lost: source=%q track=%q delay=%v", got.Source, got.TrackLabel, got.PublishDelay())
	}
}

func TestValidate_Clamps(t *testing.T) {
	c := &Config{
		Source:         "Webcam",
		InputSize:      100,
		Confidence:     2,
		NMSThreshold:   -1,
		MinConfidence:  5,
		PublishDelayMs: -10,
		PreviewW:       1,
		MotionWindow:   0,
	}
	_ = c.Validate()
	if c.Source != SourceCamera {
		t.Fatalf("expected camera fallback, got %q", c.Source)
	}
	if c.InputSize != 640 {
		t.Fatalf("expected input size reset to 640, got %d", c.InputSize)
	}
	if c.Confidence != 0.25 || c.NMSThreshold != 0.45 || c.MinConfidence != 0.40 {
		t.Fatalf("thresholds not reset: conf=%v nms=%v min=%v", c.Confidence, c.NMSThreshold, c.MinConfidence)
	}
	if c.PublishDelay() != 100*time.Millisecond {
		t.Fatalf("expected 100ms delay, got %v", c.PublishDelay())
	}
	if c.PreviewW != 640 || c.MotionWindow != 120 {
		t.Fatalf("preview/motion not reset: w=%d window=%d", c.PreviewW, c.MotionWindow)
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded := make(chan *Config, 4)
	w, err := Watch(path, nil, func(c *Config) { loaded <- c })
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	edited := DefaultConfig()
	edited.MinConfidence = 0.75
	if err := edited.Save(path); err != nil {
		t.Fatalf("save edit: %v", err)
	}

	select {
	case c := <-loaded:
		if c.MinConfidence != 0.75 {
			t.Fatalf("expected reloaded min_confidence 0.75, got %v", c.MinConfidence)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for reload")
	}
}
