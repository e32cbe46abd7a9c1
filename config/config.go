package config

import (
	"encoding/json"
	"os"
	"strings"
	"time"
)

// Frame sources.
const (
	SourceCamera = "camera"
	SourceScreen = "screen"
)

// Config holds runtime configuration for capture, detection and the overlay.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Frame source
	Source            string `json:"source"` // "camera" or "screen"
	CameraDevice      int    `json:"camera_device"`
	CaptureIntervalMs int    `json:"capture_interval_ms"`
	// Screen region, zero width/height means full screen.
	ScreenX int `json:"screen_x"`
	ScreenY int `json:"screen_y"`
	ScreenW int `json:"screen_w"`
	ScreenH int `json:"screen_h"`

	// Detection backend
	Backend       string  `json:"backend"` // "onnx", "opencv" or "none"
	ModelPath     string  `json:"model_path"`
	LibraryPath   string  `json:"library_path"`
	LabelsPath    string  `json:"labels_path"` // empty uses embedded COCO names
	InputSize     int     `json:"input_size"`
	Confidence    float64 `json:"confidence"`     // backend decode threshold
	NMSThreshold  float64 `json:"nms_threshold"`  // backend IoU threshold
	MinConfidence float64 `json:"min_confidence"` // post filter applied before publishing
	MaxDetections int     `json:"max_detections"`

	// Publishing
	PublishDelayMs     int  `json:"publish_delay_ms"`
	ClearBeforePublish bool `json:"clear_before_publish"`

	// Overlay / preview
	PreviewW     int    `json:"preview_w"`
	PreviewH     int    `json:"preview_h"`
	ShowLabels   bool   `json:"show_labels"`
	TrackLabel   string `json:"track_label"` // motion tracking filter, empty tracks the best detection
	MotionWindow int    `json:"motion_window"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:              false,
		Source:             SourceCamera,
		CameraDevice:       0,
		CaptureIntervalMs:  33,
		Backend:            "onnx",
		ModelPath:          "models/yolov8n.onnx",
		InputSize:          640,
		Confidence:         0.25,
		NMSThreshold:       0.45,
		MinConfidence:      0.40,
		MaxDetections:      20,
		PublishDelayMs:     100,
		ClearBeforePublish: true,
		PreviewW:           640,
		PreviewH:           480,
		ShowLabels:         true,
		MotionWindow:       120,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	if c.Source != SourceCamera && c.Source != SourceScreen {
		c.Source = SourceCamera
	}
	if c.CameraDevice < 0 {
		c.CameraDevice = 0
	}
	if c.CaptureIntervalMs <= 0 {
		c.CaptureIntervalMs = 33
	}
	if c.ScreenW < 0 || c.ScreenH < 0 {
		c.ScreenW, c.ScreenH = 0, 0
	}
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = "onnx"
	}
	if c.InputSize < 32 || c.InputSize%32 != 0 {
		c.InputSize = 640
	}
	if c.Confidence <= 0 || c.Confidence > 1 {
		c.Confidence = 0.25
	}
	if c.NMSThreshold <= 0 || c.NMSThreshold > 1 {
		c.NMSThreshold = 0.45
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		c.MinConfidence = 0.40
	}
	if c.MaxDetections <= 0 {
		c.MaxDetections = 20
	}
	if c.PublishDelayMs < 0 {
		c.PublishDelayMs = 100
	}
	if c.PreviewW < 50 {
		c.PreviewW = 640
	}
	if c.PreviewH < 50 {
		c.PreviewH = 480
	}
	if c.MotionWindow <= 1 {
		c.MotionWindow = 120
	}
	return nil
}

// PublishDelay returns the delayed-publish interval.
func (c *Config) PublishDelay() time.Duration {
	return time.Duration(c.PublishDelayMs) * time.Millisecond
}

// CaptureInterval returns the pause between frame grabs.
func (c *Config) CaptureInterval() time.Duration {
	return time.Duration(c.CaptureIntervalMs) * time.Millisecond
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
