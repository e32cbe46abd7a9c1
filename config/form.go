package config

import (
	"strconv"
	"strings"
)

// Form field ids shared with the config panel.
const (
	FieldSource             = "source"
	FieldCameraDevice       = "cameraDevice"
	FieldCaptureIntervalMs  = "captureIntervalMs"
	FieldMinConfidence      = "minConfidence"
	FieldMaxDetections      = "maxDetections"
	FieldPublishDelayMs     = "publishDelayMs"
	FieldClearBeforePublish = "clearBeforePublish"
	FieldShowLabels         = "showLabels"
	FieldTrackLabel         = "trackLabel"
	FieldMotionWindow       = "motionWindow"
)

// FormValues renders the editable fields as text.
func (c *Config) FormValues() map[string]string {
	return map[string]string{
		FieldSource:             c.Source,
		FieldCameraDevice:       strconv.Itoa(c.CameraDevice),
		FieldCaptureIntervalMs:  strconv.Itoa(c.CaptureIntervalMs),
		FieldMinConfidence:      strconv.FormatFloat(c.MinConfidence, 'f', 2, 64),
		FieldMaxDetections:      strconv.Itoa(c.MaxDetections),
		FieldPublishDelayMs:     strconv.Itoa(c.PublishDelayMs),
		FieldClearBeforePublish: strconv.FormatBool(c.ClearBeforePublish),
		FieldShowLabels:         strconv.FormatBool(c.ShowLabels),
		FieldTrackLabel:         c.TrackLabel,
		FieldMotionWindow:       strconv.Itoa(c.MotionWindow),
	}
}

// ApplyForm parses text values into a copy of c. Fields that fail to parse
// keep their current value and are reported in invalid.
func (c *Config) ApplyForm(values map[string]string) (out Config, invalid []string) {
	out = *c
	intField := func(id string, dst *int) {
		s, ok := values[id]
		if !ok {
			return
		}
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			invalid = append(invalid, id)
			return
		}
		*dst = i
	}
	floatField := func(id string, dst *float64) {
		s, ok := values[id]
		if !ok {
			return
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			invalid = append(invalid, id)
			return
		}
		*dst = f
	}
	boolField := func(id string, dst *bool) {
		s, ok := values[id]
		if !ok {
			return
		}
		b, ok := parseBoolLoose(s)
		if !ok {
			invalid = append(invalid, id)
			return
		}
		*dst = b
	}
	if s, ok := values[FieldSource]; ok && strings.TrimSpace(s) != "" {
		out.Source = strings.TrimSpace(s)
	}
	intField(FieldCameraDevice, &out.CameraDevice)
	intField(FieldCaptureIntervalMs, &out.CaptureIntervalMs)
	floatField(FieldMinConfidence, &out.MinConfidence)
	intField(FieldMaxDetections, &out.MaxDetections)
	intField(FieldPublishDelayMs, &out.PublishDelayMs)
	boolField(FieldClearBeforePublish, &out.ClearBeforePublish)
	boolField(FieldShowLabels, &out.ShowLabels)
	if s, ok := values[FieldTrackLabel]; ok {
		out.TrackLabel = strings.TrimSpace(s)
	}
	intField(FieldMotionWindow, &out.MotionWindow)
	_ = out.Validate()
	return out, invalid
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
