package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// ScreenGrabber captures the desktop, or a region of it, as the frame source.
type ScreenGrabber struct {
	Region image.Rectangle // empty captures the whole screen
	bounds image.Rectangle
}

// NewScreenGrabber returns a grabber for region; an empty region means full screen.
func NewScreenGrabber(region image.Rectangle) *ScreenGrabber {
	return &ScreenGrabber{Region: region}
}

// Open resolves the screen bounds and validates the configured region.
func (g *ScreenGrabber) Open() error {
	screen, err := screenshot.ScreenRect()
	if err != nil {
		return fmt.Errorf("screen bounds: %w", err)
	}
	if g.Region.Empty() {
		g.bounds = screen
		return nil
	}
	r := g.Region.Intersect(screen)
	if r.Empty() {
		return fmt.Errorf("capture: selection out of bounds sel=%v screen=%v", g.Region, screen)
	}
	g.bounds = r
	return nil
}

// Grab captures the resolved region.
func (g *ScreenGrabber) Grab() (*image.RGBA, error) {
	if g.bounds.Empty() {
		return nil, errors.New("capture: screen grabber not open")
	}
	return screenshot.CaptureRect(g.bounds)
}

// Close is a no-op; each grab releases its own resources.
func (g *ScreenGrabber) Close() error { return nil }
