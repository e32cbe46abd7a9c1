package capture

import (
	"errors"
	"image"
)

// ErrCameraUnavailable reports that the capture device could not be opened,
// either because it is missing or because access was denied.
var ErrCameraUnavailable = errors.New("camera not available")

// FrameSource provides read-only access to captured frames.
// LatestFrame returns the freshest snapshot while Running reports activity.
type FrameSource interface {
	LatestFrame() FrameSnapshot
	Running() bool
}

// Grabber acquires single frames from a device. Open is called once per
// session and may block while the platform asks the user for access.
type Grabber interface {
	Open() error
	Grab() (*image.RGBA, error)
	Close() error
}
