package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sync"

	"gocv.io/x/gocv"
)

// CameraGrabber reads frames from a local video device through OpenCV.
type CameraGrabber struct {
	Device int

	mu  sync.Mutex
	cam *gocv.VideoCapture
	mat gocv.Mat
}

// NewCameraGrabber returns a grabber for the given device index.
func NewCameraGrabber(device int) *CameraGrabber {
	return &CameraGrabber{Device: device}
}

// Open opens the device. Desktop platforms surface a denied camera permission
// as an open failure.
func (g *CameraGrabber) Open() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cam != nil {
		return nil
	}
	cam, err := gocv.OpenVideoCapture(g.Device)
	if err != nil {
		return fmt.Errorf("open camera %d: %w", g.Device, err)
	}
	if !cam.IsOpened() {
		cam.Close()
		return fmt.Errorf("open camera %d: device not opened", g.Device)
	}
	g.cam = cam
	g.mat = gocv.NewMat()
	return nil
}

// Grab reads the next frame and converts it to RGBA.
func (g *CameraGrabber) Grab() (*image.RGBA, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cam == nil {
		return nil, errors.New("camera: not open")
	}
	if ok := g.cam.Read(&g.mat); !ok || g.mat.Empty() {
		return nil, errors.New("camera: empty frame")
	}
	img, err := g.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("camera: convert frame: %w", err)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out, nil
}

// Close releases the device.
func (g *CameraGrabber) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cam == nil {
		return nil
	}
	g.mat.Close()
	err := g.cam.Close()
	g.cam = nil
	return err
}
