package detection

import "runtime"

// Options configures a model backend.
type Options struct {
	ModelPath   string
	LibraryPath string // onnxruntime shared library, ONNX backend only
	Labels      []string
	InputSize   int
	Confidence  float32
	NMS         float32
	Threads     int
}

func (o Options) withDefaults() Options {
	if o.InputSize <= 0 {
		o.InputSize = 640
	}
	if o.Confidence <= 0 || o.Confidence > 1 {
		o.Confidence = 0.25
	}
	if o.NMS <= 0 || o.NMS > 1 {
		o.NMS = 0.45
	}
	if o.Threads <= 0 {
		o.Threads = runtime.NumCPU()
	}
	return o
}

// anchorCount returns the number of YOLOv8 anchors for a square input.
func anchorCount(size int) int {
	n := 0
	for _, stride := range []int{8, 16, 32} {
		g := size / stride
		n += g * g
	}
	return n
}
