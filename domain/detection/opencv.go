package detection

import (
	"context"
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// OpenCVBackend runs a YOLOv8 ONNX export through the OpenCV DNN module.
type OpenCVBackend struct {
	opts Options
	mu   sync.Mutex
	net  gocv.Net
	open bool
}

// NewOpenCVBackend loads the model with gocv.ReadNetFromONNX.
func NewOpenCVBackend(opts Options) (*OpenCVBackend, error) {
	opts = opts.withDefaults()
	if _, err := os.Stat(opts.ModelPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	net := gocv.ReadNetFromONNX(opts.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("%w: failed to load %s", ErrModelUnavailable, opts.ModelPath)
	}
	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		net.Close()
		return nil, fmt.Errorf("set backend: %w", err)
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		net.Close()
		return nil, fmt.Errorf("set target: %w", err)
	}
	return &OpenCVBackend{opts: opts, net: net, open: true}, nil
}

// Infer converts img to a blob, runs a forward pass and decodes boxes.
func (b *OpenCVBackend) Infer(ctx context.Context, img image.Image) ([]Result, error) {
	if img == nil {
		return nil, inferenceErr("opencv", "input", fmt.Errorf("nil image"))
	}
	if err := ctx.Err(); err != nil {
		return nil, inferenceErr("opencv", "context", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.open {
		return nil, inferenceErr("opencv", "net", ErrModelUnavailable)
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, inferenceErr("opencv", "convert", err)
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, inferenceErr("opencv", "convert", fmt.Errorf("empty image"))
	}

	size := b.opts.InputSize
	// ImageToMatRGB yields BGR order, so swapRB is set.
	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(size, size), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()
	b.net.SetInput(blob, "")
	output := b.net.Forward("")
	defer output.Close()

	dims := output.Size()
	if len(dims) != 3 || dims[1] <= 4 {
		return nil, inferenceErr("opencv", "output", fmt.Errorf("unexpected output shape %v", dims))
	}
	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, inferenceErr("opencv", "output", err)
	}
	out := yoloOutput{
		data:    data,
		classes: dims[1] - 4,
		anchors: dims[2],
		inputW:  float32(size),
		inputH:  float32(size),
	}
	kept := suppress(out.decode(b.opts.Confidence), b.opts.Confidence, b.opts.NMS)
	results := make([]Result, 0, len(kept))
	for _, c := range kept {
		results = append(results, c.toResult(b.opts.Labels))
	}
	return results, nil
}

// Close releases the network.
func (b *OpenCVBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.open {
		return nil
	}
	b.open = false
	return b.net.Close()
}
