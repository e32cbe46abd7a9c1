package detection

import (
	"context"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/disintegration/imaging"
	ort "github.com/yalue/onnxruntime_go"
)

// ONNXBackend runs a YOLOv8 ONNX export through onnxruntime. The input and
// output tensors are allocated once and reused for every pass.
type ONNXBackend struct {
	opts    Options
	mu      sync.Mutex
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	anchors int
	buffer  []float32
}

// NewONNXBackend initializes the onnxruntime environment and loads the model.
func NewONNXBackend(opts Options) (*ONNXBackend, error) {
	opts = opts.withDefaults()
	if _, err := os.Stat(opts.ModelPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	if opts.LibraryPath != "" {
		ort.SetSharedLibraryPath(opts.LibraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("%w: onnxruntime init: %v", ErrModelUnavailable, err)
		}
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("error creating session options: %w", err)
	}
	defer options.Destroy()
	options.SetIntraOpNumThreads(opts.Threads)
	options.SetInterOpNumThreads(opts.Threads)

	size := opts.InputSize
	anchors := anchorCount(size)
	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 3, int64(size), int64(size)))
	if err != nil {
		return nil, fmt.Errorf("error creating input tensor: %w", err)
	}
	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(4+len(opts.Labels)), int64(anchors)))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("error creating output tensor: %w", err)
	}
	session, err := ort.NewAdvancedSession(
		opts.ModelPath,
		[]string{"images"},
		[]string{"output0"},
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
		options,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	return &ONNXBackend{
		opts:    opts,
		session: session,
		input:   inputTensor,
		output:  outputTensor,
		anchors: anchors,
		buffer:  make([]float32, 3*size*size),
	}, nil
}

// Infer resizes img to the model input, runs the session and decodes boxes.
func (b *ONNXBackend) Infer(ctx context.Context, img image.Image) ([]Result, error) {
	if img == nil {
		return nil, inferenceErr("onnx", "input", fmt.Errorf("nil image"))
	}
	if err := ctx.Err(); err != nil {
		return nil, inferenceErr("onnx", "context", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session == nil {
		return nil, inferenceErr("onnx", "session", ErrModelUnavailable)
	}

	size := b.opts.InputSize
	resized := imaging.Resize(img, size, size, imaging.Linear)
	fillCHW(b.buffer, resized, size)
	copy(b.input.GetData(), b.buffer)

	if err := b.session.Run(); err != nil {
		return nil, inferenceErr("onnx", "run", err)
	}
	out := yoloOutput{
		data:    b.output.GetData(),
		classes: len(b.opts.Labels),
		anchors: b.anchors,
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

// Close releases the session and tensors. The environment stays initialized
// so a backend can be rebuilt after a config reload.
func (b *ONNXBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session != nil {
		b.session.Destroy()
		b.session = nil
	}
	if b.input != nil {
		b.input.Destroy()
		b.input = nil
	}
	if b.output != nil {
		b.output.Destroy()
		b.output = nil
	}
	return nil
}

// fillCHW writes the RGB planes of img into dst scaled to [0,1].
func fillCHW(dst []float32, img *image.NRGBA, size int) {
	plane := size * size
	for y := 0; y < size; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < size; x++ {
			i := y*size + x
			p := row[x*4:]
			dst[i] = float32(p[0]) / 255.0
			dst[plane+i] = float32(p[1]) / 255.0
			dst[2*plane+i] = float32(p[2]) / 255.0
		}
	}
}
