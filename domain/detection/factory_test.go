package detection

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"testing"
)

func TestNewBackend_UnknownKind(t *testing.T) {
	b, err := NewBackend("tensorflow", Options{})
	if err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	if b != nil {
		t.Fatalf("expected nil backend, got %T", b)
	}
}

func TestNewBackend_NoneDisablesDetection(t *testing.T) {
	b, err := NewBackend(" None ", Options{})
	if err != nil || b != nil {
		t.Fatalf("expected nil backend and nil error, got b=%v err=%v", b, err)
	}
}

func TestNewBackend_MissingModel(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.onnx")
	for _, kind := range []string{KindONNX, "", KindOpenCV} {
		b, err := NewBackend(kind, Options{ModelPath: missing})
		if !errors.Is(err, ErrModelUnavailable) {
			t.Fatalf("kind=%q expected ErrModelUnavailable, got %v", kind, err)
		}
		if b != nil {
			t.Fatalf("kind=%q expected nil backend interface, got %T", kind, b)
		}
	}
}

func TestInfer_CancelledContextIsInferenceError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for _, b := range []Backend{&ONNXBackend{}, &OpenCVBackend{}} {
		_, err := b.Infer(ctx, img)
		var ie *InferenceError
		if !errors.As(err, &ie) {
			t.Fatalf("%T expected *InferenceError, got %v", b, err)
		}
		if ie.Stage != "context" || !errors.Is(err, context.Canceled) {
			t.Fatalf("%T unexpected error: stage=%q err=%v", b, ie.Stage, err)
		}
	}
}
