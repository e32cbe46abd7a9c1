package detection

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// Backend runs a pre-trained object detection model over a single image.
// Implementations are not required to be reentrant; callers keep at most one
// Infer in flight.
type Backend interface {
	Infer(ctx context.Context, img image.Image) ([]Result, error)
	Close() error
}

// ErrModelUnavailable is returned when a backend cannot load its model.
var ErrModelUnavailable = errors.New("detection model unavailable")

// InferenceError wraps a failure inside a backend pass.
type InferenceError struct {
	Backend string
	Stage   string
	Cause   error
}

func (e *InferenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.Backend, e.Stage, e.Cause)
	}
	return fmt.Sprintf("%s %s failed", e.Backend, e.Stage)
}

func (e *InferenceError) Unwrap() error { return e.Cause }

func inferenceErr(backend, stage string, cause error) error {
	return &InferenceError{Backend: backend, Stage: stage, Cause: cause}
}
