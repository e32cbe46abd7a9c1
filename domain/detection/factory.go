package detection

import (
	"fmt"
	"strings"
)

// Backend kinds accepted by NewBackend.
const (
	KindONNX   = "onnx"
	KindOpenCV = "opencv"
	KindNone   = "none"
)

// NewBackend builds the backend named by kind. KindNone returns a nil
// backend and no error; callers treat that as detection disabled.
func NewBackend(kind string, opts Options) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindONNX, "":
		b, err := NewONNXBackend(opts)
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindOpenCV:
		b, err := NewOpenCVBackend(opts)
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown detection backend %q", kind)
	}
}
