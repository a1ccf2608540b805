// Package inference runs ONNX text classifiers over hashed token ids.
package inference

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	ortEnvOnce sync.Once
	ortEnvErr  error
)

// ErrSessionClosed is returned by Infer after Close.
var ErrSessionClosed = errors.New("inference: session is closed")

// initORT initializes ONNX Runtime environment once.
func initORT() error {
	ortEnvOnce.Do(func() {
		ortEnvErr = ort.InitializeEnvironment()
	})
	return ortEnvErr
}

// Signature names the model's id and mask inputs and its logits output.
type Signature struct {
	IDs    string
	Mask   string
	Logits string
}

// DefaultSignature matches classifiers exported with the usual transformer names.
func DefaultSignature() Signature {
	return Signature{IDs: "input_ids", Mask: "attention_mask", Logits: "logits"}
}

// Session wraps one ONNX Runtime session. Infer calls are serialized.
type Session struct {
	session *ort.DynamicAdvancedSession
	mu      sync.Mutex
	closed  bool
}

// NewSession loads the model at modelPath.
func NewSession(modelPath string, sig Signature) (*Session, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	if err := initORT(); err != nil {
		return nil, fmt.Errorf("initializing ONNX runtime: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("creating session options: %w", err)
	}
	defer func() { _ = options.Destroy() }()

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{sig.IDs, sig.Mask},
		[]string{sig.Logits},
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &Session{session: session}, nil
}

// Infer runs the model on one sequence and returns a logit per position.
func (s *Session) Infer(ctx context.Context, ids, mask []int64) ([]float32, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if len(ids) == 0 || len(ids) != len(mask) {
		return nil, fmt.Errorf("inference: %d ids with %d mask entries", len(ids), len(mask))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}

	shape := ort.NewShape(1, int64(len(ids)))
	idsTensor, err := ort.NewTensor(shape, ids)
	if err != nil {
		return nil, fmt.Errorf("creating ids tensor: %w", err)
	}
	defer func() { _ = idsTensor.Destroy() }()

	maskTensor, err := ort.NewTensor(shape, mask)
	if err != nil {
		return nil, fmt.Errorf("creating mask tensor: %w", err)
	}
	defer func() { _ = maskTensor.Destroy() }()

	outputs := []ort.Value{nil}
	if err := s.session.Run([]ort.Value{idsTensor, maskTensor}, outputs); err != nil {
		return nil, fmt.Errorf("running inference: %w", err)
	}
	if outputs[0] == nil {
		return nil, fmt.Errorf("no output produced")
	}
	defer func() { _ = outputs[0].Destroy() }()

	logitsTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type")
	}

	data := logitsTensor.GetData()
	if len(data) < len(ids) {
		return nil, fmt.Errorf("output has %d values for %d positions", len(data), len(ids))
	}
	logits := make([]float32, len(ids))
	copy(logits, data[:len(ids)])
	return logits, nil
}

// Close releases ONNX resources. It is safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if s.session != nil {
		return s.session.Destroy()
	}
	return nil
}
