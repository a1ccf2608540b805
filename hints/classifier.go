package hints

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/jamesainslie/go-recipediff/diagram"
	"github.com/jamesainslie/go-recipediff/inference"
)

const (
	bosID    = 0
	padID    = 1
	firstID  = 2
	maxIDs   = 128
	trigramN = 3
)

// Classifier decides ingredient membership with an ONNX model fed hashed
// character trigrams. Location queries go to the fallback provider, if any.
type Classifier struct {
	pool      *inference.Pool
	threshold float64
	buckets   uint64
	fallback  Provider
	cache     sync.Map // normalized text -> bool
}

type classifierConfig struct {
	threshold float64
	poolSize  int
	buckets   uint64
	fallback  Provider
	signature inference.Signature
}

// ClassifierOption configures NewClassifier.
type ClassifierOption func(*classifierConfig)

// WithThreshold sets the probability above which text counts as an
// ingredient. Defaults to 0.5.
func WithThreshold(p float64) ClassifierOption {
	return func(c *classifierConfig) { c.threshold = p }
}

// WithPoolSize sets how many model sessions serve concurrent queries.
func WithPoolSize(n int) ClassifierOption {
	return func(c *classifierConfig) { c.poolSize = n }
}

// WithBuckets sets the trigram hash space. It must match the model's
// embedding table less the reserved ids.
func WithBuckets(n uint64) ClassifierOption {
	return func(c *classifierConfig) {
		if n > 0 {
			c.buckets = n
		}
	}
}

// WithFallback answers Location queries, which the model does not cover.
func WithFallback(p Provider) ClassifierOption {
	return func(c *classifierConfig) { c.fallback = p }
}

// WithSignature overrides the model's input and output tensor names.
func WithSignature(sig inference.Signature) ClassifierOption {
	return func(c *classifierConfig) { c.signature = sig }
}

// NewClassifier loads the model at modelPath.
func NewClassifier(modelPath string, opts ...ClassifierOption) (*Classifier, error) {
	cfg := classifierConfig{
		threshold: 0.5,
		poolSize:  1,
		buckets:   1 << 14,
		signature: inference.DefaultSignature(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	pool, err := inference.NewPool(modelPath, cfg.poolSize, cfg.signature)
	if err != nil {
		return nil, fmt.Errorf("hints: loading classifier: %w", err)
	}
	return &Classifier{
		pool:      pool,
		threshold: cfg.threshold,
		buckets:   cfg.buckets,
		fallback:  cfg.fallback,
	}, nil
}

// IsIngredient scores text with the model. Answers are cached per text.
func (c *Classifier) IsIngredient(ctx context.Context, text string) (bool, error) {
	text = normalize(text)
	if text == "" {
		return false, nil
	}
	if v, ok := c.cache.Load(text); ok {
		return v.(bool), nil
	}

	ids, mask := Encode(text, c.buckets)
	logits, err := c.pool.Infer(ctx, ids, mask)
	if err != nil {
		return false, fmt.Errorf("hints: classifying %q: %w", text, err)
	}

	// The BOS position carries the sequence-level logit.
	ok := sigmoid(logits[0]) >= c.threshold
	c.cache.Store(text, ok)
	return ok, nil
}

// Location delegates to the fallback provider.
func (c *Classifier) Location(ctx context.Context, ev *diagram.Event) (string, bool, error) {
	if c.fallback == nil {
		return "", false, nil
	}
	return c.fallback.Location(ctx, ev)
}

// Close releases the model sessions.
func (c *Classifier) Close() error {
	if c.pool == nil {
		return nil
	}
	return c.pool.Close()
}

// Encode turns text into model ids: a BOS id followed by one hashed id per
// character trigram of the space-padded text, truncated to 128 ids. Ids 0
// and 1 are reserved; hashed ids fall in [2, 2+buckets).
func Encode(text string, buckets uint64) (ids, mask []int64) {
	if buckets == 0 {
		buckets = 1
	}
	runes := []rune(" " + text + " ")

	ids = make([]int64, 0, min(maxIDs, len(runes)))
	ids = append(ids, bosID)
	for i := 0; i+trigramN <= len(runes) && len(ids) < maxIDs; i++ {
		h := xxhash.Sum64String(string(runes[i : i+trigramN]))
		ids = append(ids, int64(firstID+h%buckets))
	}

	mask = make([]int64, len(ids))
	for i := range mask {
		mask[i] = 1
	}
	return ids, mask
}

func sigmoid(x float32) float64 {
	return 1 / (1 + math.Exp(-float64(x)))
}
