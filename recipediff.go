package recipediff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jamesainslie/go-recipediff/align"
	"github.com/jamesainslie/go-recipediff/diagram"
	"github.com/jamesainslie/go-recipediff/diff"
	"github.com/jamesainslie/go-recipediff/hints"
	"github.com/jamesainslie/go-recipediff/score"
)

// Evaluator compares predicted and gold diagrams under a fixed configuration.
type Evaluator struct {
	cfg    diff.Config
	hints  hints.Provider
	logger *slog.Logger
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Evaluator{
		cfg:    cfg.diff,
		hints:  cfg.hints,
		logger: cfg.logger,
	}
}

// Config returns the comparison flags.
func (e *Evaluator) Config() diff.Config { return e.cfg }

// Align maps predicted nodes to gold nodes by predicate similarity.
func (e *Evaluator) Align(pred, gold *diagram.Diagram) (*align.Mapping, error) {
	if pred == nil || gold == nil {
		return nil, ErrNilDiagram
	}
	m := align.Align(pred, gold)
	e.logger.Debug("aligned diagrams",
		"pairs", m.Len(),
		"unmapped_pred", pred.Len()-m.Len(),
		"unmapped_gold", gold.Len()-m.Len())
	return m, nil
}

// Compare scores pred against gold under each policy and returns the summed
// counts. With no policies it runs diff.PolicyEdges.
func (e *Evaluator) Compare(ctx context.Context, pred, gold *diagram.Diagram, policies ...diff.Policy) (*score.Results, error) {
	r := &score.Results{}
	if err := e.CompareInto(ctx, r, pred, gold, policies...); err != nil {
		return nil, err
	}
	return r, nil
}

// CompareInto is Compare writing into an existing accumulator. On error r
// may hold a partial pass.
func (e *Evaluator) CompareInto(ctx context.Context, r *score.Results, pred, gold *diagram.Diagram, policies ...diff.Policy) error {
	if r == nil {
		return ErrNilResults
	}
	if len(policies) == 0 {
		policies = []diff.Policy{diff.PolicyEdges}
	}
	if err := validate(pred, gold); err != nil {
		return err
	}

	m, err := e.Align(pred, gold)
	if err != nil {
		return err
	}

	opts := []diff.Option{diff.WithLogger(e.logger)}
	if e.hints != nil {
		opts = append(opts, diff.WithHints(e.hints))
	}
	eng := diff.New(pred, gold, m, e.cfg, opts...)

	if e.cfg.CountPredicates {
		eng.Predicates(r)
	}
	for _, p := range policies {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := eng.Run(ctx, p, r); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the hints provider if it holds resources.
func (e *Evaluator) Close() error {
	if c, ok := e.hints.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func validate(pred, gold *diagram.Diagram) error {
	if pred == nil || gold == nil {
		return ErrNilDiagram
	}
	var errs []error
	if err := pred.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("predicted: %w", err))
	}
	if err := gold.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("gold: %w", err))
	}
	return errors.Join(errs...)
}
