package recipediff

import (
	"log/slog"

	"github.com/jamesainslie/go-recipediff/diff"
	"github.com/jamesainslie/go-recipediff/hints"
)

// Option configures an Evaluator.
type Option func(*config)

type config struct {
	diff   diff.Config
	hints  hints.Provider
	logger *slog.Logger
}

func defaultConfig() config {
	return config{
		diff:   diff.DefaultConfig(),
		logger: slog.Default(),
	}
}

// WithExactMatch requires argument strings to be equal (default: false).
// Containment matches then abort the comparison with diff.ErrInconsistentMatch.
func WithExactMatch(on bool) Option {
	return func(c *config) {
		c.diff.ExactMatch = on
	}
}

// WithIgnoreOtherArgs drops edges into "other" arguments (default: false).
func WithIgnoreOtherArgs(on bool) Option {
	return func(c *config) {
		c.diff.IgnoreOtherArgs = on
	}
}

// WithInterSentenceEdges keeps edges that cross sentence boundaries (default: true).
func WithInterSentenceEdges(on bool) Option {
	return func(c *config) {
		c.diff.InterSentenceEdges = on
	}
}

// WithPredicateCounts records predicate alignment counts once per comparison (default: false).
func WithPredicateCounts(on bool) Option {
	return func(c *config) {
		c.diff.CountPredicates = on
	}
}

// WithHints sets the ingredient and location provider for predicted diagrams.
func WithHints(p hints.Provider) Option {
	return func(c *config) {
		c.hints = p
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
