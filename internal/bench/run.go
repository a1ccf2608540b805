package bench

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	recipediff "github.com/jamesainslie/go-recipediff"
	"github.com/jamesainslie/go-recipediff/diff"
	"github.com/jamesainslie/go-recipediff/score"
)

// PairResult is the outcome of one recipe. Results is zero when Err is set.
type PairResult struct {
	ID      string
	Results score.Results
	Err     error
}

// Report is the outcome of one corpus run.
type Report struct {
	RunID    string
	Policies []diff.Policy
	Pairs    []PairResult
	Total    score.Results
	F1       Distribution
}

// Failures returns the pairs whose comparison failed.
func (r *Report) Failures() []PairResult {
	var out []PairResult
	for _, p := range r.Pairs {
		if p.Err != nil {
			out = append(out, p)
		}
	}
	return out
}

// Runner evaluates a corpus with one evaluator.
type Runner struct {
	Evaluator   *recipediff.Evaluator
	Policies    []diff.Policy
	StopOnError bool
	Logger      *slog.Logger
}

// Run compares every pair into its own accumulator and sums the successful
// ones into Report.Total. A failed pair is recorded and skipped unless
// StopOnError is set, in which case Run returns the partial report and the
// pair's error.
func (rn *Runner) Run(ctx context.Context, pairs []*Pair) (*Report, error) {
	logger := rn.Logger
	if logger == nil {
		logger = slog.Default()
	}

	report := &Report{
		RunID:    uuid.NewString(),
		Policies: rn.Policies,
	}
	logger = logger.With("run_id", report.RunID)

	var f1s []float64
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res, err := rn.comparePair(ctx, pair)
		if err != nil {
			logger.Warn("skipping pair", "pair", pair.ID, "error", err)
			report.Pairs = append(report.Pairs, PairResult{ID: pair.ID, Err: err})
			if rn.StopOnError {
				report.F1 = Summarize(f1s)
				return report, fmt.Errorf("pair %s: %w", pair.ID, err)
			}
			continue
		}

		report.Pairs = append(report.Pairs, PairResult{ID: pair.ID, Results: res})
		report.Total.Add(res)
		f1s = append(f1s, res.F1())
	}

	report.F1 = Summarize(f1s)
	logger.Debug("corpus run complete",
		"pairs", len(pairs),
		"failures", len(report.Failures()),
		"f1", report.Total.F1())
	return report, nil
}

func (rn *Runner) comparePair(ctx context.Context, pair *Pair) (score.Results, error) {
	pred, gold, err := pair.Build()
	if err != nil {
		return score.Results{}, err
	}
	var r score.Results
	if err := rn.Evaluator.CompareInto(ctx, &r, pred, gold, rn.Policies...); err != nil {
		return score.Results{}, err
	}
	return r, nil
}
