package bench

import (
	"cmp"
	"context"
	"log/slog"
	"math"
	"slices"

	recipediff "github.com/jamesainslie/go-recipediff"
	"github.com/jamesainslie/go-recipediff/diff"
)

// SweepResult holds the corpus report for one policy.
type SweepResult struct {
	Policy diff.Policy
	Report *Report
}

// Sweep runs the corpus once per policy and returns the results sorted by
// corpus F1, best first. Undefined F1 sorts last.
func Sweep(ctx context.Context, ev *recipediff.Evaluator, pairs []*Pair, policies []diff.Policy, logger *slog.Logger) ([]SweepResult, error) {
	var results []SweepResult

	for _, p := range policies {
		rn := &Runner{
			Evaluator: ev,
			Policies:  []diff.Policy{p},
			Logger:    logger,
		}
		report, err := rn.Run(ctx, pairs)
		if err != nil {
			return nil, err
		}
		results = append(results, SweepResult{Policy: p, Report: report})
	}

	slices.SortStableFunc(results, func(a, b SweepResult) int {
		fa, fb := a.Report.Total.F1(), b.Report.Total.F1()
		switch {
		case math.IsNaN(fa) && math.IsNaN(fb):
			return 0
		case math.IsNaN(fa):
			return 1
		case math.IsNaN(fb):
			return -1
		}
		return cmp.Compare(fb, fa)
	})

	return results, nil
}
