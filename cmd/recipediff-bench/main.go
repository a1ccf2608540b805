package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	recipediff "github.com/jamesainslie/go-recipediff"
	"github.com/jamesainslie/go-recipediff/diff"
	"github.com/jamesainslie/go-recipediff/internal/bench"
)

// Set by the build via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML harness config")
		corpusDir  = flag.String("corpus", "testdata/corpus", "Directory containing pair files")
		sweep      = flag.Bool("sweep", false, "Score each configured policy separately")
		jsonOut    = flag.String("json", "", "Write the report as JSON to this file")
		verbose    = flag.Bool("v", false, "Debug logging")
		showVer    = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVer {
		fmt.Printf("recipediff-bench %s (%s, %s)\n", version, commit, date)
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := bench.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	policies, err := cfg.ParsedPolicies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error in config: %v\n", err)
		os.Exit(1)
	}

	// Load corpus
	pairs, err := bench.LoadCorpus(*corpusDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d recipes from %s\n\n", len(pairs), *corpusDir)

	opts := append(cfg.Options(), recipediff.WithLogger(logger))
	provider, err := cfg.Hints()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading hints: %v\n", err)
		os.Exit(1)
	}
	if provider != nil {
		opts = append(opts, recipediff.WithHints(provider))
	}
	ev := recipediff.New(opts...)
	defer func() { _ = ev.Close() }()

	ctx := context.Background()

	if *sweep {
		runSweep(ctx, ev, pairs, policies, logger)
		return
	}

	rn := &bench.Runner{
		Evaluator:   ev,
		Policies:    policies,
		StopOnError: cfg.StopOnError,
		Logger:      logger,
	}
	report, err := rn.Run(ctx, pairs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error evaluating corpus: %v\n", err)
		os.Exit(1)
	}

	printReport(report)
	if *jsonOut != "" {
		writeJSON(*jsonOut, report)
	}
}

func runSweep(ctx context.Context, ev *recipediff.Evaluator, pairs []*bench.Pair, policies []diff.Policy, logger *slog.Logger) {
	results, err := bench.Sweep(ctx, ev, pairs, policies, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error during sweep: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Policy Sweep Results")
	fmt.Println(strings.Repeat("-", 56))
	fmt.Printf("%-16s %-8s %-8s %-8s %-8s\n", "Policy", "Prec", "Rec", "F1", "Failed")
	for _, r := range results {
		t := r.Report.Total
		fmt.Printf("%-16s %-8.3f %-8.3f %-8.3f %-8d\n",
			r.Policy, t.Precision(), t.Recall(), t.F1(), len(r.Report.Failures()))
	}
	fmt.Println(strings.Repeat("-", 56))
}

func printReport(r *bench.Report) {
	t := r.Total
	fmt.Printf("Run %s\n", r.RunID)
	fmt.Printf("Precision: %.3f  Recall: %.3f  F1: %.3f  Accuracy: %.3f\n",
		t.Precision(), t.Recall(), t.F1(), t.Accuracy())
	fmt.Printf("(TP: %d, FP: %d, FN: %d, TN: %d)\n",
		t.TruePositives, t.FalsePositives, t.FalseNegatives, t.TrueNegatives)
	fmt.Printf("Sequential:  P %.3f  R %.3f\n", t.Sequential.Precision(), t.Sequential.Recall())
	fmt.Printf("Long-range:  P %.3f  R %.3f\n", t.LongRange.Precision(), t.LongRange.Recall())
	fmt.Printf("Per-recipe F1: mean %.3f  stddev %.3f  min %.3f  max %.3f  (%d defined, %d undefined)\n",
		r.F1.Mean, r.F1.StdDev, r.F1.Min, r.F1.Max, r.F1.N, r.F1.Undefined)

	if failures := r.Failures(); len(failures) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failures))
		for _, f := range failures {
			fmt.Printf("  %s: %v\n", f.ID, f.Err)
		}
	}
}

func writeJSON(path string, r *bench.Report) {
	data, err := r.MarshalJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error encoding report: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing report: %v\n", err)
		os.Exit(1)
	}
}
