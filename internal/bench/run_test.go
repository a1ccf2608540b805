package bench

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	recipediff "github.com/jamesainslie/go-recipediff"
	"github.com/jamesainslie/go-recipediff/diagram"
	"github.com/jamesainslie/go-recipediff/diff"
)

func loadPairs(t *testing.T, bodies ...string) []*Pair {
	t.Helper()
	dir := t.TempDir()
	var pairs []*Pair
	for i, body := range bodies {
		path := filepath.Join(dir, fmt.Sprintf("p%d.yaml", i))
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		p, err := LoadPair(path)
		if err != nil {
			t.Fatalf("LoadPair() error = %v", err)
		}
		pairs = append(pairs, p)
	}
	return pairs
}

func TestRunner_Run(t *testing.T) {
	rn := &Runner{Evaluator: recipediff.New(), Policies: []diff.Policy{diff.PolicyEdges}}
	report, err := rn.Run(context.Background(), loadPairs(t, goodPair, emptyPair, brokenPair))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.RunID == "" {
		t.Error("RunID is empty")
	}
	if len(report.Pairs) != 3 {
		t.Fatalf("got %d pair results, want 3", len(report.Pairs))
	}
	failures := report.Failures()
	if len(failures) != 1 || failures[0].ID != "p2" {
		t.Fatalf("Failures() = %+v, want p2 only", failures)
	}
	if !errors.Is(failures[0].Err, diagram.ErrMalformedDiagram) {
		t.Errorf("failure error = %v, want ErrMalformedDiagram", failures[0].Err)
	}

	if report.Total.TruePositives != 1 || report.Total.Total != 1 || report.Total.Correct != 1 {
		t.Errorf("Total TP/Correct/Total = %d/%d/%d, want 1/1/1",
			report.Total.TruePositives, report.Total.Correct, report.Total.Total)
	}
	if report.F1.N != 1 || report.F1.Undefined != 1 || report.F1.Mean != 1 {
		t.Errorf("F1 = %+v, want one defined value of 1 and one undefined", report.F1)
	}
}

func TestRunner_StopOnError(t *testing.T) {
	rn := &Runner{Evaluator: recipediff.New(), StopOnError: true}
	report, err := rn.Run(context.Background(), loadPairs(t, goodPair, brokenPair, emptyPair))
	if !errors.Is(err, diagram.ErrMalformedDiagram) {
		t.Fatalf("Run() error = %v, want ErrMalformedDiagram", err)
	}
	if len(report.Pairs) != 2 {
		t.Errorf("got %d pair results, want 2", len(report.Pairs))
	}
	if report.Total.TruePositives != 1 {
		t.Errorf("Total.TruePositives = %d, want 1", report.Total.TruePositives)
	}
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rn := &Runner{Evaluator: recipediff.New()}
	if _, err := rn.Run(ctx, loadPairs(t, goodPair)); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRunner_Testdata(t *testing.T) {
	pairs, err := LoadCorpus("../../testdata/corpus")
	if err != nil {
		t.Fatalf("LoadCorpus() error = %v", err)
	}
	if len(pairs) == 0 {
		t.Fatal("sample corpus is empty")
	}

	rn := &Runner{
		Evaluator: recipediff.New(recipediff.WithPredicateCounts(true)),
		Policies:  diff.Policies(),
	}
	report, err := rn.Run(context.Background(), pairs)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if failures := report.Failures(); len(failures) > 0 {
		t.Errorf("Failures() = %+v", failures)
	}
	if report.Total.PredicateTP == 0 {
		t.Error("no predicates aligned in the sample corpus")
	}
}
