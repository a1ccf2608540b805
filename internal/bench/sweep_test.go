package bench

import (
	"context"
	"math"
	"testing"

	recipediff "github.com/jamesainslie/go-recipediff"
	"github.com/jamesainslie/go-recipediff/diff"
)

func TestSweep(t *testing.T) {
	policies := []diff.Policy{diff.PolicyLocations, diff.PolicyEdges, diff.PolicyFood}
	results, err := Sweep(context.Background(), recipediff.New(), loadPairs(t, goodPair), policies, nil)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	want := []diff.Policy{diff.PolicyEdges, diff.PolicyFood, diff.PolicyLocations}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i, p := range want {
		if results[i].Policy != p {
			t.Errorf("results[%d].Policy = %v, want %v", i, results[i].Policy, p)
		}
	}
	if f1 := results[2].Report.Total.F1(); !math.IsNaN(f1) {
		t.Errorf("locations F1 = %v, want NaN", f1)
	}
	if tn := results[2].Report.Total.TrueNegatives; tn != 2 {
		t.Errorf("locations TrueNegatives = %d, want 2", tn)
	}
}
