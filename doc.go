// Package recipediff scores predicted recipe action diagrams against gold
// diagrams.
//
// A comparison first aligns the two predicate sequences, then runs one or
// more edge policies over the aligned pairs and accumulates the counts into
// a score.Results.
//
// # Quick Start
//
//	ev := recipediff.New(recipediff.WithExactMatch(false))
//	defer ev.Close()
//
//	r, err := ev.Compare(ctx, pred, gold, diff.PolicyEdges, diff.PolicyFood)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("P=%.3f R=%.3f F1=%.3f\n", r.Precision(), r.Recall(), r.F1())
//
// # Corpora
//
// Results are plain counters. Evaluate each recipe into its own Results and
// sum them with Results.Add; a failed comparison leaves its accumulator in
// an undefined state and should be discarded.
//
// # Thread Safety
//
// Evaluator is safe for concurrent use as long as its hints provider is.
package recipediff
