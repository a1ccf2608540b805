package diff

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jamesainslie/go-recipediff/align"
	"github.com/jamesainslie/go-recipediff/diagram"
	"github.com/jamesainslie/go-recipediff/score"
)

func obj(text string, ingredients ...string) *diagram.ArgDoc {
	return &diagram.ArgDoc{Type: "object", Text: text, Ingredients: ingredients}
}

func loc(text string) diagram.ArgDoc {
	return diagram.ArgDoc{Type: "location", Text: text, Preposition: "in"}
}

func step(predicate string, dobj *diagram.ArgDoc, preps ...diagram.ArgDoc) diagram.NodeDoc {
	return diagram.NodeDoc{Predicate: predicate, DirectObject: dobj, Prepositional: preps}
}

func build(t *testing.T, doc diagram.Document) *diagram.Diagram {
	t.Helper()
	d, err := doc.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return d
}

func compare(t *testing.T, pred, gold diagram.Document, cfg Config, p Policy, opts ...Option) (score.Results, error) {
	t.Helper()
	pd, gd := build(t, pred), build(t, gold)
	var r score.Results
	err := New(pd, gd, align.Align(pd, gd), cfg, opts...).Run(context.Background(), p, &r)
	return r, err
}

func mixAddBake() diagram.Document {
	return diagram.Document{
		Nodes: []diagram.NodeDoc{
			step("mix", obj("flour", "flour")),
			step("add", obj("eggs", "eggs"), diagram.ArgDoc{Type: "coobject", Text: "to the bowl", Preposition: "to"}),
			step("bake", obj("it"), loc("oven")),
		},
		Edges: []diagram.EdgeDoc{
			{From: 0, To: 1, ToArg: "prep:0", Text: "mixture"},
			{From: 1, To: 2, ToArg: "dobj", Text: "batter"},
		},
	}
}

func TestEdges_Identical(t *testing.T) {
	r, err := compare(t, mixAddBake(), mixAddBake(), DefaultConfig(), PolicyEdges)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := score.Results{
		TruePositives: 2,
		Correct:       2,
		Total:         2,
		Sequential:    score.Counts{TruePositives: 2},
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Results mismatch (-want +got):\n%s", diff)
	}
	for name, v := range map[string]float64{
		"Precision": r.Precision(),
		"Recall":    r.Recall(),
		"F1":        r.F1(),
		"Accuracy":  r.Accuracy(),
	} {
		if v != 1.0 {
			t.Errorf("%s() = %v, want 1", name, v)
		}
	}
}

func TestEdges_UnalignedGoldNode(t *testing.T) {
	pred := diagram.Document{
		Nodes: []diagram.NodeDoc{step("mix", obj("flour", "flour")), step("bake", obj("it"), loc("oven"))},
		Edges: []diagram.EdgeDoc{{From: 0, To: 1, ToArg: "dobj", Text: "batter"}},
	}

	r, err := compare(t, pred, mixAddBake(), DefaultConfig(), PolicyEdges)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// mix->bake lands on gold index 2 while gold mix feeds add at index 1;
	// gold add is unaligned and its edge to bake is missed outright.
	want := score.Results{
		FalsePositives: 1,
		FalseNegatives: 2,
		Total:          2,
		Sequential:     score.Counts{FalseNegatives: 2},
		LongRange:      score.Counts{FalsePositives: 1},
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Results mismatch (-want +got):\n%s", diff)
	}
}

func TestEdges_ArgumentStrings(t *testing.T) {
	tests := []struct {
		name     string
		predText string
		goldText string
		exact    bool
		wantTP   int
		wantFP   int
		wantFN   int
		wantErr  bool
	}{
		{"same string", "flour", "flour", true, 1, 0, 0, false},
		{"containment", "chopped onions", "onions", false, 1, 0, 0, false},
		{"containment under exact mode", "chopped onions", "onions", true, 0, 0, 0, true},
		{"different", "butter", "oil", false, 0, 1, 1, false},
		{"empty predicted", "", "oil", false, 0, 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := func(text string) diagram.Document {
				return diagram.Document{
					Nodes: []diagram.NodeDoc{step("chop", obj("onions", "onions")), step("fry", obj("them"))},
					Edges: []diagram.EdgeDoc{{From: 0, To: 1, ToArg: "dobj", Text: text}},
				}
			}
			cfg := DefaultConfig()
			cfg.ExactMatch = tt.exact

			r, err := compare(t, doc(tt.predText), doc(tt.goldText), cfg, PolicyEdges)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInconsistentMatch) {
					t.Errorf("error = %v, want ErrInconsistentMatch", err)
				}
				return
			}
			if r.TruePositives != tt.wantTP || r.FalsePositives != tt.wantFP || r.FalseNegatives != tt.wantFN {
				t.Errorf("TP/FP/FN = %d/%d/%d, want %d/%d/%d",
					r.TruePositives, r.FalsePositives, r.FalseNegatives, tt.wantTP, tt.wantFP, tt.wantFN)
			}
		})
	}
}

func TestEdges_DestinationOutsideAlignment(t *testing.T) {
	pred := diagram.Document{
		Nodes: []diagram.NodeDoc{step("mix", obj("cream", "cream")), step("whisk", obj("it")), step("bake", obj("it"))},
		Edges: []diagram.EdgeDoc{
			{From: 0, To: 1, ToArg: "dobj", Text: "cream"},
			{From: 1, To: 2, ToArg: "dobj", Text: "batter"},
		},
	}
	gold := diagram.Document{
		Nodes: []diagram.NodeDoc{step("mix", obj("cream", "cream")), step("bake", obj("it"))},
		Edges: []diagram.EdgeDoc{{From: 0, To: 1, ToArg: "dobj", Text: "batter"}},
	}

	r, err := compare(t, pred, gold, DefaultConfig(), PolicyEdges)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// mix->whisk points at an unaligned node, leaving mix with no remapped
	// destinations; whisk->bake leaves an unaligned node.
	want := score.Results{
		FalsePositives: 2,
		FalseNegatives: 1,
		Total:          2,
		Sequential:     score.Counts{FalsePositives: 2, FalseNegatives: 1},
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Results mismatch (-want +got):\n%s", diff)
	}
}

func TestEdges_DisjointVocabulary(t *testing.T) {
	pred := diagram.Document{
		Nodes: []diagram.NodeDoc{step("whisk", obj("cream", "cream")), step("pour", obj("it"))},
		Edges: []diagram.EdgeDoc{{From: 0, To: 1, ToArg: "dobj", Text: "cream"}},
	}
	gold := diagram.Document{
		Nodes: []diagram.NodeDoc{step("grill", obj("steak", "steak")), step("slice", obj("it"))},
		Edges: []diagram.EdgeDoc{{From: 0, To: 1, ToArg: "dobj", Text: "steak"}},
	}

	r, err := compare(t, pred, gold, DefaultConfig(), PolicyEdges)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if r.TruePositives != 0 || r.FalsePositives != 1 || r.FalseNegatives != 1 {
		t.Errorf("TP/FP/FN = %d/%d/%d, want 0/1/1", r.TruePositives, r.FalsePositives, r.FalseNegatives)
	}
}

func TestEdges_IgnoreOtherArgs(t *testing.T) {
	doc := func(withOther bool) diagram.Document {
		serve := step("serve", obj("it"))
		serve.Other = []diagram.ArgDoc{{Type: "other", Text: "with a spoon"}}
		d := diagram.Document{
			Nodes: []diagram.NodeDoc{step("mix", obj("flour", "flour")), serve},
			Edges: []diagram.EdgeDoc{{From: 0, To: 1, ToArg: "dobj", Text: "mixture"}},
		}
		if withOther {
			d.Edges = append(d.Edges, diagram.EdgeDoc{From: 0, To: 1, ToArg: "other:0", Text: "spoon"})
		}
		return d
	}

	tests := []struct {
		name   string
		ignore bool
		wantFN int
	}{
		{"counted", false, 1},
		{"ignored", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.IgnoreOtherArgs = tt.ignore
			r, err := compare(t, doc(false), doc(true), cfg, PolicyEdges)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if r.TruePositives != 1 || r.FalseNegatives != tt.wantFN {
				t.Errorf("TP/FN = %d/%d, want 1/%d", r.TruePositives, r.FalseNegatives, tt.wantFN)
			}
		})
	}
}

func TestEdges_InterSentenceEdges(t *testing.T) {
	doc := func(long bool) diagram.Document {
		d := diagram.Document{
			Nodes: []diagram.NodeDoc{
				{Predicate: "mix", Sentence: 0, DirectObject: obj("flour", "flour")},
				{Predicate: "rest", Sentence: 0, DirectObject: obj("it")},
				{Predicate: "bake", Sentence: 1, DirectObject: obj("it")},
			},
			Edges: []diagram.EdgeDoc{{From: 0, To: 1, ToArg: "dobj", Text: "dough"}},
		}
		if long {
			d.Edges = append(d.Edges, diagram.EdgeDoc{From: 0, To: 2, ToArg: "dobj", Text: "batter"})
		}
		return d
	}

	tests := []struct {
		name          string
		interSentence bool
		want          score.Results
	}{
		{
			name:          "kept",
			interSentence: true,
			want: score.Results{
				TruePositives:  1,
				FalseNegatives: 1,
				Correct:        1,
				Total:          2,
				Sequential:     score.Counts{TruePositives: 1},
				LongRange:      score.Counts{FalseNegatives: 1},
			},
		},
		{
			name:          "dropped",
			interSentence: false,
			want: score.Results{
				TruePositives: 1,
				Correct:       1,
				Total:         1,
				Sequential:    score.Counts{TruePositives: 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.InterSentenceEdges = tt.interSentence
			r, err := compare(t, doc(false), doc(true), cfg, PolicyEdges)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, r); diff != "" {
				t.Errorf("Results mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	pred := build(t, diagram.Document{Nodes: []diagram.NodeDoc{step("mix", nil), step("bake", nil)}})
	gold := build(t, mixAddBake())

	var r score.Results
	New(pred, gold, align.Align(pred, gold), DefaultConfig()).Predicates(&r)
	if r.PredicateTP != 2 || r.PredicateFP != 0 || r.PredicateFN != 1 {
		t.Errorf("predicate TP/FP/FN = %d/%d/%d, want 2/0/1", r.PredicateTP, r.PredicateFP, r.PredicateFN)
	}
}

func TestRun_UnknownPolicy(t *testing.T) {
	_, err := compare(t, mixAddBake(), mixAddBake(), DefaultConfig(), Policy(42))
	if !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("Run() error = %v, want ErrUnknownPolicy", err)
	}
}

func TestRun_IdenticalDiagrams(t *testing.T) {
	for _, p := range Policies() {
		t.Run(p.String(), func(t *testing.T) {
			r, err := compare(t, mixAddBake(), mixAddBake(), DefaultConfig(), p)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if r.FalsePositives != 0 || r.FalseNegatives != 0 {
				t.Errorf("FP/FN = %d/%d, want 0/0", r.FalsePositives, r.FalseNegatives)
			}
			for name, v := range map[string]float64{
				"Precision": r.Precision(),
				"Recall":    r.Recall(),
				"F1":        r.F1(),
			} {
				if v != 1.0 {
					t.Errorf("%s() = %v, want 1", name, v)
				}
			}
		})
	}
}

func TestRun_EmptyDiagrams(t *testing.T) {
	for _, p := range Policies() {
		r, err := compare(t, diagram.Document{}, mixAddBake(), DefaultConfig(), p)
		if err != nil {
			t.Fatalf("%v: Run() error = %v", p, err)
		}
		if r.TruePositives != 0 || r.FalsePositives != 0 {
			t.Errorf("%v: TP/FP = %d/%d, want 0/0", p, r.TruePositives, r.FalsePositives)
		}
	}
}
