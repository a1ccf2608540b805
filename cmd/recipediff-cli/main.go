package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	recipediff "github.com/jamesainslie/go-recipediff"
	"github.com/jamesainslie/go-recipediff/diagram"
	"github.com/jamesainslie/go-recipediff/diff"
	"github.com/jamesainslie/go-recipediff/hints"
	"github.com/jamesainslie/go-recipediff/internal/bench"
	"github.com/jamesainslie/go-recipediff/score"
)

// Set by the build via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	pairPath := flag.String("pair", "", "Path to a pair file with predicted and gold diagrams")
	predPath := flag.String("pred", "", "Path to the predicted diagram")
	goldPath := flag.String("gold", "", "Path to the gold diagram")
	policies := flag.String("policies", "edges", "Comma-separated policies: "+policyNames())
	exact := flag.Bool("exact", false, "Require exact argument string matches")
	ignoreOther := flag.Bool("ignore-other", false, "Ignore edges into other arguments")
	interSentence := flag.Bool("inter-sentence", true, "Score edges that cross sentences")
	predicates := flag.Bool("predicates", false, "Report predicate alignment counts")
	edges := flag.Bool("edges", false, "Print the edges of both diagrams")
	lexicon := flag.String("lexicon", "", "Path to a YAML hint lexicon")
	verbose := flag.Bool("v", false, "Debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("recipediff-cli %s (%s, %s)\n", version, commit, date)
		return
	}

	if *pairPath == "" && (*predPath == "" || *goldPath == "") {
		fmt.Fprintln(os.Stderr, "Usage: recipediff-cli (-pair PAIR | -pred PRED -gold GOLD) [OPTIONS]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	pred, gold, err := load(*pairPath, *predPath, *goldPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading diagrams: %v\n", err)
		os.Exit(1)
	}

	var ps []diff.Policy
	for _, name := range strings.Split(*policies, ",") {
		p, err := diff.ParsePolicy(strings.TrimSpace(name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		ps = append(ps, p)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	opts := []recipediff.Option{
		recipediff.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))),
		recipediff.WithExactMatch(*exact),
		recipediff.WithIgnoreOtherArgs(*ignoreOther),
		recipediff.WithInterSentenceEdges(*interSentence),
		recipediff.WithPredicateCounts(*predicates),
	}
	if *lexicon != "" {
		lex, err := hints.LoadLexicon(*lexicon)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading lexicon: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, recipediff.WithHints(lex))
	}

	ev := recipediff.New(opts...)
	defer func() { _ = ev.Close() }() // Cleanup error ignored in CLI

	ctx := context.Background()

	m, err := ev.Align(pred, gold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Alignment (%d of %d predicted, %d gold):\n", m.Len(), pred.Len(), gold.Len())
	for _, pair := range m.Pairs() {
		p, _ := pred.Node(pair.Pred)
		g, _ := gold.Node(pair.Gold)
		fmt.Printf("  %d:%-12s -> %d:%s\n", pair.Pred, p.Predicate(), pair.Gold, g.Predicate())
	}

	if *edges {
		printEdges("Predicted", pred)
		printEdges("Gold", gold)
	}

	r, err := ev.Compare(ctx, pred, gold, ps...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printResults(r, *predicates)
}

func load(pairPath, predPath, goldPath string) (*diagram.Diagram, *diagram.Diagram, error) {
	if pairPath != "" {
		p, err := bench.LoadPair(pairPath)
		if err != nil {
			return nil, nil, err
		}
		return p.Build()
	}

	p := &bench.Pair{}
	var err error
	if p.Predicted, err = bench.LoadDocument(predPath); err != nil {
		return nil, nil, err
	}
	if p.Gold, err = bench.LoadDocument(goldPath); err != nil {
		return nil, nil, err
	}
	return p.Build()
}

// printEdges lists each node's outgoing edges, entities in the order they were connected.
func printEdges(label string, d *diagram.Diagram) {
	fmt.Printf("%s edges:\n", label)
	for n := range d.All() {
		for _, entity := range n.Entities() {
			name := entity
			if name == "" {
				name = "(output)"
			}
			dests := n.Destinations(entity)
			for _, idx := range dests.Keys() {
				for _, t := range dests[idx] {
					fmt.Printf("  %d:%-12s %-10s -> %d:%s %q\n", n.Index(), n.Predicate(), name, idx, t.Node.Predicate(), t.Text)
				}
			}
		}
	}
}

func printResults(r *score.Results, predicates bool) {
	fmt.Printf("Precision: %.3f  Recall: %.3f  F1: %.3f  Accuracy: %.3f\n",
		r.Precision(), r.Recall(), r.F1(), r.Accuracy())
	fmt.Printf("(TP: %d, FP: %d, FN: %d, TN: %d, Correct: %d/%d)\n",
		r.TruePositives, r.FalsePositives, r.FalseNegatives, r.TrueNegatives, r.Correct, r.Total)
	fmt.Printf("Sequential:  P %.3f  R %.3f\n", r.Sequential.Precision(), r.Sequential.Recall())
	fmt.Printf("Long-range:  P %.3f  R %.3f\n", r.LongRange.Precision(), r.LongRange.Recall())
	if predicates {
		fmt.Printf("Predicates:  P %.3f  R %.3f  F1 %.3f\n",
			r.PredicatePrecision(), r.PredicateRecall(), r.PredicateF1())
	}
}

func policyNames() string {
	var names []string
	for _, p := range diff.Policies() {
		names = append(names, p.String())
	}
	return strings.Join(names, ", ")
}
