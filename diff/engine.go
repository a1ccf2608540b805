// Package diff scores the edges of a predicted action diagram against a gold
// diagram, given a node alignment between them.
//
// Every policy runs in two phases. Aligned node pairs have their outgoing
// destinations remapped into gold index space and merge-walked against the
// gold destinations; nodes left out of the alignment then contribute all of
// their edges as false positives (predicted) or false negatives (gold).
package diff

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jamesainslie/go-recipediff/align"
	"github.com/jamesainslie/go-recipediff/diagram"
	"github.com/jamesainslie/go-recipediff/hints"
	"github.com/jamesainslie/go-recipediff/score"
)

// Option configures an Engine.
type Option func(*Engine)

// WithHints sets the provider consulted for predicted ingredients and locations.
func WithHints(p hints.Provider) Option {
	return func(e *Engine) {
		e.hints = p
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine compares one predicted/gold diagram pair. It holds no counters;
// every pass writes into the Results passed to it.
type Engine struct {
	pred    *diagram.Diagram
	gold    *diagram.Diagram
	mapping *align.Mapping
	cfg     Config
	hints   hints.Provider
	logger  *slog.Logger
}

// New returns an engine for pred and gold aligned by m.
func New(pred, gold *diagram.Diagram, m *align.Mapping, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		pred:    pred,
		gold:    gold,
		mapping: m,
		cfg:     cfg,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the flags the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Run executes one policy pass into r.
func (e *Engine) Run(ctx context.Context, p Policy, r *score.Results) error {
	var err error
	switch p {
	case PolicyEdges:
		err = e.Edges(ctx, r)
	case PolicyFood:
		err = e.Food(ctx, r)
	case PolicyLocations:
		err = e.Locations(ctx, r)
	case PolicyPossibleEdges:
		err = e.PossibleEdges(ctx, r)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownPolicy, p)
	}
	if err != nil {
		return fmt.Errorf("%v: %w", p, err)
	}
	e.logger.Debug("policy pass complete",
		"policy", p.String(),
		"tp", r.TruePositives,
		"fp", r.FalsePositives,
		"fn", r.FalseNegatives)
	return nil
}

// Predicates records aligned nodes as predicate true positives, unaligned
// predicted nodes as false positives and unaligned gold nodes as false
// negatives.
func (e *Engine) Predicates(r *score.Results) {
	n := e.mapping.Len()
	r.PredicateTP += n
	r.PredicateFP += e.pred.Len() - n
	r.PredicateFN += e.gold.Len() - n
}

// keepFunc filters the triples a policy looks at. src is the node the edge leaves.
type keepFunc func(ctx context.Context, src *diagram.Node, t diagram.Triple) (bool, error)

// compareFunc scores the strings at one shared destination index.
type compareFunc func(pred, gold []string) (outcome, error)

type edgeRule struct {
	keepPred keepFunc
	keepGold keepFunc
	compare  compareFunc
}

// diffEdges runs the two-phase comparison for an edge-based rule.
func (e *Engine) diffEdges(ctx context.Context, rule edgeRule, r *score.Results) error {
	for _, pair := range e.mapping.Pairs() {
		p, _ := e.pred.Node(pair.Pred)
		g, _ := e.gold.Node(pair.Gold)
		if err := e.diffPair(ctx, rule, p, g, r); err != nil {
			return fmt.Errorf("aligned pair %d->%d: %w", pair.Pred, pair.Gold, err)
		}
	}

	for p := range e.pred.All() {
		if _, ok := e.mapping.GoldIndex(p.Index()); ok {
			continue
		}
		dests, err := filter(ctx, e.pred, p, p.AllDestinations(), rule.keepPred)
		if err != nil {
			return fmt.Errorf("predicted node %d: %w", p.Index(), err)
		}
		for idx, ts := range dests {
			r.FalsePositive(score.ReachOf(p.Index(), idx), len(ts))
		}
	}

	for g := range e.gold.All() {
		if _, ok := e.mapping.PredIndex(g.Index()); ok {
			continue
		}
		dests, err := filter(ctx, e.gold, g, g.AllDestinations(), rule.keepGold)
		if err != nil {
			return fmt.Errorf("gold node %d: %w", g.Index(), err)
		}
		for idx, ts := range dests {
			r.FalseNegative(score.ReachOf(g.Index(), idx), len(ts))
		}
	}
	return nil
}

func (e *Engine) diffPair(ctx context.Context, rule edgeRule, p, g *diagram.Node, r *score.Results) error {
	if !p.HasDestinations() && !g.HasDestinations() {
		return nil
	}
	pd, err := filter(ctx, e.pred, p, p.AllDestinations(), rule.keepPred)
	if err != nil {
		return err
	}
	gd, err := filter(ctx, e.gold, g, g.AllDestinations(), rule.keepGold)
	if err != nil {
		return err
	}

	remapped := make(diagram.Destinations, len(pd))
	for _, idx := range pd.Keys() {
		gi, ok := e.mapping.GoldIndex(idx)
		if !ok {
			// Points at a node with no gold counterpart.
			r.FalsePositive(score.ReachOf(p.Index(), idx), len(pd[idx]))
			r.Total++
			continue
		}
		remapped[gi] = append(remapped[gi], pd[idx]...)
	}

	if len(remapped) == 0 {
		for idx, ts := range gd {
			r.FalseNegative(score.ReachOf(g.Index(), idx), len(ts))
		}
		r.Total += len(gd)
		return nil
	}

	pk, gk := remapped.Keys(), gd.Keys()
	i, j := 0, 0
	for i < len(pk) || j < len(gk) {
		r.Total++
		switch {
		case j == len(gk) || (i < len(pk) && pk[i] < gk[j]):
			r.FalsePositive(score.ReachOf(g.Index(), pk[i]), len(remapped[pk[i]]))
			i++
		case i == len(pk) || gk[j] < pk[i]:
			r.FalseNegative(score.ReachOf(g.Index(), gk[j]), len(gd[gk[j]]))
			j++
		default:
			idx := gk[j]
			o, err := rule.compare(texts(remapped[idx]), texts(gd[idx]))
			if err != nil {
				return fmt.Errorf("destination %d: %w", idx, err)
			}
			record(r, score.ReachOf(g.Index(), idx), o)
			if o.exact() {
				r.Correct++
			}
			i++
			j++
		}
	}
	return nil
}

// filter validates dests against d and keeps the triples accepted by keep.
func filter(ctx context.Context, d *diagram.Diagram, src *diagram.Node, dests diagram.Destinations, keep keepFunc) (diagram.Destinations, error) {
	out := make(diagram.Destinations, len(dests))
	for _, idx := range dests.Keys() {
		ts := dests[idx]
		if err := d.CheckDestination(idx, ts); err != nil {
			return nil, err
		}
		for _, t := range ts {
			ok, err := keep(ctx, src, t)
			if err != nil {
				return nil, err
			}
			if ok {
				out[idx] = append(out[idx], t)
			}
		}
	}
	return out, nil
}

func texts(ts []diagram.Triple) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Text
	}
	return out
}

func record(r *score.Results, reach score.Reach, o outcome) {
	r.TruePositive(reach, o.tp)
	r.FalsePositive(reach, o.fp)
	r.FalseNegative(reach, o.fn)
}
