package diff

import (
	"context"
	"fmt"
	"slices"

	"github.com/jamesainslie/go-recipediff/diagram"
	"github.com/jamesainslie/go-recipediff/hints"
	"github.com/jamesainslie/go-recipediff/score"
)

// Edges compares the destination strings of every edge, honoring
// IgnoreOtherArgs and InterSentenceEdges.
func (e *Engine) Edges(ctx context.Context, r *score.Results) error {
	keep := func(_ context.Context, src *diagram.Node, t diagram.Triple) (bool, error) {
		if e.cfg.IgnoreOtherArgs && t.Arg.Role() == diagram.RoleOther {
			return false, nil
		}
		if !e.cfg.InterSentenceEdges && t.Node.Sentence() != src.Sentence() {
			return false, nil
		}
		return true, nil
	}
	return e.diffEdges(ctx, edgeRule{
		keepPred: keep,
		keepGold: keep,
		compare: func(pred, gold []string) (outcome, error) {
			return matchStrings(pred, gold, e.cfg.ExactMatch)
		},
	}, r)
}

// Food compares only edges into ingredient-bearing arguments, as sorted sets.
// Gold provenance is purely syntactic; predicted arguments may also be
// promoted by the ingredient classifier.
func (e *Engine) Food(ctx context.Context, r *score.Results) error {
	return e.diffEdges(ctx, edgeRule{
		keepPred: func(ctx context.Context, _ *diagram.Node, t diagram.Triple) (bool, error) {
			if t.Arg.HasIngredients() {
				return true, nil
			}
			if e.hints == nil {
				return false, nil
			}
			return hints.AnyIngredient(ctx, e.hints, t.Arg.Strings())
		},
		keepGold: func(_ context.Context, _ *diagram.Node, t diagram.Triple) (bool, error) {
			return t.Arg.HasIngredients(), nil
		},
		compare: func(pred, gold []string) (outcome, error) {
			return mergeSorted(pred, gold), nil
		},
	}, r)
}

// Locations compares the location of each action. Aligned pairs where
// neither side has a location count as true negatives.
func (e *Engine) Locations(ctx context.Context, r *score.Results) error {
	for _, pair := range e.mapping.Pairs() {
		p, _ := e.pred.Node(pair.Pred)
		g, _ := e.gold.Node(pair.Gold)

		pl, err := e.location(ctx, p, true)
		if err != nil {
			return fmt.Errorf("predicted node %d: %w", p.Index(), err)
		}
		gl, err := e.location(ctx, g, false)
		if err != nil {
			return fmt.Errorf("gold node %d: %w", g.Index(), err)
		}

		switch {
		case pl == "" && gl == "":
			r.TrueNegative(1)
		case gl == "":
			r.FalsePositive(score.Unbucketed, 1)
		case pl == "":
			r.FalseNegative(score.Unbucketed, 1)
		default:
			o, err := matchStrings([]string{pl}, []string{gl}, e.cfg.ExactMatch)
			if err != nil {
				return fmt.Errorf("aligned pair %d->%d: %w", pair.Pred, pair.Gold, err)
			}
			record(r, score.Unbucketed, o)
		}
	}

	for p := range e.pred.All() {
		if _, ok := e.mapping.GoldIndex(p.Index()); ok {
			continue
		}
		pl, err := e.location(ctx, p, true)
		if err != nil {
			return fmt.Errorf("predicted node %d: %w", p.Index(), err)
		}
		if pl != "" {
			r.FalsePositive(score.Unbucketed, 1)
		}
	}
	for g := range e.gold.All() {
		if _, ok := e.mapping.PredIndex(g.Index()); ok {
			continue
		}
		gl, err := e.location(ctx, g, false)
		if err != nil {
			return fmt.Errorf("gold node %d: %w", g.Index(), err)
		}
		if gl != "" {
			r.FalseNegative(score.Unbucketed, 1)
		}
	}
	return nil
}

// location returns the first prepositional location of n, falling back to the
// hint provider for predicted nodes.
func (e *Engine) location(ctx context.Context, n *diagram.Node, predicted bool) (string, error) {
	if loc, ok := n.Event().Location(); ok && loc.Text != "" {
		return loc.Text, nil
	}
	if !predicted || e.hints == nil {
		return "", nil
	}
	loc, ok, err := e.hints.Location(ctx, n.Event())
	if err != nil || !ok {
		return "", err
	}
	return loc, nil
}

// PossibleEdges checks, for every gold edge of the unnamed entity, whether the
// predicted counterpart lands on the aligned destination with some string,
// either the edge text or the receiving argument, matching an argument of the
// gold destination action. A gold edge that fails the check is counted
// as both a false positive and a false negative, so this policy lowers
// precision and recall together and is not comparable with Edges.
func (e *Engine) PossibleEdges(ctx context.Context, r *score.Results) error {
	for _, pair := range e.mapping.Pairs() {
		p, _ := e.pred.Node(pair.Pred)
		g, _ := e.gold.Node(pair.Gold)
		if err := e.possiblePair(p, g, r); err != nil {
			return fmt.Errorf("aligned pair %d->%d: %w", pair.Pred, pair.Gold, err)
		}
	}

	for p := range e.pred.All() {
		if _, ok := e.mapping.GoldIndex(p.Index()); ok {
			continue
		}
		dests := p.Destinations("")
		for _, idx := range dests.Keys() {
			if err := e.pred.CheckDestination(idx, dests[idx]); err != nil {
				return fmt.Errorf("predicted node %d: %w", p.Index(), err)
			}
			r.FalsePositive(score.ReachOf(p.Index(), idx), len(dests[idx]))
		}
	}
	for g := range e.gold.All() {
		if _, ok := e.mapping.PredIndex(g.Index()); ok {
			continue
		}
		dests := g.Destinations("")
		for _, idx := range dests.Keys() {
			if err := e.gold.CheckDestination(idx, dests[idx]); err != nil {
				return fmt.Errorf("gold node %d: %w", g.Index(), err)
			}
			r.FalseNegative(score.ReachOf(g.Index(), idx), len(dests[idx]))
		}
	}
	return nil
}

// landingStrings returns the edge text of each triple together with the
// strings of the argument it lands on.
func landingStrings(ts []diagram.Triple) []string {
	var out []string
	for _, t := range ts {
		out = append(out, t.Text)
		if t.Arg != nil {
			out = append(out, t.Arg.Strings()...)
		}
	}
	return out
}

func (e *Engine) possiblePair(p, g *diagram.Node, r *score.Results) error {
	gd := g.Destinations("")
	if len(gd) == 0 {
		return nil
	}

	candidates := make(map[int][]string)
	pd := p.Destinations("")
	for _, idx := range pd.Keys() {
		if err := e.pred.CheckDestination(idx, pd[idx]); err != nil {
			return err
		}
		if gi, ok := e.mapping.GoldIndex(idx); ok {
			candidates[gi] = append(candidates[gi], landingStrings(pd[idx])...)
		}
	}

	for _, idx := range gd.Keys() {
		if err := e.gold.CheckDestination(idx, gd[idx]); err != nil {
			return err
		}
		dest, _ := e.gold.Node(idx)
		var targets []string
		for _, arg := range dest.Event().CoreArguments() {
			targets = append(targets, arg.Strings()...)
		}
		slices.Sort(targets)

		reach := score.ReachOf(g.Index(), idx)
		if anyMatch(candidates[idx], targets, e.cfg.ExactMatch) {
			r.TruePositive(reach, len(gd[idx]))
			continue
		}
		r.FalsePositive(reach, len(gd[idx]))
		r.FalseNegative(reach, len(gd[idx]))
	}
	return nil
}
