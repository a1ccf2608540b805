package align

import "github.com/jamesainslie/go-recipediff/diagram"

// Mapping is a partial one-to-one map from predicted nodes to gold nodes.
type Mapping struct {
	pred, gold *diagram.Diagram
	pairs      []Pair
	forward    map[int]int
	inverse    map[int]int
}

func newMapping(pred, gold *diagram.Diagram, pairs []Pair) *Mapping {
	m := &Mapping{
		pred:    pred,
		gold:    gold,
		pairs:   pairs,
		forward: make(map[int]int, len(pairs)),
		inverse: make(map[int]int, len(pairs)),
	}
	for _, p := range pairs {
		m.forward[p.Pred] = p.Gold
		m.inverse[p.Gold] = p.Pred
	}
	return m
}

// Len returns the number of mapped pairs.
func (m *Mapping) Len() int { return len(m.pairs) }

// Pairs returns the mapped pairs in predicted order.
func (m *Mapping) Pairs() []Pair { return m.pairs }

// Gold returns the gold node aligned with predicted node n.
func (m *Mapping) Gold(n *diagram.Node) (*diagram.Node, bool) {
	idx, ok := m.GoldIndex(n.Index())
	if !ok {
		return nil, false
	}
	return m.gold.Node(idx)
}

// Pred returns the predicted node aligned with gold node n.
func (m *Mapping) Pred(n *diagram.Node) (*diagram.Node, bool) {
	idx, ok := m.PredIndex(n.Index())
	if !ok {
		return nil, false
	}
	return m.pred.Node(idx)
}

// GoldIndex maps a predicted index into gold index space.
func (m *Mapping) GoldIndex(pred int) (int, bool) {
	g, ok := m.forward[pred]
	return g, ok
}

// PredIndex maps a gold index back into predicted index space.
func (m *Mapping) PredIndex(gold int) (int, bool) {
	p, ok := m.inverse[gold]
	return p, ok
}

// Inverse returns the gold-to-predicted view of the mapping.
func (m *Mapping) Inverse() map[int]int {
	out := make(map[int]int, len(m.inverse))
	for g, p := range m.inverse {
		out[g] = p
	}
	return out
}
