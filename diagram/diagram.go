// Package diagram models recipe action diagrams: ordered action nodes, each
// wrapping one event, connected by destination edges that carry entities from
// one action into an argument of a later one.
//
// Diagrams are built by collaborators (text-to-graph construction, annotation
// parsing) and are treated as read-only by the aligner and diff engine.
package diagram

import (
	"errors"
	"fmt"
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	// ErrMalformedDiagram indicates an edge or node that does not resolve within its own diagram.
	ErrMalformedDiagram = errors.New("diagram: malformed diagram")

	// ErrForeignNode indicates a node that belongs to a different diagram.
	ErrForeignNode = errors.New("diagram: node belongs to another diagram")
)

// Diagram is an ordered sequence of action nodes.
type Diagram struct {
	nodes []*Node
}

// New returns an empty diagram.
func New() *Diagram {
	return &Diagram{}
}

// Add appends a node for ev. Indices are assigned in call order starting at 0.
func (d *Diagram) Add(ev *Event, sentence int) *Node {
	n := &Node{
		index:    len(d.nodes),
		sentence: sentence,
		event:    ev,
		diagram:  d,
		dests:    orderedmap.New[string, Destinations](),
	}
	d.nodes = append(d.nodes, n)
	return n
}

// Len returns the number of nodes.
func (d *Diagram) Len() int { return len(d.nodes) }

// Node returns the node at index i.
func (d *Diagram) Node(i int) (*Node, bool) {
	if i < 0 || i >= len(d.nodes) {
		return nil, false
	}
	return d.nodes[i], true
}

// All iterates nodes in index order.
func (d *Diagram) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, n := range d.nodes {
			if !yield(n) {
				return
			}
		}
	}
}

// Predicates returns the predicate of every node in index order.
func (d *Diagram) Predicates() []string {
	out := make([]string, len(d.nodes))
	for i, n := range d.nodes {
		out[i] = n.event.predicate
	}
	return out
}

// Owns reports whether n is a node of d.
func (d *Diagram) Owns(n *Node) bool {
	return n != nil && n.diagram == d && n.index < len(d.nodes) && d.nodes[n.index] == n
}

// Connect records e as an outgoing edge of e.Source and marks e.Source as an
// origin of e.DestArg.
func (d *Diagram) Connect(e Edge) error {
	if !d.Owns(e.Source) {
		return fmt.Errorf("%w: edge source", ErrForeignNode)
	}
	if !d.Owns(e.Dest) {
		return fmt.Errorf("%w: edge destination", ErrForeignNode)
	}
	if e.DestArg == nil || !e.Dest.event.owns(e.DestArg) {
		return fmt.Errorf("%w: destination argument is not an argument of node %d", ErrMalformedDiagram, e.Dest.index)
	}
	if e.SourceArg != nil && !e.Source.event.owns(e.SourceArg) {
		return fmt.Errorf("%w: source argument is not an argument of node %d", ErrMalformedDiagram, e.Source.index)
	}

	e.Source.addDestination(e.Entity, Triple{Node: e.Dest, Arg: e.DestArg, Text: e.Text})
	e.DestArg.addOrigin(e.Source)
	return nil
}

// Validate checks that node indices match positions and that every
// destination index resolves to the node recorded for it.
func (d *Diagram) Validate() error {
	for i, n := range d.nodes {
		if n.index != i || n.diagram != d {
			return fmt.Errorf("%w: node at position %d has index %d", ErrMalformedDiagram, i, n.index)
		}
		for pair := n.dests.Oldest(); pair != nil; pair = pair.Next() {
			for idx, ts := range pair.Value {
				if err := d.CheckDestination(idx, ts); err != nil {
					return fmt.Errorf("node %d entity %q: %w", i, pair.Key, err)
				}
			}
		}
	}
	return nil
}

// CheckDestination verifies that every triple filed under idx points at node idx of d.
func (d *Diagram) CheckDestination(idx int, ts []Triple) error {
	target, ok := d.Node(idx)
	if !ok {
		return fmt.Errorf("%w: destination index %d out of range [0,%d)", ErrMalformedDiagram, idx, len(d.nodes))
	}
	for _, t := range ts {
		if t.Node != target {
			return fmt.Errorf("%w: destination index %d does not match its node", ErrMalformedDiagram, idx)
		}
	}
	return nil
}
