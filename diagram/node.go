package diagram

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Triple is one destination of an outgoing edge: the consuming node, the
// argument that consumes the entity, and the text naming it there.
type Triple struct {
	Node *Node
	Arg  *Argument
	Text string
}

// Edge links an output entity of Source to the argument of Dest that consumes it.
type Edge struct {
	Source    *Node
	SourceArg *Argument
	Entity    string
	Dest      *Node
	DestArg   *Argument
	Text      string
}

// Destinations maps a destination node index to the triples landing there.
type Destinations map[int][]Triple

// Keys returns the destination indices in ascending order.
func (d Destinations) Keys() []int {
	keys := make([]int, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Len returns the number of triples across all indices.
func (d Destinations) Len() int {
	n := 0
	for _, ts := range d {
		n += len(ts)
	}
	return n
}

// Node is one action in a diagram.
type Node struct {
	index    int
	sentence int
	event    *Event
	diagram  *Diagram

	// entity name -> destination index -> triples, entities in insertion order
	dests *orderedmap.OrderedMap[string, Destinations]
}

func (n *Node) Index() int        { return n.index }
func (n *Node) Sentence() int     { return n.sentence }
func (n *Node) Event() *Event     { return n.event }
func (n *Node) Predicate() string { return n.event.predicate }
func (n *Node) Diagram() *Diagram { return n.diagram }

// HasDestinations reports whether the node has any outgoing edge.
func (n *Node) HasDestinations() bool { return n.dests.Len() > 0 }

// Entities returns the entity names with outgoing edges, in the order they were first connected.
func (n *Node) Entities() []string {
	out := make([]string, 0, n.dests.Len())
	for pair := n.dests.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Destinations returns the destinations for one entity. The result must not be modified.
func (n *Node) Destinations(entity string) Destinations {
	d, _ := n.dests.Get(entity)
	return d
}

// AllDestinations merges the destinations of every entity into a fresh map.
func (n *Node) AllDestinations() Destinations {
	merged := make(Destinations)
	for pair := n.dests.Oldest(); pair != nil; pair = pair.Next() {
		for idx, ts := range pair.Value {
			for _, t := range ts {
				merged[idx] = appendTriple(merged[idx], t)
			}
		}
	}
	return merged
}

func (n *Node) addDestination(entity string, t Triple) {
	d, ok := n.dests.Get(entity)
	if !ok {
		d = make(Destinations)
		n.dests.Set(entity, d)
	}
	d[t.Node.index] = appendTriple(d[t.Node.index], t)
}

// appendTriple keeps ts a set.
func appendTriple(ts []Triple, t Triple) []Triple {
	for _, existing := range ts {
		if existing == t {
			return ts
		}
	}
	return append(ts, t)
}
