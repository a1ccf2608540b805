package diagram

import (
	"fmt"
	"strconv"
	"strings"
)

// Document is the serialized form of a diagram used by corpus files.
type Document struct {
	Nodes []NodeDoc `yaml:"nodes"`
	Edges []EdgeDoc `yaml:"edges"`
}

type NodeDoc struct {
	Predicate     string   `yaml:"predicate"`
	Sentence      int      `yaml:"sentence"`
	DirectObject  *ArgDoc  `yaml:"dobj,omitempty"`
	Prepositional []ArgDoc `yaml:"preps,omitempty"`
	Other         []ArgDoc `yaml:"others,omitempty"`
}

type ArgDoc struct {
	Type        string   `yaml:"type"`
	Text        string   `yaml:"text"`
	Preposition string   `yaml:"prep,omitempty"`
	Ingredients []string `yaml:"ingredients,omitempty"`
	Spans       []string `yaml:"spans,omitempty"`
}

// EdgeDoc references arguments by slot: "dobj", "prep:N" or "other:N".
type EdgeDoc struct {
	From    int    `yaml:"from"`
	FromArg string `yaml:"from_arg,omitempty"`
	Entity  string `yaml:"entity"`
	To      int    `yaml:"to"`
	ToArg   string `yaml:"to_arg"`
	Text    string `yaml:"text"`
}

// Build materializes the document into a Diagram.
func (doc Document) Build() (*Diagram, error) {
	d := New()
	for _, nd := range doc.Nodes {
		var dobj *Argument
		if nd.DirectObject != nil {
			dobj = nd.DirectObject.argument()
		}
		preps := make([]*Argument, len(nd.Prepositional))
		for i, a := range nd.Prepositional {
			preps[i] = a.argument()
		}
		others := make([]*Argument, len(nd.Other))
		for i, a := range nd.Other {
			others[i] = a.argument()
		}
		d.Add(NewEvent(nd.Predicate, dobj, preps, others), nd.Sentence)
	}

	for i, ed := range doc.Edges {
		src, ok := d.Node(ed.From)
		if !ok {
			return nil, fmt.Errorf("edge %d: %w: source index %d", i, ErrMalformedDiagram, ed.From)
		}
		dst, ok := d.Node(ed.To)
		if !ok {
			return nil, fmt.Errorf("edge %d: %w: destination index %d", i, ErrMalformedDiagram, ed.To)
		}
		dstArg, err := slot(dst.event, ed.ToArg)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		var srcArg *Argument
		if ed.FromArg != "" {
			if srcArg, err = slot(src.event, ed.FromArg); err != nil {
				return nil, fmt.Errorf("edge %d: %w", i, err)
			}
		}
		err = d.Connect(Edge{
			Source:    src,
			SourceArg: srcArg,
			Entity:    ed.Entity,
			Dest:      dst,
			DestArg:   dstArg,
			Text:      ed.Text,
		})
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}
	return d, nil
}

func (a ArgDoc) argument() *Argument {
	return &Argument{
		Type:        ParseArgType(a.Type),
		Text:        a.Text,
		Preposition: a.Preposition,
		Ingredients: a.Ingredients,
		Spans:       a.Spans,
	}
}

func slot(ev *Event, ref string) (*Argument, error) {
	if ref == "dobj" {
		if ev.directObject == nil {
			return nil, fmt.Errorf("%w: %q has no direct object", ErrMalformedDiagram, ev.predicate)
		}
		return ev.directObject, nil
	}

	kind, num, ok := strings.Cut(ref, ":")
	if !ok {
		return nil, fmt.Errorf("%w: bad argument reference %q", ErrMalformedDiagram, ref)
	}
	i, err := strconv.Atoi(num)
	if err != nil {
		return nil, fmt.Errorf("%w: bad argument reference %q", ErrMalformedDiagram, ref)
	}

	var args []*Argument
	switch kind {
	case "prep":
		args = ev.prepositional
	case "other":
		args = ev.other
	default:
		return nil, fmt.Errorf("%w: bad argument reference %q", ErrMalformedDiagram, ref)
	}
	if i < 0 || i >= len(args) {
		return nil, fmt.Errorf("%w: %q has no argument %s", ErrMalformedDiagram, ev.predicate, ref)
	}
	return args[i], nil
}
