package diagram

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func threeSteps() Document {
	return Document{
		Nodes: []NodeDoc{
			{Predicate: "mix", DirectObject: &ArgDoc{Type: "object", Text: "flour and sugar", Ingredients: []string{"flour", "sugar"}}},
			{Predicate: "add", DirectObject: &ArgDoc{Type: "object", Text: "eggs", Ingredients: []string{"eggs"}},
				Prepositional: []ArgDoc{{Type: "coobject", Text: "to the mixture", Preposition: "to"}}},
			{Predicate: "bake", DirectObject: &ArgDoc{Type: "object", Text: "it"},
				Prepositional: []ArgDoc{{Type: "location", Text: "oven", Preposition: "in"}}},
		},
		Edges: []EdgeDoc{
			{From: 0, To: 1, ToArg: "prep:0", Text: "mixture"},
			{From: 1, To: 2, ToArg: "dobj", Text: "it"},
		},
	}
}

func TestDocumentBuild(t *testing.T) {
	d, err := threeSteps().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if d.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", d.Len())
	}
	if diff := cmp.Diff([]string{"mix", "add", "bake"}, d.Predicates()); diff != "" {
		t.Errorf("Predicates() mismatch (-want +got):\n%s", diff)
	}

	var idx []int
	for n := range d.All() {
		idx = append(idx, n.Index())
	}
	if diff := cmp.Diff([]int{0, 1, 2}, idx); diff != "" {
		t.Errorf("All() order mismatch (-want +got):\n%s", diff)
	}

	mix, _ := d.Node(0)
	dests := mix.Destinations("")
	if got := dests.Keys(); !cmp.Equal(got, []int{1}) {
		t.Errorf("Keys() = %v, want [1]", got)
	}
	if got := dests[1][0].Text; got != "mixture" {
		t.Errorf("destination text = %q, want %q", got, "mixture")
	}
	bake, _ := d.Node(2)
	if !mix.HasDestinations() || bake.HasDestinations() {
		t.Errorf("HasDestinations() = %v/%v for mix/bake, want true/false", mix.HasDestinations(), bake.HasDestinations())
	}

	if err := d.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestDocumentBuild_BadReference(t *testing.T) {
	tests := []struct {
		name string
		edge EdgeDoc
	}{
		{"destination out of range", EdgeDoc{From: 0, To: 9, ToArg: "dobj"}},
		{"source out of range", EdgeDoc{From: -1, To: 1, ToArg: "dobj"}},
		{"unknown slot", EdgeDoc{From: 0, To: 1, ToArg: "subj"}},
		{"prep index out of range", EdgeDoc{From: 0, To: 1, ToArg: "prep:4"}},
		{"other index out of range", EdgeDoc{From: 0, To: 1, ToArg: "other:0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := threeSteps()
			doc.Edges = []EdgeDoc{tt.edge}
			_, err := doc.Build()
			if !errors.Is(err, ErrMalformedDiagram) {
				t.Errorf("Build() error = %v, want ErrMalformedDiagram", err)
			}
		})
	}
}

func TestConnect_ForeignNode(t *testing.T) {
	a, _ := threeSteps().Build()
	b, _ := threeSteps().Build()

	src, _ := a.Node(0)
	dst, _ := b.Node(1)
	err := a.Connect(Edge{Source: src, Dest: dst, DestArg: dst.Event().DirectObject()})
	if !errors.Is(err, ErrForeignNode) {
		t.Errorf("Connect() error = %v, want ErrForeignNode", err)
	}
}

func TestConnect_DeduplicatesTriples(t *testing.T) {
	d, _ := threeSteps().Build()
	src, _ := d.Node(1)
	dst, _ := d.Node(2)

	e := Edge{Source: src, Dest: dst, DestArg: dst.Event().DirectObject(), Text: "it"}
	if err := d.Connect(e); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if got := src.AllDestinations().Len(); got != 1 {
		t.Errorf("triples = %d, want 1", got)
	}
	if got := len(dst.Event().DirectObject().Origins()); got != 1 {
		t.Errorf("origins = %d, want 1", got)
	}
}

func TestAllDestinations_MergesEntities(t *testing.T) {
	d, _ := threeSteps().Build()
	src, _ := d.Node(0)
	dst, _ := d.Node(2)
	err := d.Connect(Edge{Source: src, Entity: "flour", Dest: dst, DestArg: dst.Event().DirectObject(), Text: "it"})
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if diff := cmp.Diff([]string{"", "flour"}, src.Entities()); diff != "" {
		t.Errorf("Entities() mismatch (-want +got):\n%s", diff)
	}
	if got := src.AllDestinations().Keys(); !cmp.Equal(got, []int{1, 2}) {
		t.Errorf("AllDestinations().Keys() = %v, want [1 2]", got)
	}
}

func TestHasIngredients(t *testing.T) {
	d, _ := threeSteps().Build()
	add, _ := d.Node(1)
	bake, _ := d.Node(2)

	if !add.Event().DirectObject().HasIngredients() {
		t.Error("eggs should carry ingredients directly")
	}
	// "to the mixture" has no spans of its own but is fed by "mix flour and sugar".
	if !add.Event().Prepositional()[0].HasIngredients() {
		t.Error("mixture should inherit ingredients from its origin")
	}
	// "it" is fed by "add", two hops from the ingredients.
	if !bake.Event().DirectObject().HasIngredients() {
		t.Error("it should inherit ingredients through the origin chain")
	}
	if bake.Event().Prepositional()[0].HasIngredients() {
		t.Error("oven should not carry ingredients")
	}
}

func TestHasIngredients_Cycle(t *testing.T) {
	d := New()
	a := d.Add(NewEvent("stir", NewArgument(ArgObject, "it"), nil, nil), 0)
	b := d.Add(NewEvent("fold", NewArgument(ArgObject, "that"), nil, nil), 0)
	_ = d.Connect(Edge{Source: a, Dest: b, DestArg: b.Event().DirectObject()})
	_ = d.Connect(Edge{Source: b, Dest: a, DestArg: a.Event().DirectObject()})

	if a.Event().DirectObject().HasIngredients() {
		t.Error("cycle without ingredients should report false")
	}
}

func TestEventLocation(t *testing.T) {
	ev := NewEvent("bake",
		NewArgument(ArgObject, "bread"),
		[]*Argument{NewArgument(ArgCoObject, "with butter"), NewArgument(ArgLocation, "oven"), NewArgument(ArgLocation, "pan")},
		nil)

	loc, ok := ev.Location()
	if !ok || loc.Text != "oven" {
		t.Errorf("Location() = %v, %v; want oven, true", loc, ok)
	}
	if got := ev.Prepositional()[1].Role(); got != RolePrepositional {
		t.Errorf("Role() = %v, want RolePrepositional", got)
	}
	if got := len(ev.CoreArguments()); got != 4 {
		t.Errorf("CoreArguments() len = %d, want 4", got)
	}
}

func TestArgumentStrings(t *testing.T) {
	a := &Argument{Text: "chopped onions", Ingredients: []string{"onions"}, Spans: []string{"chopped", "onions", ""}}
	want := []string{"chopped onions", "onions", "chopped"}
	if diff := cmp.Diff(want, a.Strings()); diff != "" {
		t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckDestination(t *testing.T) {
	d, _ := threeSteps().Build()
	other, _ := d.Node(0)

	if err := d.CheckDestination(5, nil); !errors.Is(err, ErrMalformedDiagram) {
		t.Errorf("out of range error = %v, want ErrMalformedDiagram", err)
	}
	if err := d.CheckDestination(1, []Triple{{Node: other}}); !errors.Is(err, ErrMalformedDiagram) {
		t.Errorf("mismatched node error = %v, want ErrMalformedDiagram", err)
	}
}
