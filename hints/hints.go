// Package hints supplies optional ingredient and location knowledge that
// predicted diagrams cannot express syntactically: a string classifier for
// ingredient-bearing text and selectional preferences mapping a predicate to
// the location it usually happens in.
package hints

import (
	"context"

	"github.com/jamesainslie/go-recipediff/diagram"
)

// Provider answers ingredient and location queries. Implementations must be
// safe for concurrent use.
type Provider interface {
	// IsIngredient reports whether text names an ingredient.
	IsIngredient(ctx context.Context, text string) (bool, error)

	// Location returns the preferred location for the event, if any.
	Location(ctx context.Context, ev *diagram.Event) (string, bool, error)
}

// AnyIngredient reports whether any of texts is an ingredient according to p.
func AnyIngredient(ctx context.Context, p Provider, texts []string) (bool, error) {
	for _, s := range texts {
		ok, err := p.IsIngredient(ctx, s)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
