package diff

import (
	"errors"
	"fmt"
)

var (
	// ErrInconsistentMatch indicates a containment relation between a predicted
	// and a gold string while exact matching is required.
	ErrInconsistentMatch = errors.New("diff: containment match under exact-match mode")

	// ErrUnknownPolicy indicates a policy name or value that is not defined.
	ErrUnknownPolicy = errors.New("diff: unknown policy")
)

// InconsistencyError carries the two strings that could not be reconciled.
type InconsistencyError struct {
	Predicted string
	Gold      string
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("%v: predicted %q, gold %q", ErrInconsistentMatch, e.Predicted, e.Gold)
}

func (e *InconsistencyError) Unwrap() error { return ErrInconsistentMatch }
