package recipediff

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrNilDiagram indicates a comparison was asked for without one of its diagrams.
	ErrNilDiagram = errors.New("recipediff: nil diagram")

	// ErrNilResults indicates CompareInto was given no accumulator.
	ErrNilResults = errors.New("recipediff: nil results")
)
