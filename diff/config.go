package diff

import (
	"fmt"
	"strings"
)

// Config fixes the scoring policy flags for one comparison. It is a value
// type; an Engine copies it at construction.
type Config struct {
	// ExactMatch requires argument strings to be equal. A containment
	// relation found under ExactMatch aborts the comparison.
	ExactMatch bool

	// IgnoreOtherArgs drops edges into "other" arguments from the edge policy.
	IgnoreOtherArgs bool

	// InterSentenceEdges keeps edges whose endpoints lie in different sentences.
	InterSentenceEdges bool

	// CountPredicates enables predicate-level TP/FP/FN counting.
	CountPredicates bool
}

// DefaultConfig returns containment matching over all edges.
func DefaultConfig() Config {
	return Config{InterSentenceEdges: true}
}

// Policy selects what an edge comparison looks at.
type Policy int

const (
	// PolicyEdges compares destination argument strings of every edge.
	PolicyEdges Policy = iota
	// PolicyFood compares the ingredient-bearing destinations only.
	PolicyFood
	// PolicyLocations compares the single location of each action.
	PolicyLocations
	// PolicyPossibleEdges checks that each gold edge lands on a plausible argument.
	PolicyPossibleEdges
)

var policyNames = map[Policy]string{
	PolicyEdges:         "edges",
	PolicyFood:          "food",
	PolicyLocations:     "locations",
	PolicyPossibleEdges: "possible-edges",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// Policies returns every policy in declaration order.
func Policies() []Policy {
	return []Policy{PolicyEdges, PolicyFood, PolicyLocations, PolicyPossibleEdges}
}

// ParsePolicy resolves a policy by name.
func ParsePolicy(name string) (Policy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for p, n := range policyNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}
