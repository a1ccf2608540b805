package diff

import (
	"slices"
	"strings"
)

// outcome is the TP/FP/FN result of comparing two string collections.
type outcome struct {
	tp, fp, fn int
}

func (o outcome) exact() bool { return o.fp == 0 && o.fn == 0 }

// contains reports a containment relation in either direction between two
// non-empty strings.
func contains(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// uniqueSorted returns the distinct values of in, ascending.
func uniqueSorted(in []string) []string {
	out := slices.Clone(in)
	slices.Sort(out)
	return slices.Compact(out)
}

// matchStrings greedily pairs predicted strings with gold strings. Both sides
// are deduplicated and walked in ascending order. Exact matches are consumed
// first; the remaining predicted strings then take the first unused gold
// string they contain or are contained by, which under exact mode is an
// error. Unmatched predicted strings are false positives, unused gold strings
// false negatives.
func matchStrings(pred, gold []string, exact bool) (outcome, error) {
	p := uniqueSorted(pred)
	g := uniqueSorted(gold)
	used := make([]bool, len(g))
	matched := make([]bool, len(p))

	var o outcome
	for i, ps := range p {
		if j := firstUnused(g, used, func(gs string) bool { return gs == ps }); j >= 0 {
			used[j] = true
			matched[i] = true
			o.tp++
		}
	}

	for i, ps := range p {
		if matched[i] {
			continue
		}
		j := firstUnused(g, used, func(gs string) bool { return contains(ps, gs) })
		if j < 0 {
			o.fp++
			continue
		}
		if exact {
			return outcome{}, &InconsistencyError{Predicted: ps, Gold: g[j]}
		}
		used[j] = true
		o.tp++
	}

	for _, u := range used {
		if !u {
			o.fn++
		}
	}
	return o, nil
}

func firstUnused(g []string, used []bool, match func(string) bool) int {
	for i, gs := range g {
		if !used[i] && match(gs) {
			return i
		}
	}
	return -1
}

// mergeSorted walks two sorted sets in lock-step: equal heads are true
// positives, a smaller predicted head a false positive, a smaller gold head a
// false negative.
func mergeSorted(pred, gold []string) outcome {
	p := uniqueSorted(pred)
	g := uniqueSorted(gold)

	var o outcome
	i, j := 0, 0
	for i < len(p) && j < len(g) {
		switch {
		case p[i] == g[j]:
			o.tp++
			i++
			j++
		case p[i] < g[j]:
			o.fp++
			i++
		default:
			o.fn++
			j++
		}
	}
	o.fp += len(p) - i
	o.fn += len(g) - j
	return o
}

// anyMatch reports whether some candidate matches some target, by equality
// or, outside exact mode, by containment.
func anyMatch(candidates, targets []string, exact bool) bool {
	for _, c := range uniqueSorted(candidates) {
		for _, t := range targets {
			if c == t || (!exact && contains(c, t)) {
				return true
			}
		}
	}
	return false
}
