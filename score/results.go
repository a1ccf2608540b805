// Package score accumulates comparison outcomes and derives precision,
// recall, F1 and accuracy from them.
package score

import "math"

// Reach classifies an edge by the distance between its source and destination.
type Reach int

const (
	// Unbucketed outcomes are not attributed to an edge distance.
	Unbucketed Reach = iota
	// Sequential edges point at the node immediately after their source.
	Sequential
	// LongRange edges point anywhere else.
	LongRange
)

// ReachOf returns Sequential when dst == src+1, LongRange otherwise.
func ReachOf(src, dst int) Reach {
	if dst == src+1 {
		return Sequential
	}
	return LongRange
}

func (r Reach) String() string {
	switch r {
	case Sequential:
		return "sequential"
	case LongRange:
		return "long_range"
	default:
		return "unbucketed"
	}
}

// Counts holds outcome counters for one edge reach.
type Counts struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
}

// Results is a mutable accumulator for one comparison, or for a corpus when
// per-comparison results are summed into it with Add.
//
// Derived metrics are computed on every call and return NaN when their
// denominator is zero.
type Results struct {
	TruePositives  int
	TrueNegatives  int
	FalsePositives int
	FalseNegatives int

	PredicateTP int
	PredicateFP int
	PredicateFN int

	// Correct and Total back the alternate accuracy metric.
	Correct int
	Total   int

	Sequential Counts
	LongRange  Counts
}

// TruePositive records n true positives attributed to reach.
func (r *Results) TruePositive(reach Reach, n int) {
	r.TruePositives += n
	if c := r.bucket(reach); c != nil {
		c.TruePositives += n
	}
}

// FalsePositive records n false positives attributed to reach.
func (r *Results) FalsePositive(reach Reach, n int) {
	r.FalsePositives += n
	if c := r.bucket(reach); c != nil {
		c.FalsePositives += n
	}
}

// FalseNegative records n false negatives attributed to reach.
func (r *Results) FalseNegative(reach Reach, n int) {
	r.FalseNegatives += n
	if c := r.bucket(reach); c != nil {
		c.FalseNegatives += n
	}
}

// TrueNegative records n true negatives.
func (r *Results) TrueNegative(n int) {
	r.TrueNegatives += n
}

func (r *Results) bucket(reach Reach) *Counts {
	switch reach {
	case Sequential:
		return &r.Sequential
	case LongRange:
		return &r.LongRange
	default:
		return nil
	}
}

// Add sums o into r.
func (r *Results) Add(o Results) {
	r.TruePositives += o.TruePositives
	r.TrueNegatives += o.TrueNegatives
	r.FalsePositives += o.FalsePositives
	r.FalseNegatives += o.FalseNegatives
	r.PredicateTP += o.PredicateTP
	r.PredicateFP += o.PredicateFP
	r.PredicateFN += o.PredicateFN
	r.Correct += o.Correct
	r.Total += o.Total
	r.Sequential.add(o.Sequential)
	r.LongRange.add(o.LongRange)
}

func (c *Counts) add(o Counts) {
	c.TruePositives += o.TruePositives
	c.FalsePositives += o.FalsePositives
	c.FalseNegatives += o.FalseNegatives
}

func (r *Results) Precision() float64 {
	return ratio(r.TruePositives, r.TruePositives+r.FalsePositives)
}

func (r *Results) Recall() float64 {
	return ratio(r.TruePositives, r.TruePositives+r.FalseNegatives)
}

// F1 is the harmonic mean of Precision and Recall.
func (r *Results) F1() float64 {
	return harmonic(r.Precision(), r.Recall())
}

func (r *Results) PredicatePrecision() float64 {
	return ratio(r.PredicateTP, r.PredicateTP+r.PredicateFP)
}

func (r *Results) PredicateRecall() float64 {
	return ratio(r.PredicateTP, r.PredicateTP+r.PredicateFN)
}

func (r *Results) PredicateF1() float64 {
	return harmonic(r.PredicatePrecision(), r.PredicateRecall())
}

// Accuracy is Correct/Total.
func (r *Results) Accuracy() float64 {
	return ratio(r.Correct, r.Total)
}

// Precision and Recall of a single reach bucket.
func (c Counts) Precision() float64 {
	return ratio(c.TruePositives, c.TruePositives+c.FalsePositives)
}

func (c Counts) Recall() float64 {
	return ratio(c.TruePositives, c.TruePositives+c.FalseNegatives)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return math.NaN()
	}
	return float64(num) / float64(den)
}

// harmonic returns NaN when p+r is zero or either input is NaN.
func harmonic(p, r float64) float64 {
	if math.IsNaN(p) || math.IsNaN(r) || p+r == 0 {
		return math.NaN()
	}
	return 2 * p * r / (p + r)
}
