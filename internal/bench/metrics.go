package bench

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Distribution summarizes a per-recipe metric. Undefined (NaN) values are
// left out and counted in Undefined.
type Distribution struct {
	N         int
	Undefined int
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
}

// Summarize computes the distribution of xs. With no defined values every
// statistic is NaN.
func Summarize(xs []float64) Distribution {
	defined := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			defined = append(defined, x)
		}
	}

	d := Distribution{
		N:         len(defined),
		Undefined: len(xs) - len(defined),
		Mean:      math.NaN(),
		StdDev:    math.NaN(),
		Min:       math.NaN(),
		Max:       math.NaN(),
	}
	if len(defined) == 0 {
		return d
	}

	d.Min, d.Max = floats.Min(defined), floats.Max(defined)
	if len(defined) == 1 {
		d.Mean, d.StdDev = defined[0], 0
		return d
	}
	d.Mean, d.StdDev = stat.MeanStdDev(defined, nil)
	return d
}
