package bench

import (
	"math"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jamesainslie/go-recipediff/score"
)

// Struct converts the report to a protobuf Struct. Undefined metrics become
// null since JSON has no NaN.
func (r *Report) Struct() (*structpb.Struct, error) {
	policies := make([]any, len(r.Policies))
	for i, p := range r.Policies {
		policies[i] = p.String()
	}

	pairs := make([]any, len(r.Pairs))
	for i, p := range r.Pairs {
		entry := map[string]any{"id": p.ID}
		if p.Err != nil {
			entry["error"] = p.Err.Error()
		} else {
			entry["results"] = resultsMap(&p.Results)
		}
		pairs[i] = entry
	}

	fields := map[string]any{
		"run_id":   r.RunID,
		"policies": policies,
		"total":    resultsMap(&r.Total),
		"pairs":    pairs,
		"failures": float64(len(r.Failures())),
		"f1": map[string]any{
			"n":         float64(r.F1.N),
			"undefined": float64(r.F1.Undefined),
			"mean":      number(r.F1.Mean),
			"stddev":    number(r.F1.StdDev),
			"min":       number(r.F1.Min),
			"max":       number(r.F1.Max),
		},
	}
	return structpb.NewStruct(fields)
}

// MarshalJSON encodes the report through its protobuf Struct form.
func (r *Report) MarshalJSON() ([]byte, error) {
	s, err := r.Struct()
	if err != nil {
		return nil, err
	}
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
}

func resultsMap(r *score.Results) map[string]any {
	return map[string]any{
		"tp":                  float64(r.TruePositives),
		"tn":                  float64(r.TrueNegatives),
		"fp":                  float64(r.FalsePositives),
		"fn":                  float64(r.FalseNegatives),
		"precision":           number(r.Precision()),
		"recall":              number(r.Recall()),
		"f1":                  number(r.F1()),
		"accuracy":            number(r.Accuracy()),
		"predicate_precision": number(r.PredicatePrecision()),
		"predicate_recall":    number(r.PredicateRecall()),
		"predicate_f1":        number(r.PredicateF1()),
		"sequential":          countsMap(r.Sequential),
		"long_range":          countsMap(r.LongRange),
	}
}

func countsMap(c score.Counts) map[string]any {
	return map[string]any{
		"tp":        float64(c.TruePositives),
		"fp":        float64(c.FalsePositives),
		"fn":        float64(c.FalseNegatives),
		"precision": number(c.Precision()),
		"recall":    number(c.Recall()),
	}
}

func number(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}
