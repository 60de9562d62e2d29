package ranking

import "math"

// Weights defines the relative importance of each ranking criterion.
// The criterion set is closed, so the fields are fixed rather than an open map.
type Weights struct {
	Distance        float64 `json:"distance"`
	Centrality      float64 `json:"centrality"`
	Aisle           float64 `json:"aisle"`
	Price           float64 `json:"price"`
	AvoidObstructed float64 `json:"avoid_obstructed"`
}

// DefaultWeights returns the fallback weight distribution used whenever a
// caller-supplied vector normalizes to nothing.
func DefaultWeights() Weights {
	return Weights{
		Distance:        0.25,
		Centrality:      0.20,
		Aisle:           0.20,
		Price:           0.20,
		AvoidObstructed: 0.15,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Distance + w.Centrality + w.Aisle + w.Price + w.AvoidObstructed
}

// Normalize scales the weights so they sum to 1. Negative and non-finite
// entries are treated as 0 first; if nothing positive remains the default
// vector is returned. Safe for arbitrary caller input.
func (w Weights) Normalize() Weights {
	clamped := Weights{
		Distance:        clampWeight(w.Distance),
		Centrality:      clampWeight(w.Centrality),
		Aisle:           clampWeight(w.Aisle),
		Price:           clampWeight(w.Price),
		AvoidObstructed: clampWeight(w.AvoidObstructed),
	}

	sum := clamped.Sum()
	if sum <= 0 {
		return DefaultWeights()
	}

	return Weights{
		Distance:        clamped.Distance / sum,
		Centrality:      clamped.Centrality / sum,
		Aisle:           clamped.Aisle / sum,
		Price:           clamped.Price / sum,
		AvoidObstructed: clamped.AvoidObstructed / sum,
	}
}

func clampWeight(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
