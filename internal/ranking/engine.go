package ranking

import (
	"math"
	"sort"
	"strings"
)

// Seat is the immutable value the engine scores. Seats come from a catalog or
// scraper collaborator already filtered to available ones; the engine never
// mutates them, it only annotates scores onto a copy.
type Seat struct {
	ID         string   `json:"id"`
	Section    string   `json:"section"`
	Row        string   `json:"row"`
	SeatNumber string   `json:"seat_number"`
	Price      float64  `json:"price"` // NaN when unknown; scored as worst case
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Tags       []string `json:"tags,omitempty"`
}

// SeatID derives the canonical seat identity from its coordinates in the map.
func SeatID(section, row, seatNumber string) string {
	return section + "-" + row + "-" + seatNumber
}

// HasTag reports whether the seat carries the given tag.
func (s Seat) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// sortKey is the deterministic tie-break key for equal scores.
func (s Seat) sortKey() string {
	return s.Section + "|" + s.Row + "|" + s.SeatNumber
}

// Point is a planar anchor, typically the stage focal point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DefaultReference is the fallback stage anchor used when a venue does not
// carry one or carries a non-finite one.
func DefaultReference() Point {
	return Point{X: 500, Y: 65}
}

func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Breakdown holds the normalized per-criterion sub-scores, kept for
// explainability and tests. All values are in [0,1].
type Breakdown struct {
	Distance   float64 `json:"distance"`
	Centrality float64 `json:"centrality"`
	Aisle      float64 `json:"aisle"`
	Price      float64 `json:"price"`
	Obstructed float64 `json:"obstructed"`
}

// RankedSeat is a seat plus its final score and sub-score breakdown.
type RankedSeat struct {
	Seat
	Score     float64   `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
}

const (
	// TagAisle marks a seat adjacent to a walkway.
	TagAisle = "aisle"
	// TagObstructed marks a seat with a blocked view.
	TagObstructed = "obstructed"
)

// Rank scores every seat against the weight vector and reference point and
// returns them best-first. It is total over its inputs: malformed numerics
// degrade to worst-case scores, degenerate ranges collapse to a score of 1,
// and an empty seat set yields an empty list. Repeated calls with identical
// inputs yield identical output.
func Rank(seats []Seat, weights Weights, reference Point) []RankedSeat {
	if len(seats) == 0 {
		return []RankedSeat{}
	}

	w := weights.Normalize()
	ref := reference
	if !ref.finite() {
		ref = DefaultReference()
	}

	xs := make([]float64, len(seats))
	prices := make([]float64, len(seats))
	dists := make([]float64, len(seats))
	for i, s := range seats {
		xs[i] = s.X
		prices[i] = s.Price
		dists[i] = math.Hypot(s.X-ref.X, s.Y-ref.Y)
	}

	minX, maxX := minMax(xs)
	minP, maxP := minMax(prices)
	minD, maxD := minMax(dists)

	centerX := (minX + maxX) / 2
	maxDeviation := math.Max(math.Abs(minX-centerX), math.Abs(maxX-centerX))
	if maxDeviation == 0 {
		maxDeviation = 1
	}

	ranked := make([]RankedSeat, len(seats))
	for i, s := range seats {
		// Closer to the stage is better: minD maps to 1, maxD to 0.
		distScore := clamp01(1 - (dists[i]-minD)/(maxD-minD))

		centralityScore := clamp01(1 - math.Abs(s.X-centerX)/maxDeviation)

		var aisleScore float64
		if s.HasTag(TagAisle) {
			aisleScore = 1
		}

		// Cheaper is better; an unknown price scores as the most expensive seat.
		price := s.Price
		if math.IsNaN(price) || math.IsInf(price, 0) {
			price = maxP
		}
		priceScore := clamp01(1 - (price-minP)/(maxP-minP))

		obstructedScore := 1.0
		if s.HasTag(TagObstructed) {
			obstructedScore = 0
		}

		score := w.Distance*distScore +
			w.Centrality*centralityScore +
			w.Aisle*aisleScore +
			w.Price*priceScore +
			w.AvoidObstructed*obstructedScore

		ranked[i] = RankedSeat{
			Seat:  s,
			Score: score,
			Breakdown: Breakdown{
				Distance:   distScore,
				Centrality: centralityScore,
				Aisle:      aisleScore,
				Price:      priceScore,
				Obstructed: obstructedScore,
			},
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return strings.Compare(ranked[i].sortKey(), ranked[j].sortKey()) < 0
	})

	return ranked
}

// TopN returns the best n seats, a prefix of the full Rank order.
func TopN(seats []Seat, weights Weights, reference Point, n int) []RankedSeat {
	ranked := Rank(seats, weights, reference)
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// minMax scans finite values only. An all-non-finite slice yields [0,1]; a
// single-value range is widened to [min, min+1] so normalization never divides
// by zero and every seat scores 1 on that criterion.
func minMax(nums []float64) (float64, float64) {
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, n := range nums {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			continue
		}
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	if math.IsInf(min, 1) || math.IsInf(max, -1) {
		return 0, 1
	}
	if min == max {
		return min, min + 1
	}
	return min, max
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
