package assistant

import (
	"math"

	"seatsense/internal/ranking"
)

// Utterance outcome kinds
const (
	KindWeights = "weights"
	KindSelect  = "select"
	KindMessage = "message"
)

// RecommendationItem is one ranked seat as exposed over the API
type RecommendationItem struct {
	SeatID     string            `json:"seat_id"`
	Section    string            `json:"section"`
	Row        string            `json:"row"`
	SeatNumber string            `json:"seat_number"`
	Price      *float64          `json:"price,omitempty"`
	X          float64           `json:"x"`
	Y          float64           `json:"y"`
	Tags       []string          `json:"tags,omitempty"`
	Score      float64           `json:"score"`
	Breakdown  ranking.Breakdown `json:"breakdown"`
}

// RecommendationsResponse is the current top seats for a session
type RecommendationsResponse struct {
	Recommendations []RecommendationItem `json:"recommendations"`
	Weights         ranking.Weights      `json:"weights"`
	Total           int                  `json:"total"` // available seats considered
}

// SelectionResponse confirms which seat the session committed to
type SelectionResponse struct {
	SeatID      string   `json:"seat_id"`
	Section     string   `json:"section"`
	Row         string   `json:"row"`
	SeatNumber  string   `json:"seat_number"`
	Price       *float64 `json:"price,omitempty"`
	Score       float64  `json:"score"`
	OptionIndex int      `json:"option_index"`
}

// UtteranceResponse is the assistant's reaction to one utterance. Kind tells
// the client which of the optional fields are set.
type UtteranceResponse struct {
	Kind            string               `json:"kind"`
	Message         string               `json:"message,omitempty"`
	Weights         *ranking.Weights     `json:"weights,omitempty"`
	Recommendations []RecommendationItem `json:"recommendations,omitempty"`
	Selection       *SelectionResponse   `json:"selection,omitempty"`
}

// ToRecommendationItem converts a ranked seat into its API shape. An unknown
// price (NaN inside the engine) is omitted rather than serialized.
func ToRecommendationItem(rs ranking.RankedSeat) RecommendationItem {
	item := RecommendationItem{
		SeatID:     rs.ID,
		Section:    rs.Section,
		Row:        rs.Row,
		SeatNumber: rs.SeatNumber,
		X:          rs.X,
		Y:          rs.Y,
		Tags:       rs.Tags,
		Score:      rs.Score,
		Breakdown:  rs.Breakdown,
	}
	if !math.IsNaN(rs.Price) && !math.IsInf(rs.Price, 0) {
		p := rs.Price
		item.Price = &p
	}
	return item
}

// ToRecommendationItems converts a ranked slice
func ToRecommendationItems(ranked []ranking.RankedSeat) []RecommendationItem {
	out := make([]RecommendationItem, len(ranked))
	for i, rs := range ranked {
		out[i] = ToRecommendationItem(rs)
	}
	return out
}
