package venues

import (
	"time"

	"github.com/google/uuid"
)

// VenueResponse summarizes a venue for list and detail endpoints
type VenueResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Stage     *StagePoint `json:"stage,omitempty"`
	SeatCount int         `json:"seat_count"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// SeatResponse is a single seat as exposed over the API
type SeatResponse struct {
	ID         uuid.UUID `json:"id"`
	SeatID     string    `json:"seat_id"`
	Section    string    `json:"section"`
	Row        string    `json:"row"`
	SeatNumber string    `json:"seat_number"`
	Price      *float64  `json:"price,omitempty"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Tags       []string  `json:"tags,omitempty"`
	Status     string    `json:"status"`
}

// VenueSeatsResponse is the full seat map for one venue
type VenueSeatsResponse struct {
	VenueID uuid.UUID      `json:"venue_id"`
	Seats   []SeatResponse `json:"seats"`
	Total   int            `json:"total"`
}

// ToVenueResponse converts a venue model into its API shape
func ToVenueResponse(v *Venue) VenueResponse {
	resp := VenueResponse{
		ID:        v.ID,
		Name:      v.Name,
		SeatCount: len(v.Seats),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
	if v.StageX != nil && v.StageY != nil {
		resp.Stage = &StagePoint{X: *v.StageX, Y: *v.StageY}
	}
	return resp
}

// ToSeatResponse converts a seat model into its API shape
func ToSeatResponse(s *Seat) SeatResponse {
	return SeatResponse{
		ID:         s.ID,
		SeatID:     s.SeatID(),
		Section:    s.Section,
		Row:        s.Row,
		SeatNumber: s.SeatNumber,
		Price:      s.Price,
		X:          s.X,
		Y:          s.Y,
		Tags:       s.TagList(),
		Status:     s.Status,
	}
}

// ToSeatResponses converts a seat slice
func ToSeatResponses(seats []Seat) []SeatResponse {
	out := make([]SeatResponse, len(seats))
	for i := range seats {
		out[i] = ToSeatResponse(&seats[i])
	}
	return out
}
