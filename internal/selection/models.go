package selection

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is the record published when a session commits to a seat. Downstream
// consumers (checkout, holds, analytics) key off the seat identity.
type Event struct {
	ID          uuid.UUID `json:"id"`
	SessionID   uuid.UUID `json:"session_id"`
	VenueID     uuid.UUID `json:"venue_id"`
	SeatID      string    `json:"seat_id"` // derived identity, e.g. "A-1-12"
	Section     string    `json:"section"`
	Row         string    `json:"row"`
	SeatNumber  string    `json:"seat_number"`
	Price       *float64  `json:"price,omitempty"`
	Score       float64   `json:"score"`
	OptionIndex int       `json:"option_index"` // 1-based position in the list the user chose from
	SelectedAt  time.Time `json:"selected_at"`
}

// NewEvent builds a selection event with a fresh ID and timestamp
func NewEvent(sessionID, venueID uuid.UUID, seatID, section, row, seatNumber string, price *float64, score float64, optionIndex int) *Event {
	return &Event{
		ID:          uuid.New(),
		SessionID:   sessionID,
		VenueID:     venueID,
		SeatID:      seatID,
		Section:     section,
		Row:         row,
		SeatNumber:  seatNumber,
		Price:       price,
		Score:       score,
		OptionIndex: optionIndex,
		SelectedAt:  time.Now().UTC(),
	}
}

// ToJSON serializes the event for the wire
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all selections of one session to the same partition so
// consumers see them in order.
func (e *Event) PartitionKey() string {
	return e.SessionID.String()
}
