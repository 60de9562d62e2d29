package sessions

import "github.com/google/uuid"

// CreateSessionRequest starts an assistant session against a venue
type CreateSessionRequest struct {
	VenueID uuid.UUID `json:"venue_id" binding:"required"`
}
