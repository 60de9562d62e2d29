package sessions

import (
	"time"

	"github.com/google/uuid"

	"seatsense/internal/ranking"
)

// SessionState is the per-conversation state of the assistant. It lives in
// Redis under the session key and expires with the session TTL.
type SessionState struct {
	ID             uuid.UUID       `json:"id"`
	VenueID        uuid.UUID       `json:"venue_id"`
	Weights        ranking.Weights `json:"weights"`
	LastAcceptedAt time.Time       `json:"last_accepted_at"` // zero value means no utterance accepted yet
	LastShown      []string        `json:"last_shown"`       // seat identities of the most recent recommendation list
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewSessionState starts a session against a venue with the default weight
// vector and an empty recommendation history.
func NewSessionState(venueID uuid.UUID) *SessionState {
	now := time.Now().UTC()
	return &SessionState{
		ID:        uuid.New(),
		VenueID:   venueID,
		Weights:   ranking.DefaultWeights(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
