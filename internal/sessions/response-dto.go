package sessions

import (
	"time"

	"github.com/google/uuid"

	"seatsense/internal/ranking"
)

// CreatedSessionResponse is returned once, on session creation. The token
// authorizes all further calls for this session.
type CreatedSessionResponse struct {
	SessionID uuid.UUID       `json:"session_id"`
	VenueID   uuid.UUID       `json:"venue_id"`
	Weights   ranking.Weights `json:"weights"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// SessionResponse is the session's current state
type SessionResponse struct {
	SessionID      uuid.UUID       `json:"session_id"`
	VenueID        uuid.UUID       `json:"venue_id"`
	Weights        ranking.Weights `json:"weights"`
	LastAcceptedAt *time.Time      `json:"last_accepted_at,omitempty"`
	LastShown      []string        `json:"last_shown,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToSessionResponse converts session state into its API shape
func ToSessionResponse(state *SessionState) SessionResponse {
	resp := SessionResponse{
		SessionID: state.ID,
		VenueID:   state.VenueID,
		Weights:   state.Weights,
		LastShown: state.LastShown,
		CreatedAt: state.CreatedAt,
		UpdatedAt: state.UpdatedAt,
	}
	if !state.LastAcceptedAt.IsZero() {
		t := state.LastAcceptedAt
		resp.LastAcceptedAt = &t
	}
	return resp
}
