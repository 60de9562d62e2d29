package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"seatsense/internal/ranking"
	"seatsense/internal/shared/config"
	"seatsense/internal/venues"
	"seatsense/pkg/logger"
)

type Service interface {
	CreateSession(ctx context.Context, req *CreateSessionRequest) (*CreatedSessionResponse, error)
	GetSession(ctx context.Context, id uuid.UUID) (*SessionResponse, error)
	ResetWeights(ctx context.Context, id uuid.UUID) (*SessionResponse, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// Load and Save expose raw session state for the assistant pipeline.
	Load(ctx context.Context, id uuid.UUID) (*SessionState, error)
	Save(ctx context.Context, state *SessionState) error
}

type service struct {
	repo    Repository
	catalog venues.Service
	cfg     *config.Config
}

func NewService(repo Repository, catalog venues.Service, cfg *config.Config) Service {
	return &service{repo: repo, catalog: catalog, cfg: cfg}
}

func (s *service) CreateSession(ctx context.Context, req *CreateSessionRequest) (*CreatedSessionResponse, error) {
	if _, err := s.catalog.GetVenue(ctx, req.VenueID); err != nil {
		return nil, err
	}

	state := NewSessionState(req.VenueID)
	if err := s.repo.Save(ctx, state, s.cfg.Redis.SessionTTL); err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.cfg.JWT.ExpiresIn)
	token, err := s.mintToken(state, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to mint session token: %w", err)
	}

	logger.GetDefault().LogSessionCreated(ctx, state.ID.String(), state.VenueID.String())

	return &CreatedSessionResponse{
		SessionID: state.ID,
		VenueID:   state.VenueID,
		Weights:   state.Weights,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *service) GetSession(ctx context.Context, id uuid.UUID) (*SessionResponse, error) {
	state, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSessionResponse(state)
	return &resp, nil
}

func (s *service) ResetWeights(ctx context.Context, id uuid.UUID) (*SessionResponse, error) {
	state, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	state.Weights = ranking.DefaultWeights()
	state.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, state, s.cfg.Redis.SessionTTL); err != nil {
		return nil, err
	}

	logger.GetDefault().LogWeightsUpdated(ctx, state.ID.String(), state.Weights)

	resp := ToSessionResponse(state)
	return &resp, nil
}

func (s *service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Load(ctx context.Context, id uuid.UUID) (*SessionState, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) Save(ctx context.Context, state *SessionState) error {
	state.UpdatedAt = time.Now().UTC()
	return s.repo.Save(ctx, state, s.cfg.Redis.SessionTTL)
}

func (s *service) mintToken(state *SessionState, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"session_id": state.ID.String(),
		"venue_id":   state.VenueID.String(),
		"type":       "session",
		"iat":        time.Now().Unix(),
		"exp":        expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.Secret))
}
