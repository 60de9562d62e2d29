package assistant

import (
	"context"
	"time"

	"github.com/google/uuid"

	"seatsense/internal/interpreter"
	"seatsense/internal/ranking"
	"seatsense/internal/selection"
	"seatsense/internal/sessions"
	"seatsense/internal/shared/config"
	"seatsense/pkg/logger"
)

const (
	msgNoSuchOption    = "I don't see that option. Ask for recommendations first."
	msgSeatUnavailable = "That seat is no longer available. Here are fresh options."
)

type Service interface {
	// Recommendations ranks the venue's available seats with the session's
	// current weights. A non-positive limit falls back to the configured one.
	Recommendations(ctx context.Context, sessionID uuid.UUID, limit int) (*RecommendationsResponse, error)
	HandleUtterance(ctx context.Context, sessionID uuid.UUID, req *UtteranceRequest) (*UtteranceResponse, error)
}

// SessionStore is the slice of the session service the assistant needs
type SessionStore interface {
	Load(ctx context.Context, id uuid.UUID) (*sessions.SessionState, error)
	Save(ctx context.Context, state *sessions.SessionState) error
}

// SeatCatalog supplies the rankable seats of a venue
type SeatCatalog interface {
	AvailableRankingSeats(ctx context.Context, venueID uuid.UUID) ([]ranking.Seat, ranking.Point, error)
	SeatAvailable(ctx context.Context, venueID uuid.UUID, section, row, seatNumber string) (bool, error)
}

type service struct {
	sessions SessionStore
	catalog  SeatCatalog
	producer selection.Producer
	cfg      *config.Config
	now      func() time.Time
}

func NewService(sessionStore SessionStore, catalog SeatCatalog, producer selection.Producer, cfg *config.Config) Service {
	return &service{
		sessions: sessionStore,
		catalog:  catalog,
		producer: producer,
		cfg:      cfg,
		now:      time.Now,
	}
}

// NewServiceWithClock injects a clock for deterministic tests
func NewServiceWithClock(sessionStore SessionStore, catalog SeatCatalog, producer selection.Producer, cfg *config.Config, now func() time.Time) Service {
	return &service{
		sessions: sessionStore,
		catalog:  catalog,
		producer: producer,
		cfg:      cfg,
		now:      now,
	}
}

func (s *service) Recommendations(ctx context.Context, sessionID uuid.UUID, limit int) (*RecommendationsResponse, error) {
	state, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > s.cfg.Assistant.RecommendationsLimit {
		limit = s.cfg.Assistant.RecommendationsLimit
	}
	top, total, err := s.rankWithLimit(ctx, state, limit)
	if err != nil {
		return nil, err
	}

	state.LastShown = seatIDs(top)
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}

	return &RecommendationsResponse{
		Recommendations: ToRecommendationItems(top),
		Weights:         state.Weights,
		Total:           total,
	}, nil
}

func (s *service) HandleUtterance(ctx context.Context, sessionID uuid.UUID, req *UtteranceRequest) (*UtteranceResponse, error) {
	state, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	text := req.Text
	if req.Confidence != nil && *req.Confidence < s.cfg.Assistant.LowConfidenceCutoff {
		text = interpreter.LowConfidenceToken
	}

	itp := interpreter.NewWithClock(s.now)
	itp.Restore(state.LastAcceptedAt)
	result := itp.Interpret(text, state.Weights)
	state.LastAcceptedAt = itp.LastAcceptedAt()

	logger.GetDefault().LogUtteranceInterpreted(ctx, sessionID.String(), string(result.Kind))

	switch result.Kind {
	case interpreter.ResultWeightUpdate:
		return s.applyWeights(ctx, state, result.Weights)
	case interpreter.ResultSelect:
		return s.resolveSelection(ctx, state, result.SelectIndex)
	default:
		if err := s.sessions.Save(ctx, state); err != nil {
			return nil, err
		}
		return &UtteranceResponse{Kind: KindMessage, Message: result.Message}, nil
	}
}

func (s *service) applyWeights(ctx context.Context, state *sessions.SessionState, weights *ranking.Weights) (*UtteranceResponse, error) {
	state.Weights = *weights

	top, _, err := s.rank(ctx, state)
	if err != nil {
		return nil, err
	}
	state.LastShown = seatIDs(top)

	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}

	logger.GetDefault().LogWeightsUpdated(ctx, state.ID.String(), state.Weights)

	return &UtteranceResponse{
		Kind:            KindWeights,
		Weights:         &state.Weights,
		Recommendations: ToRecommendationItems(top),
	}, nil
}

func (s *service) resolveSelection(ctx context.Context, state *sessions.SessionState, optionIndex int) (*UtteranceResponse, error) {
	if optionIndex < 1 || optionIndex > s.cfg.Assistant.TopN || optionIndex > len(state.LastShown) {
		if err := s.sessions.Save(ctx, state); err != nil {
			return nil, err
		}
		return &UtteranceResponse{Kind: KindMessage, Message: msgNoSuchOption}, nil
	}
	seatID := state.LastShown[optionIndex-1]

	// Re-rank the full seat set before committing. The shown list may be
	// smaller than the venue, so the chosen seat must be looked up across
	// every rankable seat, not only the current top slice.
	seats, reference, err := s.catalog.AvailableRankingSeats(ctx, state.VenueID)
	if err != nil {
		return nil, err
	}
	ranked := ranking.Rank(seats, state.Weights, reference)

	chosen := findSeat(ranked, seatID)
	if chosen != nil {
		// The ranked set can come from a short-lived cache. Confirm the
		// seat against live storage before committing the selection.
		ok, err := s.catalog.SeatAvailable(ctx, state.VenueID, chosen.Section, chosen.Row, chosen.SeatNumber)
		if err != nil {
			return nil, err
		}
		if !ok {
			chosen = nil
		}
	}
	if chosen == nil {
		top := ranked
		if limit := s.cfg.Assistant.RecommendationsLimit; len(top) > limit {
			top = top[:limit]
		}
		state.LastShown = seatIDs(top)
		if err := s.sessions.Save(ctx, state); err != nil {
			return nil, err
		}
		return &UtteranceResponse{
			Kind:            KindMessage,
			Message:         msgSeatUnavailable,
			Recommendations: ToRecommendationItems(top),
		}, nil
	}

	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}

	item := ToRecommendationItem(*chosen)
	event := selection.NewEvent(
		state.ID, state.VenueID,
		chosen.ID, chosen.Section, chosen.Row, chosen.SeatNumber,
		item.Price, chosen.Score, optionIndex,
	)
	if err := s.producer.Publish(ctx, event); err != nil {
		// Selection is forwarded best effort; the user still gets their seat.
		logger.GetDefault().LogSelectionPublishFailed(ctx, state.ID.String(), chosen.ID, err)
	}

	logger.GetDefault().LogSeatSelected(ctx, state.ID.String(), chosen.ID, optionIndex)

	return &UtteranceResponse{
		Kind: KindSelect,
		Selection: &SelectionResponse{
			SeatID:      chosen.ID,
			Section:     chosen.Section,
			Row:         chosen.Row,
			SeatNumber:  chosen.SeatNumber,
			Price:       item.Price,
			Score:       chosen.Score,
			OptionIndex: optionIndex,
		},
	}, nil
}

// rank scores the venue's available seats with the session's weights and
// returns the top slice plus the total count considered.
func (s *service) rank(ctx context.Context, state *sessions.SessionState) ([]ranking.RankedSeat, int, error) {
	return s.rankWithLimit(ctx, state, s.cfg.Assistant.RecommendationsLimit)
}

func (s *service) rankWithLimit(ctx context.Context, state *sessions.SessionState, limit int) ([]ranking.RankedSeat, int, error) {
	seats, reference, err := s.catalog.AvailableRankingSeats(ctx, state.VenueID)
	if err != nil {
		return nil, 0, err
	}
	top := ranking.TopN(seats, state.Weights, reference, limit)
	return top, len(seats), nil
}

func seatIDs(ranked []ranking.RankedSeat) []string {
	ids := make([]string, len(ranked))
	for i, rs := range ranked {
		ids[i] = rs.ID
	}
	return ids
}

func findSeat(ranked []ranking.RankedSeat, seatID string) *ranking.RankedSeat {
	for i := range ranked {
		if ranked[i].ID == seatID {
			return &ranked[i]
		}
	}
	return nil
}
