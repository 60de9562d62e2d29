package venues

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"seatsense/internal/ranking"
	"seatsense/internal/shared/constants"
	"seatsense/pkg/cache"
	"seatsense/pkg/logger"
)

var ErrDuplicateSeatIdentity = errors.New("duplicate seat identity in seat map")

type Service interface {
	CreateVenue(ctx context.Context, req *CreateVenueRequest) (*VenueResponse, error)
	GetVenue(ctx context.Context, id uuid.UUID) (*VenueResponse, error)
	ListVenues(ctx context.Context) ([]VenueResponse, error)
	DeleteVenue(ctx context.Context, id uuid.UUID) error
	GetSeats(ctx context.Context, venueID uuid.UUID) (*VenueSeatsResponse, error)
	UpdateSeatStatus(ctx context.Context, venueID, seatID uuid.UUID, status string) error

	// AvailableRankingSeats returns the venue's offerable seats in engine form
	// together with the reference point distances are measured against.
	AvailableRankingSeats(ctx context.Context, venueID uuid.UUID) ([]ranking.Seat, ranking.Point, error)

	// SeatAvailable reports whether the identified seat exists and is still
	// offerable, reading live state rather than the cached seat set.
	SeatAvailable(ctx context.Context, venueID uuid.UUID, section, row, seatNumber string) (bool, error)
}

// cachedSeat is the wire shape for the seat-set cache. Price is nullable
// because JSON cannot carry the engine's NaN sentinel for unknown prices.
type cachedSeat struct {
	ID         string   `json:"id"`
	Section    string   `json:"section"`
	Row        string   `json:"row"`
	SeatNumber string   `json:"seat_number"`
	Price      *float64 `json:"price"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Tags       []string `json:"tags,omitempty"`
}

func toRankingSeats(cached []cachedSeat) []ranking.Seat {
	out := make([]ranking.Seat, len(cached))
	for i, c := range cached {
		price := math.NaN()
		if c.Price != nil {
			price = *c.Price
		}
		out[i] = ranking.Seat{
			ID:         c.ID,
			Section:    c.Section,
			Row:        c.Row,
			SeatNumber: c.SeatNumber,
			Price:      price,
			X:          c.X,
			Y:          c.Y,
			Tags:       c.Tags,
		}
	}
	return out
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) CreateVenue(ctx context.Context, req *CreateVenueRequest) (*VenueResponse, error) {
	seen := make(map[string]struct{}, len(req.Seats))
	seats := make([]Seat, 0, len(req.Seats))
	for _, in := range req.Seats {
		id := ranking.SeatID(in.Section, in.Row, in.SeatNumber)
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSeatIdentity, id)
		}
		seen[id] = struct{}{}

		status := in.Status
		if status == "" {
			status = SeatStatusAvailable
		}
		seats = append(seats, Seat{
			Section:    in.Section,
			Row:        in.Row,
			SeatNumber: in.SeatNumber,
			Price:      in.Price,
			X:          in.X,
			Y:          in.Y,
			Tags:       joinTags(in.Tags),
			Status:     status,
		})
	}

	venue := &Venue{
		Name:  req.Name,
		Seats: seats,
	}
	if req.Stage != nil {
		venue.StageX = &req.Stage.X
		venue.StageY = &req.Stage.Y
	}

	if err := s.repo.Create(ctx, venue); err != nil {
		return nil, err
	}

	logger.GetDefault().Info("venue created",
		"venue_id", venue.ID.String(),
		"name", venue.Name,
		"seats", len(venue.Seats),
	)

	resp := ToVenueResponse(venue)
	return &resp, nil
}

func (s *service) GetVenue(ctx context.Context, id uuid.UUID) (*VenueResponse, error) {
	cacheKey := constants.BuildVenueDetailKey(id.String())

	var resp VenueResponse
	err := s.cache.GetOrSet(ctx, cacheKey, constants.TTL_VENUE_DETAIL, func() (interface{}, error) {
		venue, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return ToVenueResponse(venue), nil
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) ListVenues(ctx context.Context) ([]VenueResponse, error) {
	venues, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]VenueResponse, len(venues))
	for i := range venues {
		out[i] = ToVenueResponse(&venues[i])
	}
	return out, nil
}

func (s *service) DeleteVenue(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateVenueCache(ctx, id)
	return nil
}

func (s *service) GetSeats(ctx context.Context, venueID uuid.UUID) (*VenueSeatsResponse, error) {
	if _, err := s.repo.GetByID(ctx, venueID); err != nil {
		return nil, err
	}
	seats, err := s.repo.GetSeats(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return &VenueSeatsResponse{
		VenueID: venueID,
		Seats:   ToSeatResponses(seats),
		Total:   len(seats),
	}, nil
}

func (s *service) UpdateSeatStatus(ctx context.Context, venueID, seatID uuid.UUID, status string) error {
	if err := s.repo.UpdateSeatStatus(ctx, venueID, seatID, status); err != nil {
		return err
	}
	s.invalidateVenueCache(ctx, venueID)
	return nil
}

func (s *service) AvailableRankingSeats(ctx context.Context, venueID uuid.UUID) ([]ranking.Seat, ranking.Point, error) {
	venue, err := s.repo.GetByID(ctx, venueID)
	if err != nil {
		return nil, ranking.Point{}, err
	}
	reference := venue.Reference()

	cacheKey := constants.BuildVenueSeatsKey(venueID.String())

	// Short TTL: availability drifts as seats sell.
	var cached []cachedSeat
	err = s.cache.GetOrSet(ctx, cacheKey, constants.TTL_VENUE_SEATS, func() (interface{}, error) {
		seats, err := s.repo.GetAvailableSeats(ctx, venueID)
		if err != nil {
			return nil, err
		}
		out := make([]cachedSeat, len(seats))
		for i := range seats {
			out[i] = cachedSeat{
				ID:         seats[i].SeatID(),
				Section:    seats[i].Section,
				Row:        seats[i].Row,
				SeatNumber: seats[i].SeatNumber,
				Price:      seats[i].Price,
				X:          seats[i].X,
				Y:          seats[i].Y,
				Tags:       seats[i].TagList(),
			}
		}
		return out, nil
	}, &cached)
	if err != nil {
		return nil, ranking.Point{}, err
	}
	return toRankingSeats(cached), reference, nil
}

func (s *service) SeatAvailable(ctx context.Context, venueID uuid.UUID, section, row, seatNumber string) (bool, error) {
	seat, err := s.repo.GetSeatByIdentity(ctx, venueID, section, row, seatNumber)
	if err != nil {
		if errors.Is(err, ErrSeatNotFound) {
			return false, nil
		}
		return false, err
	}
	return seat.IsAvailable(), nil
}

func (s *service) invalidateVenueCache(ctx context.Context, venueID uuid.UUID) {
	pattern := constants.BuildVenueInvalidationPattern(venueID.String())
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		logger.GetDefault().Warn("failed to invalidate venue cache", "venue_id", venueID.String(), "error", err)
	}
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}
