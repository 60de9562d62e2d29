package venues

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatsense/pkg/cache"
)

type stubRepo struct {
	venue          *Venue
	available      []Seat
	getByIDCalls   int
	availableCalls int
}

func (r *stubRepo) Create(ctx context.Context, venue *Venue) error { return nil }

func (r *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	r.getByIDCalls++
	if r.venue == nil || r.venue.ID != id {
		return nil, ErrVenueNotFound
	}
	return r.venue, nil
}

func (r *stubRepo) GetAll(ctx context.Context) ([]Venue, error) { return nil, nil }

func (r *stubRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *stubRepo) GetSeats(ctx context.Context, venueID uuid.UUID) ([]Seat, error) {
	return r.venue.Seats, nil
}

func (r *stubRepo) GetAvailableSeats(ctx context.Context, venueID uuid.UUID) ([]Seat, error) {
	r.availableCalls++
	return r.available, nil
}

func (r *stubRepo) GetSeatByIdentity(ctx context.Context, venueID uuid.UUID, section, row, seatNumber string) (*Seat, error) {
	for i := range r.venue.Seats {
		s := &r.venue.Seats[i]
		if s.Section == section && s.Row == row && s.SeatNumber == seatNumber {
			return s, nil
		}
	}
	return nil, ErrSeatNotFound
}

func (r *stubRepo) UpdateSeatStatus(ctx context.Context, venueID, seatID uuid.UUID, status string) error {
	return nil
}

// memoryCache mirrors the redis-backed cache over a map, including the JSON
// encoding boundary, so values the real cache cannot store fail here too.
type memoryCache struct {
	store   map[string][]byte
	setErrs []error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.store[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		m.setErrs = append(m.setErrs, err)
		return err
	}
	m.store[key] = raw
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	delete(m.store, key)
	return nil
}

func (m *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.store {
		if strings.HasPrefix(key, prefix) {
			delete(m.store, key)
		}
	}
	return nil
}

func (m *memoryCache) Exists(ctx context.Context, key string) bool {
	_, ok := m.store[key]
	return ok
}

func (m *memoryCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	if err := m.Get(ctx, key, dest); err == nil {
		return nil
	}
	data, err := fetcher()
	if err != nil {
		return err
	}
	m.Set(ctx, key, data, ttl)
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Ping(ctx context.Context) error { return nil }

func floatPtr(v float64) *float64 { return &v }

func stageHallVenue() *Venue {
	venueID := uuid.New()
	return &Venue{
		ID:   venueID,
		Name: "Grand Hall",
		Seats: []Seat{
			{VenueID: venueID, Section: "A", Row: "1", SeatNumber: "1", Price: floatPtr(120), X: 480, Y: 120, Status: SeatStatusAvailable},
			{VenueID: venueID, Section: "A", Row: "1", SeatNumber: "2", X: 520, Y: 120, Tags: "aisle", Status: SeatStatusAvailable},
			{VenueID: venueID, Section: "B", Row: "2", SeatNumber: "3", Price: floatPtr(60), X: 300, Y: 300, Status: SeatStatusSold},
		},
	}
}

func TestAvailableRankingSeats_UnknownPriceSurvivesCache(t *testing.T) {
	venue := stageHallVenue()
	repo := &stubRepo{venue: venue, available: venue.Seats[:2]}
	mem := newMemoryCache()
	svc := NewService(repo, mem)

	first, _, err := svc.AvailableRankingSeats(context.Background(), venue.ID)
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.Empty(t, mem.setErrs, "seat set must be cacheable even with unknown prices")

	second, _, err := svc.AvailableRankingSeats(context.Background(), venue.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.availableCalls, "second read must come from the cache")
	require.Len(t, second, 2)
	assert.Equal(t, "A-1-1", second[0].ID)
	assert.Equal(t, 120.0, second[0].Price)
	assert.True(t, math.IsNaN(second[1].Price), "unknown price round-trips as NaN")
	assert.Equal(t, []string{"aisle"}, second[1].Tags)
}

func TestGetVenue_SecondReadHitsCache(t *testing.T) {
	venue := stageHallVenue()
	repo := &stubRepo{venue: venue}
	svc := NewService(repo, newMemoryCache())

	first, err := svc.GetVenue(context.Background(), venue.ID)
	require.NoError(t, err)

	second, err := svc.GetVenue(context.Background(), venue.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.getByIDCalls)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.ID, second.ID)
}

func TestSeatAvailable(t *testing.T) {
	venue := stageHallVenue()
	repo := &stubRepo{venue: venue}
	svc := NewService(repo, newMemoryCache())

	ok, err := svc.SeatAvailable(context.Background(), venue.ID, "A", "1", "1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.SeatAvailable(context.Background(), venue.ID, "B", "2", "3")
	require.NoError(t, err)
	assert.False(t, ok, "sold seats are not offerable")

	ok, err = svc.SeatAvailable(context.Background(), venue.ID, "Z", "9", "9")
	require.NoError(t, err)
	assert.False(t, ok, "unknown identity is reported unavailable, not an error")
}
