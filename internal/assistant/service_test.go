package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatsense/internal/ranking"
	"seatsense/internal/selection"
	"seatsense/internal/sessions"
	"seatsense/internal/shared/config"
)

type fakeSessionStore struct {
	state *sessions.SessionState
	saves int
}

func (f *fakeSessionStore) Load(ctx context.Context, id uuid.UUID) (*sessions.SessionState, error) {
	if f.state == nil || f.state.ID != id {
		return nil, sessions.ErrSessionNotFound
	}
	return f.state, nil
}

func (f *fakeSessionStore) Save(ctx context.Context, state *sessions.SessionState) error {
	f.state = state
	f.saves++
	return nil
}

type fakeCatalog struct {
	seats       []ranking.Seat
	reference   ranking.Point
	unavailable map[string]bool
	err         error
}

func (f *fakeCatalog) AvailableRankingSeats(ctx context.Context, venueID uuid.UUID) ([]ranking.Seat, ranking.Point, error) {
	if f.err != nil {
		return nil, ranking.Point{}, f.err
	}
	return f.seats, f.reference, nil
}

func (f *fakeCatalog) SeatAvailable(ctx context.Context, venueID uuid.UUID, section, row, seatNumber string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	id := ranking.SeatID(section, row, seatNumber)
	if f.unavailable[id] {
		return false, nil
	}
	for _, seat := range f.seats {
		if seat.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type fakeProducer struct {
	events []*selection.Event
	err    error
}

func (f *fakeProducer) Publish(ctx context.Context, event *selection.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Assistant: config.AssistantConfig{
			TopN:                 3,
			LowConfidenceCutoff:  0.6,
			RecommendationsLimit: 10,
		},
	}
}

func testSeats() []ranking.Seat {
	return []ranking.Seat{
		{ID: "A-1-1", Section: "A", Row: "1", SeatNumber: "1", Price: 100, X: 480, Y: 100},
		{ID: "A-1-2", Section: "A", Row: "1", SeatNumber: "2", Price: 200, X: 700, Y: 300, Tags: []string{"obstructed"}},
		{ID: "B-2-5", Section: "B", Row: "2", SeatNumber: "5", Price: 60, X: 300, Y: 400, Tags: []string{"aisle"}},
	}
}

func newTestService(t *testing.T) (Service, *fakeSessionStore, *fakeProducer, uuid.UUID) {
	t.Helper()

	state := sessions.NewSessionState(uuid.New())
	store := &fakeSessionStore{state: state}
	catalog := &fakeCatalog{seats: testSeats(), reference: ranking.DefaultReference()}
	producer := &fakeProducer{}

	clock := time.Now()
	svc := NewServiceWithClock(store, catalog, producer, testConfig(), func() time.Time { return clock })
	return svc, store, producer, state.ID
}

func TestRecommendations_RanksAndRecordsShownSeats(t *testing.T) {
	svc, store, _, sessionID := newTestService(t)

	resp, err := svc.Recommendations(context.Background(), sessionID, 0)
	require.NoError(t, err)

	require.Len(t, resp.Recommendations, 3)
	assert.Equal(t, 3, resp.Total)

	// Scores must arrive in descending order.
	for i := 1; i < len(resp.Recommendations); i++ {
		assert.GreaterOrEqual(t, resp.Recommendations[i-1].Score, resp.Recommendations[i].Score)
	}

	var ids []string
	for _, item := range resp.Recommendations {
		ids = append(ids, item.SeatID)
	}
	assert.Equal(t, ids, store.state.LastShown)
}

func TestRecommendations_LimitCapsList(t *testing.T) {
	svc, _, _, sessionID := newTestService(t)

	resp, err := svc.Recommendations(context.Background(), sessionID, 2)
	require.NoError(t, err)

	assert.Len(t, resp.Recommendations, 2)
	assert.Equal(t, 3, resp.Total)
}

func TestRecommendations_UnknownSession(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Recommendations(context.Background(), uuid.New(), 0)
	assert.ErrorIs(t, err, sessions.ErrSessionNotFound)
}

func TestHandleUtterance_PreferenceUpdatesWeightsAndReRanks(t *testing.T) {
	svc, store, _, sessionID := newTestService(t)

	resp, err := svc.HandleUtterance(context.Background(), sessionID, &UtteranceRequest{Text: "closer please"})
	require.NoError(t, err)

	assert.Equal(t, KindWeights, resp.Kind)
	require.NotNil(t, resp.Weights)
	assert.Greater(t, resp.Weights.Distance, ranking.DefaultWeights().Distance)
	assert.InDelta(t, 1.0, resp.Weights.Sum(), 1e-9)
	assert.NotEmpty(t, resp.Recommendations)

	assert.Equal(t, *resp.Weights, store.state.Weights)
	assert.NotEmpty(t, store.state.LastShown)
}

func TestHandleUtterance_SelectPublishesEvent(t *testing.T) {
	svc, store, producer, sessionID := newTestService(t)

	first, err := svc.Recommendations(context.Background(), sessionID, 0)
	require.NoError(t, err)
	wantSeat := first.Recommendations[1].SeatID

	resp, err := svc.HandleUtterance(context.Background(), sessionID, &UtteranceRequest{Text: "option two"})
	require.NoError(t, err)

	assert.Equal(t, KindSelect, resp.Kind)
	require.NotNil(t, resp.Selection)
	assert.Equal(t, wantSeat, resp.Selection.SeatID)
	assert.Equal(t, 2, resp.Selection.OptionIndex)

	require.Len(t, producer.events, 1)
	assert.Equal(t, wantSeat, producer.events[0].SeatID)
	assert.Equal(t, store.state.ID, producer.events[0].SessionID)
}

func TestHandleUtterance_SelectWithoutShownList(t *testing.T) {
	svc, _, producer, sessionID := newTestService(t)

	resp, err := svc.HandleUtterance(context.Background(), sessionID, &UtteranceRequest{Text: "option one"})
	require.NoError(t, err)

	assert.Equal(t, KindMessage, resp.Kind)
	assert.Equal(t, msgNoSuchOption, resp.Message)
	assert.Empty(t, producer.events)
}

func TestHandleUtterance_SelectedSeatGone(t *testing.T) {
	svc, store, producer, sessionID := newTestService(t)

	_, err := svc.Recommendations(context.Background(), sessionID, 0)
	require.NoError(t, err)

	// The previously shown first option has sold out in the meantime.
	store.state.LastShown = append([]string{"Z-9-9"}, store.state.LastShown[1:]...)

	resp, err := svc.HandleUtterance(context.Background(), sessionID, &UtteranceRequest{Text: "option one"})
	require.NoError(t, err)

	assert.Equal(t, KindMessage, resp.Kind)
	assert.Equal(t, msgSeatUnavailable, resp.Message)
	assert.NotEmpty(t, resp.Recommendations)
	assert.Empty(t, producer.events)
	assert.NotContains(t, store.state.LastShown, "Z-9-9")
}

func TestHandleUtterance_SelectOutsideTopSliceStillConfirms(t *testing.T) {
	state := sessions.NewSessionState(uuid.New())
	store := &fakeSessionStore{state: state}
	catalog := &fakeCatalog{seats: testSeats(), reference: ranking.DefaultReference()}
	producer := &fakeProducer{}

	cfg := testConfig()
	cfg.Assistant.RecommendationsLimit = 2

	clock := time.Now()
	svc := NewServiceWithClock(store, catalog, producer, cfg, func() time.Time { return clock })

	_, err := svc.Recommendations(context.Background(), state.ID, 0)
	require.NoError(t, err)
	require.Len(t, store.state.LastShown, 2)

	// A seat the capped list left out is still a valid, available pick.
	var outside string
	for _, seat := range testSeats() {
		if seat.ID != store.state.LastShown[0] && seat.ID != store.state.LastShown[1] {
			outside = seat.ID
		}
	}
	require.NotEmpty(t, outside)
	store.state.LastShown[0] = outside

	resp, err := svc.HandleUtterance(context.Background(), state.ID, &UtteranceRequest{Text: "option one"})
	require.NoError(t, err)

	assert.Equal(t, KindSelect, resp.Kind)
	require.NotNil(t, resp.Selection)
	assert.Equal(t, outside, resp.Selection.SeatID)
	require.Len(t, producer.events, 1)
	assert.Equal(t, outside, producer.events[0].SeatID)
}

func TestHandleUtterance_SelectSoldSinceShownReturnsFreshOptions(t *testing.T) {
	state := sessions.NewSessionState(uuid.New())
	store := &fakeSessionStore{state: state}
	catalog := &fakeCatalog{
		seats:       testSeats(),
		reference:   ranking.DefaultReference(),
		unavailable: map[string]bool{},
	}
	producer := &fakeProducer{}

	clock := time.Now()
	svc := NewServiceWithClock(store, catalog, producer, testConfig(), func() time.Time { return clock })

	_, err := svc.Recommendations(context.Background(), state.ID, 0)
	require.NoError(t, err)
	require.NotEmpty(t, store.state.LastShown)

	// Still in the cached seat set, but storage says it sold meanwhile.
	catalog.unavailable[store.state.LastShown[0]] = true

	resp, err := svc.HandleUtterance(context.Background(), state.ID, &UtteranceRequest{Text: "option one"})
	require.NoError(t, err)

	assert.Equal(t, KindMessage, resp.Kind)
	assert.Equal(t, msgSeatUnavailable, resp.Message)
	assert.NotEmpty(t, resp.Recommendations)
	assert.Empty(t, producer.events)
}

func TestHandleUtterance_PublishFailureStillConfirmsSelection(t *testing.T) {
	svc, _, producer, sessionID := newTestService(t)
	producer.err = errors.New("broker unreachable")

	_, err := svc.Recommendations(context.Background(), sessionID, 0)
	require.NoError(t, err)

	resp, err := svc.HandleUtterance(context.Background(), sessionID, &UtteranceRequest{Text: "option one"})
	require.NoError(t, err)

	assert.Equal(t, KindSelect, resp.Kind)
	require.NotNil(t, resp.Selection)
}

func TestHandleUtterance_LowConfidenceAsksForRepeat(t *testing.T) {
	svc, store, _, sessionID := newTestService(t)
	conf := 0.3

	before := store.state.LastAcceptedAt
	resp, err := svc.HandleUtterance(context.Background(), sessionID, &UtteranceRequest{Text: "closer please", Confidence: &conf})
	require.NoError(t, err)

	assert.Equal(t, KindMessage, resp.Kind)
	assert.Equal(t, "I didn't quite catch that. Please repeat.", resp.Message)
	assert.Equal(t, before, store.state.LastAcceptedAt, "low confidence input must not advance the cooldown clock")
	assert.Equal(t, ranking.DefaultWeights(), store.state.Weights)
}

func TestHandleUtterance_ConfidenceAtCutoffIsTrusted(t *testing.T) {
	svc, _, _, sessionID := newTestService(t)
	conf := 0.6

	resp, err := svc.HandleUtterance(context.Background(), sessionID, &UtteranceRequest{Text: "closer please", Confidence: &conf})
	require.NoError(t, err)

	assert.Equal(t, KindWeights, resp.Kind)
}

func TestHandleUtterance_CooldownPersistsAcrossCalls(t *testing.T) {
	state := sessions.NewSessionState(uuid.New())
	store := &fakeSessionStore{state: state}
	catalog := &fakeCatalog{seats: testSeats(), reference: ranking.DefaultReference()}
	producer := &fakeProducer{}

	clock := time.Now()
	svc := NewServiceWithClock(store, catalog, producer, testConfig(), func() time.Time { return clock })

	resp, err := svc.HandleUtterance(context.Background(), state.ID, &UtteranceRequest{Text: "closer please"})
	require.NoError(t, err)
	assert.Equal(t, KindWeights, resp.Kind)

	// A second utterance 200ms later lands inside the debounce window even
	// though each call builds a fresh interpreter from persisted state.
	clock = clock.Add(200 * time.Millisecond)
	resp, err = svc.HandleUtterance(context.Background(), state.ID, &UtteranceRequest{Text: "cheaper please"})
	require.NoError(t, err)
	assert.Equal(t, KindMessage, resp.Kind)
	assert.Equal(t, "Okay.", resp.Message)
}
