package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"seatsense/internal/shared/constants"
	"seatsense/pkg/cache"
)

var ErrSessionNotFound = errors.New("session not found")

type Repository interface {
	Save(ctx context.Context, state *SessionState, ttl time.Duration) error
	Get(ctx context.Context, id uuid.UUID) (*SessionState, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	cache cache.Service
}

func NewRepository(cacheService cache.Service) Repository {
	return &repository{cache: cacheService}
}

func (r *repository) Save(ctx context.Context, state *SessionState, ttl time.Duration) error {
	key := constants.BuildSessionStateKey(state.ID.String())
	if err := r.cache.Set(ctx, key, state, ttl); err != nil {
		return fmt.Errorf("failed to save session state: %w", err)
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*SessionState, error) {
	key := constants.BuildSessionStateKey(id.String())
	var state SessionState
	if err := r.cache.Get(ctx, key, &state); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session state: %w", err)
	}
	return &state, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	key := constants.BuildSessionStateKey(id.String())
	if err := r.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete session state: %w", err)
	}
	return nil
}
