package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront-service/internal/models"
)

// SearchStateService persists per-user list-view state (filters, query,
// pagination) in Redis with a short TTL, so a user returning to a view within
// the window gets their last search back.
type SearchStateService struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSearchStateService(redisClient *redis.Client, ttl time.Duration) *SearchStateService {
	return &SearchStateService{redis: redisClient, ttl: ttl}
}

func searchStateKey(tenantID, userID, view string) string {
	return fmt.Sprintf("searchstate:%s:%s:%s", tenantID, userID, view)
}

// Save stores the state for a user+view, resetting the TTL
func (s *SearchStateService) Save(ctx context.Context, tenantID, userID, view string, state json.RawMessage) error {
	if s.redis == nil {
		return fmt.Errorf("search state persistence unavailable")
	}

	saved := models.SearchState{
		View:    view,
		State:   models.JSONB(state),
		SavedAt: time.Now(),
	}
	data, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("failed to encode search state: %w", err)
	}
	return s.redis.Set(ctx, searchStateKey(tenantID, userID, view), data, s.ttl).Err()
}

// Get returns the saved state, or nil when none exists or it expired
func (s *SearchStateService) Get(ctx context.Context, tenantID, userID, view string) (*models.SearchState, error) {
	if s.redis == nil {
		return nil, nil
	}

	val, err := s.redis.Get(ctx, searchStateKey(tenantID, userID, view)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state models.SearchState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("failed to decode search state: %w", err)
	}
	return &state, nil
}

// Clear removes the saved state for a user+view
func (s *SearchStateService) Clear(ctx context.Context, tenantID, userID, view string) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, searchStateKey(tenantID, userID, view)).Err()
}
