package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"sparklean/models"
	"sparklean/utils"
)

// ErrDraftNotFound is returned when no draft exists for the session.
var ErrDraftNotFound = errors.New("booking draft not found or expired")

// DraftCache is the storage boundary for draft sessions. Serialization is
// explicit: drafts cross this boundary as JSON bytes and nothing else.
type DraftCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// RedisDraftCache backs DraftCache with Redis.
type RedisDraftCache struct {
	Client *redis.Client
}

func (c *RedisDraftCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	return data, nil
}

func (c *RedisDraftCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.Client.Set(ctx, key, data, ttl).Err()
}

func (c *RedisDraftCache) Del(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}

// DraftStore owns the single in-progress draft per session. It is an injected
// handle, not ambient state; every read and write goes through the cache
// boundary under a fixed key prefix.
type DraftStore struct {
	Cache DraftCache
	TTL   time.Duration
}

func draftKey(sessionID string) string {
	return utils.DraftCachePrefix + sessionID
}

// New creates an empty draft under a fresh session ID.
func (s *DraftStore) New(ctx context.Context) (*models.BookingDraft, error) {
	draft := &models.BookingDraft{
		SessionID: uuid.New().String(),
		Frequency: models.FrequencyOneTime,
	}
	if err := s.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Load retrieves the session's draft.
func (s *DraftStore) Load(ctx context.Context, sessionID string) (*models.BookingDraft, error) {
	data, err := s.Cache.Get(ctx, draftKey(sessionID))
	if err != nil {
		if errors.Is(err, ErrDraftNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	var draft models.BookingDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to parse draft session: %w", err)
	}
	return &draft, nil
}

// Save writes the draft back, refreshing its TTL.
func (s *DraftStore) Save(ctx context.Context, draft *models.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.Cache.Set(ctx, draftKey(draft.SessionID), data, s.TTL); err != nil {
		return fmt.Errorf("failed to store draft: %w", err)
	}
	return nil
}

// Reset clears the session's draft and its cached quote. Safe to call when the
// draft is already gone.
func (s *DraftStore) Reset(ctx context.Context, sessionID string) error {
	if err := s.Cache.Del(ctx, draftKey(sessionID)); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}
