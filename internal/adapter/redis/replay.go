package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/filatei/btorestate/internal/domain"
)

const replayKeyPrefix = "replay:"

// ReplayStore keeps committed transition records under their idempotency key
// for a bounded time.
type ReplayStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewReplayStore creates a replay store. Keys are namespaced by prefix.
func NewReplayStore(client redis.Cmdable, prefix string, ttl time.Duration) *ReplayStore {
	return &ReplayStore{client: client, prefix: prefix + replayKeyPrefix, ttl: ttl}
}

// Load returns the record stored under key, or false when there is none.
func (s *ReplayStore) Load(ctx context.Context, key string) (*domain.TransitionRecord, bool, error) {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load replay record: %w", err)
	}

	var rec domain.TransitionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false, fmt.Errorf("decode replay record: %w", err)
	}
	return &rec, true, nil
}

// Save stores rec unless a record already exists under its key. The first
// committed outcome wins.
func (s *ReplayStore) Save(ctx context.Context, rec *domain.TransitionRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode replay record: %w", err)
	}
	if err := s.client.SetNX(ctx, s.prefix+rec.Key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save replay record: %w", err)
	}
	return nil
}
