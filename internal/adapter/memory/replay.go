package memory

import (
	"context"
	"sync"
	"time"

	"github.com/filatei/btorestate/internal/domain"
)

// ReplayStore is the in-process replay cache used when Redis is not configured.
type ReplayStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	records map[string]replayEntry
}

type replayEntry struct {
	rec       domain.TransitionRecord
	expiresAt time.Time
}

// NewReplayStore keeps records for ttl.
func NewReplayStore(ttl time.Duration) *ReplayStore {
	return &ReplayStore{ttl: ttl, now: time.Now, records: make(map[string]replayEntry)}
}

// Load returns the record stored under key, or false when there is none.
func (s *ReplayStore) Load(_ context.Context, key string) (*domain.TransitionRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.records[key]
	if !ok {
		return nil, false, nil
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.records, key)
		return nil, false, nil
	}
	rec := entry.rec
	return &rec, true, nil
}

// Save stores rec unless an unexpired record already exists under its key.
func (s *ReplayStore) Save(_ context.Context, rec *domain.TransitionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if entry, ok := s.records[rec.Key]; ok && now.Before(entry.expiresAt) {
		return nil
	}
	s.records[rec.Key] = replayEntry{rec: *rec, expiresAt: now.Add(s.ttl)}
	return nil
}
