// Package memory is an in-process implementation of the ledger store. It
// keeps the same contract as the PostgreSQL adapter: versioned writes,
// all-or-nothing transactions and per-recipient notification dedup. It backs
// local development, the HTTP flow tests and the concurrency tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
)

// Store holds committed state. Values handed out are always deep copies.
type Store struct {
	mu            sync.RWMutex
	estates       map[uuid.UUID]*domain.Estate
	charges       map[uuid.UUID]*domain.ServiceCharge
	notifications map[uuid.UUID]*domain.Notification
	dedup         map[dedupKey]uuid.UUID
	audit         []domain.AuditRecord
}

type dedupKey struct {
	recipient uuid.UUID
	key       string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		estates:       make(map[uuid.UUID]*domain.Estate),
		charges:       make(map[uuid.UUID]*domain.ServiceCharge),
		notifications: make(map[uuid.UUID]*domain.Notification),
		dedup:         make(map[dedupKey]uuid.UUID),
	}
}

// txState stages writes until commit. base records the committed version each
// staged aggregate was derived from; 0 marks a create.
type txState struct {
	estates    map[uuid.UUID]*domain.Estate
	estateBase map[uuid.UUID]int64
	charges    map[uuid.UUID]*domain.ServiceCharge
	chargeBase map[uuid.UUID]int64
	audit      []domain.AuditRecord
}

func newTxState() *txState {
	return &txState{
		estates:    make(map[uuid.UUID]*domain.Estate),
		estateBase: make(map[uuid.UUID]int64),
		charges:    make(map[uuid.UUID]*domain.ServiceCharge),
		chargeBase: make(map[uuid.UUID]int64),
	}
}

type txCtxKey struct{}

func txFromCtx(ctx context.Context) *txState {
	tx, _ := ctx.Value(txCtxKey{}).(*txState)
	return tx
}

// commit applies tx if every aggregate it touched is still at its base
// version. Nothing is applied on conflict.
func (s *Store) commit(tx *txState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, base := range tx.estateBase {
		if err := checkBase("estate", id, base, s.estates[id] != nil, versionOf(s.estates[id])); err != nil {
			return err
		}
	}
	for id, base := range tx.chargeBase {
		if err := checkBase("service charge", id, base, s.charges[id] != nil, chargeVersionOf(s.charges[id])); err != nil {
			return err
		}
	}

	for id, e := range tx.estates {
		s.estates[id] = e
	}
	for id, c := range tx.charges {
		s.charges[id] = c
	}
	s.audit = append(s.audit, tx.audit...)
	return nil
}

func checkBase(entity string, id uuid.UUID, base int64, exists bool, current int64) error {
	switch {
	case base == 0 && exists:
		return alreadyExists(entity, id)
	case base != 0 && current != base:
		return versionConflict(entity, id, base)
	}
	return nil
}

func versionOf(e *domain.Estate) int64 {
	if e == nil {
		return 0
	}
	return e.Version
}

func chargeVersionOf(c *domain.ServiceCharge) int64 {
	if c == nil {
		return 0
	}
	return c.Version
}

func versionConflict(entity string, id uuid.UUID, version int64) error {
	return fmt.Errorf("%s %s: version %d is stale: %w", entity, id, version, domain.ErrContention)
}

func notFound(entity string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
}

// write runs stage against the caller's transaction, or against a private
// one that commits immediately when ctx carries none.
func (s *Store) write(ctx context.Context, stage func(tx *txState) error) error {
	if tx := txFromCtx(ctx); tx != nil {
		return stage(tx)
	}
	tx := newTxState()
	if err := stage(tx); err != nil {
		return err
	}
	return s.commit(tx)
}

func alreadyExists(entity string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
}

// Ping always succeeds; it lets the store stand in for a database in health checks.
func (s *Store) Ping(context.Context) error { return nil }
