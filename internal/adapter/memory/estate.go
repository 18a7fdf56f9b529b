package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
)

// EstateRepo is the in-memory estate repository.
type EstateRepo struct {
	store *Store
}

func NewEstateRepo(store *Store) *EstateRepo {
	return &EstateRepo{store: store}
}

func (r *EstateRepo) visible(ctx context.Context, id uuid.UUID) *domain.Estate {
	return r.store.estate(ctx, id)
}

// estate returns the version of id the caller's transaction sees.
func (s *Store) estate(ctx context.Context, id uuid.UUID) *domain.Estate {
	if tx := txFromCtx(ctx); tx != nil {
		if e, ok := tx.estates[id]; ok {
			return e
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.estates[id]
}

// GetByID returns a copy of the estate.
func (r *EstateRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Estate, error) {
	e := r.visible(ctx, id)
	if e == nil {
		return nil, notFound("estate", id)
	}
	return e.Clone(), nil
}

// List mirrors the PostgreSQL ordering: case-insensitive name, then id.
func (r *EstateRepo) List(ctx context.Context, filter domain.EstateFilter) ([]*domain.Estate, error) {
	r.store.mu.RLock()
	all := make([]*domain.Estate, 0, len(r.store.estates))
	for _, e := range r.store.estates {
		all = append(all, e)
	}
	r.store.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	out := make([]*domain.Estate, 0)
	for _, e := range all {
		if filter.MemberID != nil && !e.IsMember(*filter.MemberID) {
			continue
		}
		if filter.ExcludeMemberID != nil && e.IsMember(*filter.ExcludeMemberID) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Name), search) {
			continue
		}
		out = append(out, e.Clone())
	}

	slices.SortFunc(out, func(a, b *domain.Estate) int {
		if c := cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return page(out, filter.Limit, filter.Offset), nil
}

// Create stores e at version 1.
func (r *EstateRepo) Create(ctx context.Context, e *domain.Estate) error {
	return r.store.write(ctx, func(tx *txState) error {
		if r.visible(ctx, e.ID) != nil {
			return alreadyExists("estate", e.ID)
		}
		cp := e.Clone()
		cp.Version = 1
		tx.estates[e.ID] = cp
		tx.estateBase[e.ID] = 0
		e.Version = 1
		return nil
	})
}

// Update stores e if e.Version is still current and bumps the version.
func (r *EstateRepo) Update(ctx context.Context, e *domain.Estate) error {
	return r.store.write(ctx, func(tx *txState) error {
		current := r.visible(ctx, e.ID)
		if current == nil || current.Version != e.Version {
			return versionConflict("estate", e.ID, e.Version)
		}
		if _, staged := tx.estateBase[e.ID]; !staged {
			tx.estateBase[e.ID] = e.Version
		}
		cp := e.Clone()
		cp.Version = e.Version + 1
		tx.estates[e.ID] = cp
		e.Version = cp.Version
		return nil
	})
}

func page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
