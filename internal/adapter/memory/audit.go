package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
)

// AuditRepo is the in-memory membership audit log. Records are staged with
// the transaction and appear only once it commits.
type AuditRepo struct {
	store *Store
}

func NewAuditRepo(store *Store) *AuditRepo {
	return &AuditRepo{store: store}
}

// Append stages rec in the caller's transaction.
func (r *AuditRepo) Append(ctx context.Context, rec domain.AuditRecord) error {
	return r.store.write(ctx, func(tx *txState) error {
		if r.store.estate(ctx, rec.EstateID) == nil {
			return fmt.Errorf("audit record %s: estate %s: %w", rec.ID, rec.EstateID, domain.ErrNotFound)
		}
		tx.audit = append(tx.audit, rec)
		return nil
	})
}

// ListByEstate returns the estate's committed records, newest first.
func (r *AuditRepo) ListByEstate(_ context.Context, estateID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	r.store.mu.RLock()
	out := make([]domain.AuditRecord, 0)
	for _, rec := range r.store.audit {
		if rec.EstateID == estateID {
			out = append(out, rec)
		}
	}
	r.store.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b domain.AuditRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.EstateVersion, a.EstateVersion)
	})
	return page(out, limit, offset), nil
}
