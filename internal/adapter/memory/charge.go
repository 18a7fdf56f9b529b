package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
)

// ChargeRepo is the in-memory service charge repository.
type ChargeRepo struct {
	store *Store
}

func NewChargeRepo(store *Store) *ChargeRepo {
	return &ChargeRepo{store: store}
}

func (r *ChargeRepo) visible(ctx context.Context, id uuid.UUID) *domain.ServiceCharge {
	if tx := txFromCtx(ctx); tx != nil {
		if c, ok := tx.charges[id]; ok {
			return c
		}
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.charges[id]
}

// GetByID returns a copy of the charge with its history.
func (r *ChargeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceCharge, error) {
	c := r.visible(ctx, id)
	if c == nil {
		return nil, notFound("service charge", id)
	}
	return c.Clone(), nil
}

// List returns the estate's charges, latest due date first.
func (r *ChargeRepo) List(_ context.Context, filter domain.ChargeFilter) ([]*domain.ServiceCharge, error) {
	out := r.collect(func(c *domain.ServiceCharge) bool {
		if c.EstateID != filter.EstateID {
			return false
		}
		return filter.Status == nil || c.Status == *filter.Status
	})
	slices.SortFunc(out, func(a, b *domain.ServiceCharge) int {
		if c := b.DueDate.Compare(a.DueDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return page(out, filter.Limit, filter.Offset), nil
}

// ListOutstanding returns unpaid charges of the estates userID belongs to,
// earliest due first.
func (r *ChargeRepo) ListOutstanding(_ context.Context, userID uuid.UUID) ([]*domain.ServiceCharge, error) {
	r.store.mu.RLock()
	member := make(map[uuid.UUID]bool)
	for id, e := range r.store.estates {
		if e.IsMember(userID) {
			member[id] = true
		}
	}
	r.store.mu.RUnlock()

	out := r.collect(func(c *domain.ServiceCharge) bool {
		return member[c.EstateID] && c.Status != domain.ChargeStatusPaid
	})
	slices.SortFunc(out, func(a, b *domain.ServiceCharge) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}

func (r *ChargeRepo) collect(keep func(*domain.ServiceCharge) bool) []*domain.ServiceCharge {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.ServiceCharge, 0)
	for _, c := range r.store.charges {
		if keep(c) {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Create stores c at version 1. The estate must exist.
func (r *ChargeRepo) Create(ctx context.Context, c *domain.ServiceCharge) error {
	return r.store.write(ctx, func(tx *txState) error {
		if NewEstateRepo(r.store).visible(ctx, c.EstateID) == nil {
			return notFound("estate", c.EstateID)
		}
		if r.visible(ctx, c.ID) != nil {
			return alreadyExists("service charge", c.ID)
		}
		cp := c.Clone()
		cp.Version = 1
		tx.charges[c.ID] = cp
		tx.chargeBase[c.ID] = 0
		c.Version = 1
		return nil
	})
}

// SavePayment stores c, which has just accepted entry. A second entry by the
// same payer under the same idempotency key is rejected with
// domain.ErrAlreadyExists.
func (r *ChargeRepo) SavePayment(ctx context.Context, c *domain.ServiceCharge, entry domain.PaymentEntry) error {
	return r.store.write(ctx, func(tx *txState) error {
		current := r.visible(ctx, c.ID)
		if current == nil || current.Version != c.Version {
			return versionConflict("service charge", c.ID, c.Version)
		}
		if entry.IdempotencyKey != nil {
			if _, dup := current.EntryByIdempotencyKey(entry.UserID, *entry.IdempotencyKey); dup {
				return alreadyExists("payment entry", entry.ID)
			}
		}
		if len(current.PaymentHistory)+1 != entry.Seq {
			return versionConflict("service charge", c.ID, c.Version)
		}
		r.stage(tx, c)
		return nil
	})
}

// UpdateStatus stores a status change that did not add a payment.
func (r *ChargeRepo) UpdateStatus(ctx context.Context, c *domain.ServiceCharge) error {
	return r.store.write(ctx, func(tx *txState) error {
		current := r.visible(ctx, c.ID)
		if current == nil || current.Version != c.Version {
			return versionConflict("service charge", c.ID, c.Version)
		}
		r.stage(tx, c)
		return nil
	})
}

func (r *ChargeRepo) stage(tx *txState, c *domain.ServiceCharge) {
	if _, staged := tx.chargeBase[c.ID]; !staged {
		tx.chargeBase[c.ID] = c.Version
	}
	cp := c.Clone()
	cp.Version = c.Version + 1
	tx.charges[c.ID] = cp
	c.Version = cp.Version
}
