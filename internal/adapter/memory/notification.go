package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
)

// NotificationRepo is the in-memory notification inbox. Its writes are never
// staged: notifications are dispatched after the transition commits.
type NotificationRepo struct {
	store *Store
}

func NewNotificationRepo(store *Store) *NotificationRepo {
	return &NotificationRepo{store: store}
}

func cloneNotification(n *domain.Notification) *domain.Notification {
	cp := *n
	if n.ReadAt != nil {
		t := *n.ReadAt
		cp.ReadAt = &t
	}
	return &cp
}

// GetByID returns one of the recipient's notifications.
func (r *NotificationRepo) GetByID(_ context.Context, recipientID, id uuid.UUID) (*domain.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n, ok := r.store.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return nil, notFound("notification", id)
	}
	return cloneNotification(n), nil
}

// ListByRecipient returns the recipient's notifications, newest first.
func (r *NotificationRepo) ListByRecipient(_ context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*domain.Notification, error) {
	r.store.mu.RLock()
	out := make([]*domain.Notification, 0)
	for _, n := range r.store.notifications {
		if n.RecipientID != recipientID || (unreadOnly && n.Read) {
			continue
		}
		out = append(out, cloneNotification(n))
	}
	r.store.mu.RUnlock()

	slices.SortFunc(out, func(a, b *domain.Notification) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return page(out, limit, offset), nil
}

// CountUnread returns the number of unread notifications for the recipient.
func (r *NotificationRepo) CountUnread(_ context.Context, recipientID uuid.UUID) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, n := range r.store.notifications {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

// Create inserts n unless the recipient already holds its dedup key.
func (r *NotificationRepo) Create(_ context.Context, n *domain.Notification) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := dedupKey{recipient: n.RecipientID, key: n.DedupKey}
	if _, dup := r.store.dedup[key]; dup {
		return true, nil
	}
	if _, exists := r.store.notifications[n.ID]; exists {
		return false, alreadyExists("notification", n.ID)
	}
	r.store.notifications[n.ID] = cloneNotification(n)
	r.store.dedup[key] = n.ID
	return false, nil
}

// MarkRead flags one notification as read, keeping the first read time.
func (r *NotificationRepo) MarkRead(_ context.Context, recipientID, id uuid.UUID, now time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	n, ok := r.store.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return notFound("notification", id)
	}
	if !n.Read {
		n.Read = true
		n.ReadAt = &now
	}
	return nil
}

// MarkAllRead flags every unread notification of the recipient.
func (r *NotificationRepo) MarkAllRead(_ context.Context, recipientID uuid.UUID, now time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	changed := 0
	for _, n := range r.store.notifications {
		if n.RecipientID == recipientID && !n.Read {
			at := now
			n.Read = true
			n.ReadAt = &at
			changed++
		}
	}
	return changed, nil
}
