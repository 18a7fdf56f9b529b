package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/pkg/ctxutil"
)

// List returns the caller's notifications, newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.Notification, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.maxListLimit); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = s.listLimit
	}

	items, err := s.notifications.ListByRecipient(ctx, userID, input.UnreadOnly, limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

// UnreadCount returns how many of the caller's notifications are unread.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	n, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}

// MarkRead marks one of the caller's notifications as read. Marking an
// already read notification succeeds without changing it. Notifications
// addressed to someone else are reported as not found.
func (s *Service) MarkRead(ctx context.Context, input MarkReadInput) (*domain.Notification, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if err := s.notifications.MarkRead(ctx, userID, input.NotificationID, s.now()); err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}

	n, err := s.notifications.GetByID(ctx, userID, input.NotificationID)
	if err != nil {
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

// MarkAllRead marks every unread notification of the caller and returns how many changed.
func (s *Service) MarkAllRead(ctx context.Context) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	n, err := s.notifications.MarkAllRead(ctx, userID, s.now())
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}

	if n > 0 {
		s.log.InfoContext(ctx, "notifications marked read",
			slog.String("user_id", userID.String()),
			slog.Int("count", n),
		)
	}
	return n, nil
}
