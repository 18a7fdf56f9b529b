package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/config"
	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/internal/metrics"
)

//go:generate moq -out notification_repo_mock_test.go -pkg notification . notificationRepo

type notificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) (duplicate bool, err error)
	GetByID(ctx context.Context, recipientID, id uuid.UUID) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, recipientID, id uuid.UUID, now time.Time) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID, now time.Time) (int, error)
}

// Service dispatches notifications and serves the caller's inbox.
type Service struct {
	notifications notificationRepo
	log           *slog.Logger
	metrics       *metrics.Metrics
	concurrency   int
	listLimit     int
	maxListLimit  int
	now           func() time.Time
}

// NewService creates a new Notification service.
func NewService(
	log *slog.Logger,
	notifications notificationRepo,
	cfg config.NotificationsConfig,
	m *metrics.Metrics,
) *Service {
	concurrency := cfg.DispatchConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	listLimit := cfg.ListLimit
	if listLimit < 1 {
		listLimit = domain.DefaultPageLimit
	}
	maxListLimit := cfg.MaxListLimit
	if maxListLimit < listLimit {
		maxListLimit = listLimit
	}

	return &Service{
		notifications: notifications,
		log:           log.With("service", "notification"),
		metrics:       m,
		concurrency:   concurrency,
		listLimit:     listLimit,
		maxListLimit:  maxListLimit,
		now:           func() time.Time { return time.Now().UTC() },
	}
}
