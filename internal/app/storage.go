package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/adapter/memory"
	"github.com/filatei/btorestate/internal/adapter/postgres"
	auditrepo "github.com/filatei/btorestate/internal/adapter/postgres/audit"
	chargerepo "github.com/filatei/btorestate/internal/adapter/postgres/charge"
	estaterepo "github.com/filatei/btorestate/internal/adapter/postgres/estate"
	notificationrepo "github.com/filatei/btorestate/internal/adapter/postgres/notification"
	"github.com/filatei/btorestate/internal/adapter/redis"
	"github.com/filatei/btorestate/internal/config"
	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/internal/metrics"
)

type estateStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Estate, error)
	List(ctx context.Context, filter domain.EstateFilter) ([]*domain.Estate, error)
	Create(ctx context.Context, e *domain.Estate) error
	Update(ctx context.Context, e *domain.Estate) error
}

type chargeStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceCharge, error)
	List(ctx context.Context, filter domain.ChargeFilter) ([]*domain.ServiceCharge, error)
	ListOutstanding(ctx context.Context, userID uuid.UUID) ([]*domain.ServiceCharge, error)
	Create(ctx context.Context, c *domain.ServiceCharge) error
	SavePayment(ctx context.Context, c *domain.ServiceCharge, entry domain.PaymentEntry) error
	UpdateStatus(ctx context.Context, c *domain.ServiceCharge) error
}

type notificationStore interface {
	GetByID(ctx context.Context, recipientID, id uuid.UUID) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error)
	Create(ctx context.Context, n *domain.Notification) (bool, error)
	MarkRead(ctx context.Context, recipientID, id uuid.UUID, now time.Time) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID, now time.Time) (int, error)
}

type auditStore interface {
	Append(ctx context.Context, rec domain.AuditRecord) error
	ListByEstate(ctx context.Context, estateID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error)
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type replayCache interface {
	Load(ctx context.Context, key string) (*domain.TransitionRecord, bool, error)
	Save(ctx context.Context, rec *domain.TransitionRecord) error
}

// Storage is the persistence the services run on: PostgreSQL when a DSN is
// configured, otherwise the in-memory store.
type Storage struct {
	Estates       estateStore
	Charges       chargeStore
	Notifications notificationStore
	Audit         auditStore
	Tx            txRunner
	Replay        replayCache

	// Ping checks the ledger backend; RedisPing is nil without Redis.
	Ping      func(ctx context.Context) error
	RedisPing func(ctx context.Context) error
	Backend   string

	closers []func()
}

// Close releases connections in reverse order of opening.
func (s *Storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// OpenStorage connects the ledger backend and the replay cache.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*Storage, error) {
	onRetry := func(attempt int, err error) {
		m.TxRetried()
		logger.DebugContext(ctx, "transaction retry",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)
	}

	s := &Storage{}
	if cfg.Database.UsesPostgres() {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		s.closers = append(s.closers, pool.Close)
		s.Estates = estaterepo.New(pool)
		s.Charges = chargerepo.New(pool)
		s.Notifications = notificationrepo.New(pool)
		s.Audit = auditrepo.New(pool)
		s.Tx = postgres.NewTxManager(pool,
			postgres.WithMaxAttempts(cfg.Ledger.TxMaxAttempts),
			postgres.WithRetryDelay(cfg.Ledger.TxRetryBaseDelay),
			postgres.WithRetryObserver(onRetry),
		)
		s.Ping = pool.Ping
		s.Backend = "postgres"
	} else {
		store := memory.NewStore()
		s.Estates = memory.NewEstateRepo(store)
		s.Charges = memory.NewChargeRepo(store)
		s.Notifications = memory.NewNotificationRepo(store)
		s.Audit = memory.NewAuditRepo(store)
		s.Tx = memory.NewTxManager(store, cfg.Ledger.TxMaxAttempts, cfg.Ledger.TxRetryBaseDelay).OnRetry(onRetry)
		s.Ping = store.Ping
		s.Backend = "memory"
		logger.WarnContext(ctx, "database.dsn is empty, ledger state will not survive a restart")
	}

	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if rdb != nil {
		s.closers = append(s.closers, func() { _ = rdb.Close() })
		s.Replay = redis.NewReplayStore(rdb, cfg.Redis.KeyPrefix, cfg.Notifications.ReplayTTL)
		s.RedisPing = rdb.Health
	} else {
		s.Replay = memory.NewReplayStore(cfg.Notifications.ReplayTTL)
	}

	return s, nil
}
