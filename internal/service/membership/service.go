package membership

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/internal/metrics"
)

//go:generate moq -out estate_repo_mock_test.go -pkg membership . estateRepo
//go:generate moq -out tx_manager_mock_test.go -pkg membership . txManager
//go:generate moq -out replay_store_mock_test.go -pkg membership . replayStore
//go:generate moq -out dispatcher_mock_test.go -pkg membership . dispatcher
//go:generate moq -out audit_log_mock_test.go -pkg membership . auditLog

type estateRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Estate, error)
	List(ctx context.Context, filter domain.EstateFilter) ([]*domain.Estate, error)
	Create(ctx context.Context, e *domain.Estate) error
	Update(ctx context.Context, e *domain.Estate) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type replayStore interface {
	Load(ctx context.Context, key string) (*domain.TransitionRecord, bool, error)
	Save(ctx context.Context, rec *domain.TransitionRecord) error
}

type dispatcher interface {
	DispatchAll(ctx context.Context, outbound []domain.Outbound) domain.DispatchReport
}

type auditLog interface {
	Append(ctx context.Context, rec domain.AuditRecord) error
	ListByEstate(ctx context.Context, estateID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error)
}

// Service runs the membership workflow over estates.
type Service struct {
	estates    estateRepo
	audit      auditLog
	tx         txManager
	replay     replayStore
	dispatcher dispatcher
	log        *slog.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
	newToken   func() string
}

// NewService creates a new Membership service.
func NewService(
	log *slog.Logger,
	estates estateRepo,
	audit auditLog,
	tx txManager,
	replay replayStore,
	dispatcher dispatcher,
	m *metrics.Metrics,
) *Service {
	return &Service{
		estates:    estates,
		audit:      audit,
		tx:         tx,
		replay:     replay,
		dispatcher: dispatcher,
		log:        log.With("service", "membership"),
		metrics:    m,
		now:        func() time.Time { return time.Now().UTC() },
		newToken:   uuid.NewString,
	}
}
