package payment

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/config"
	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/internal/metrics"
)

//go:generate moq -out charge_repo_mock_test.go -pkg payment . chargeRepo
//go:generate moq -out estate_repo_mock_test.go -pkg payment . estateRepo
//go:generate moq -out tx_manager_mock_test.go -pkg payment . txManager
//go:generate moq -out receipt_store_mock_test.go -pkg payment . receiptStore
//go:generate moq -out replay_store_mock_test.go -pkg payment . replayStore
//go:generate moq -out dispatcher_mock_test.go -pkg payment . dispatcher

type chargeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceCharge, error)
	List(ctx context.Context, filter domain.ChargeFilter) ([]*domain.ServiceCharge, error)
	ListOutstanding(ctx context.Context, userID uuid.UUID) ([]*domain.ServiceCharge, error)
	Create(ctx context.Context, c *domain.ServiceCharge) error
	SavePayment(ctx context.Context, c *domain.ServiceCharge, entry domain.PaymentEntry) error
	UpdateStatus(ctx context.Context, c *domain.ServiceCharge) error
}

type estateRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Estate, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type receiptStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type replayStore interface {
	Load(ctx context.Context, key string) (*domain.TransitionRecord, bool, error)
	Save(ctx context.Context, rec *domain.TransitionRecord) error
}

type dispatcher interface {
	DispatchAll(ctx context.Context, outbound []domain.Outbound) domain.DispatchReport
}

// Service runs the payment workflow over service charges.
type Service struct {
	charges    chargeRepo
	estates    estateRepo
	tx         txManager
	receipts   receiptStore
	replay     replayStore
	dispatcher dispatcher
	log        *slog.Logger
	metrics    *metrics.Metrics
	cfg        config.ReceiptsConfig
	now        func() time.Time
}

// NewService creates a new Payment service.
func NewService(
	log *slog.Logger,
	charges chargeRepo,
	estates estateRepo,
	tx txManager,
	receipts receiptStore,
	replay replayStore,
	dispatcher dispatcher,
	cfg config.ReceiptsConfig,
	m *metrics.Metrics,
) *Service {
	return &Service{
		charges:    charges,
		estates:    estates,
		tx:         tx,
		receipts:   receipts,
		replay:     replay,
		dispatcher: dispatcher,
		log:        log.With("service", "payment"),
		metrics:    m,
		cfg:        cfg,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func replayKey(actorID uuid.UUID, idempotencyKey string) string {
	return "payment:" + actorID.String() + ":" + idempotencyKey
}
