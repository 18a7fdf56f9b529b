package membership

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/pkg/ctxutil"
)

const opCreateEstate = "estate.create"

// CreateEstate creates an estate whose creator is its sole member and admin.
func (s *Service) CreateEstate(ctx context.Context, input CreateEstateInput) (*TransitionResult, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	t := transition{op: opCreateEstate, actorID: actorID, idempotencyKey: input.IdempotencyKey}
	if t.idempotencyKey != "" {
		if res, ok, err := s.replayed(ctx, t); err != nil || ok {
			return res, err
		}
	}

	typ := input.Type
	if typ == "" {
		typ = domain.EstateTypeResidential
	}
	estate := domain.NewEstate(uuid.New(), strings.TrimSpace(input.Name), strings.TrimSpace(input.Address), typ, actorID, s.now())

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.estates.Create(ctx, estate); err != nil {
			return fmt.Errorf("create estate: %w", err)
		}
		return s.recordAudit(ctx, estate, t)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "estate created",
		slog.String("event", opCreateEstate),
		slog.String("estate_id", estate.ID.String()),
		slog.String("user_id", actorID.String()),
	)
	s.metrics.MembershipTransition(opCreateEstate)

	if t.idempotencyKey != "" {
		t.estateID = estate.ID
		s.remember(ctx, t, nil)
	}

	return &TransitionResult{Estate: estate.Redacted(actorID), Notifications: emptyReport()}, nil
}

func emptyReport() domain.DispatchReport {
	return domain.DispatchReport{Created: []domain.DispatchedNotification{}}
}

