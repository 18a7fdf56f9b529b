package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/pkg/ctxutil"
)

// CreateCharge adds a pending charge to an estate. Only admins may do it.
// Every other member is notified once the charge is stored.
func (s *Service) CreateCharge(ctx context.Context, input CreateChargeInput) (*ChargeResult, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		charge *domain.ServiceCharge
		estate *domain.Estate
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		estate, err = s.estates.GetByID(ctx, input.EstateID)
		if err != nil {
			return fmt.Errorf("get estate %s: %w", input.EstateID, err)
		}
		if !estate.IsAdmin(actorID) {
			return fmt.Errorf("%w: only admins may create service charges", domain.ErrForbidden)
		}

		charge = domain.NewServiceCharge(
			uuid.New(), estate.ID, actorID,
			strings.TrimSpace(input.Title), strings.TrimSpace(input.Description),
			input.Amount, input.DueDate.UTC(), s.now(),
		)
		if err := s.charges.Create(ctx, charge); err != nil {
			return fmt.Errorf("create charge: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "service charge created",
		slog.String("event", "charge.created"),
		slog.String("estate_id", estate.ID.String()),
		slog.String("charge_id", charge.ID.String()),
		slog.String("user_id", actorID.String()),
		slog.String("amount", charge.Amount.StringFixed(2)),
	)

	report := s.dispatcher.DispatchAll(ctx, []domain.Outbound{{
		Recipients: domain.RecipientsExcept(estate.Members, actorID),
		Template:   newChargeTemplate(estate, charge),
	}})

	return &ChargeResult{Charge: charge, Notifications: report}, nil
}
