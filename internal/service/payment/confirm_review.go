package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/pkg/ctxutil"
)

// ConfirmReview resolves a charge awaiting receipt review into partial or
// paid. Only admins may confirm. The payer of the latest manual entry is
// notified unless they confirmed it themselves.
func (s *Service) ConfirmReview(ctx context.Context, chargeID uuid.UUID) (*ChargeResult, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if chargeID == uuid.Nil {
		return nil, domain.NewValidationError("charge_id", "required")
	}

	var charge *domain.ServiceCharge
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		charge, err = s.charges.GetByID(ctx, chargeID)
		if err != nil {
			return fmt.Errorf("get charge %s: %w", chargeID, err)
		}
		estate, err := s.estates.GetByID(ctx, charge.EstateID)
		if err != nil {
			return fmt.Errorf("get estate %s: %w", charge.EstateID, err)
		}
		if !estate.IsAdmin(actorID) {
			return fmt.Errorf("%w: only admins may confirm payments", domain.ErrForbidden)
		}

		if err := charge.ConfirmReview(s.now()); err != nil {
			return err
		}
		if err := s.charges.UpdateStatus(ctx, charge); err != nil {
			return fmt.Errorf("update charge status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "payment review confirmed",
		slog.String("event", "payment.confirmed"),
		slog.String("estate_id", charge.EstateID.String()),
		slog.String("charge_id", charge.ID.String()),
		slog.String("user_id", actorID.String()),
		slog.String("status", charge.Status.String()),
	)

	var outbound []domain.Outbound
	if payer, ok := charge.LastManualPayer(); ok {
		if recipients := domain.RecipientsExcept([]uuid.UUID{payer}, actorID); len(recipients) > 0 {
			outbound = append(outbound, domain.Outbound{
				Recipients: recipients,
				Template:   paymentConfirmedTemplate(charge),
			})
		}
	}

	return &ChargeResult{Charge: charge, Notifications: s.dispatcher.DispatchAll(ctx, outbound)}, nil
}
