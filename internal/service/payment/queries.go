package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/pkg/ctxutil"
)

// GetCharge returns a charge with its payment history in commit order.
func (s *Service) GetCharge(ctx context.Context, chargeID uuid.UUID) (*domain.ServiceCharge, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if chargeID == uuid.Nil {
		return nil, domain.NewValidationError("charge_id", "required")
	}

	charge, _, err := s.loadForMember(ctx, chargeID, actorID)
	if err != nil {
		return nil, err
	}
	return charge, nil
}

// ListCharges returns an estate's charges, newest due date first.
func (s *Service) ListCharges(ctx context.Context, input ListChargesInput) ([]*domain.ServiceCharge, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	estate, err := s.estates.GetByID(ctx, input.EstateID)
	if err != nil {
		return nil, fmt.Errorf("get estate %s: %w", input.EstateID, err)
	}
	if !estate.IsMember(actorID) {
		return nil, fmt.Errorf("%w: only estate members may view service charges", domain.ErrForbidden)
	}

	filter := domain.ChargeFilter{
		EstateID: input.EstateID,
		Status:   input.Status,
		Limit:    input.Limit,
		Offset:   input.Offset,
	}
	filter.Normalize()

	charges, err := s.charges.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list charges: %w", err)
	}
	return charges, nil
}

// ListOutstanding returns every unpaid charge across the caller's estates.
func (s *Service) ListOutstanding(ctx context.Context) ([]*domain.ServiceCharge, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	charges, err := s.charges.ListOutstanding(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list outstanding charges: %w", err)
	}
	return charges, nil
}
