package membership

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/pkg/ctxutil"
)

const (
	opRequestJoin    = "membership.request_join"
	opCancelRequest  = "membership.cancel_request"
	opApproveRequest = "membership.approve"
	opDeclineRequest = "membership.decline"
)

// RequestJoin asks to join an estate. All admins are notified.
func (s *Service) RequestJoin(ctx context.Context, input EstateInput) (*TransitionResult, error) {
	return s.self(ctx, opRequestJoin, input, func(actorID uuid.UUID) applyFunc {
		return func(e *domain.Estate, _ time.Time) ([]domain.Outbound, error) {
			if err := e.RequestJoin(actorID); err != nil {
				return nil, err
			}
			return to(e.Admins, joinRequestedTemplate(e, actorID)), nil
		}
	})
}

// CancelRequest withdraws the caller's pending join request.
func (s *Service) CancelRequest(ctx context.Context, input EstateInput) (*TransitionResult, error) {
	return s.self(ctx, opCancelRequest, input, func(actorID uuid.UUID) applyFunc {
		return func(e *domain.Estate, _ time.Time) ([]domain.Outbound, error) {
			return nil, e.CancelRequest(actorID)
		}
	})
}

// ApproveRequest admits a pending requester. Admins only.
func (s *Service) ApproveRequest(ctx context.Context, input TargetInput) (*TransitionResult, error) {
	return s.onTarget(ctx, opApproveRequest, input, func(actorID uuid.UUID) applyFunc {
		return func(e *domain.Estate, _ time.Time) ([]domain.Outbound, error) {
			if err := e.Approve(actorID, input.UserID); err != nil {
				return nil, err
			}
			return to([]uuid.UUID{input.UserID},
				estateNotice(e, "Join Request Approved", "Your request to join %s has been approved")), nil
		}
	})
}

// DeclineRequest rejects a pending requester. Admins only.
func (s *Service) DeclineRequest(ctx context.Context, input TargetInput) (*TransitionResult, error) {
	return s.onTarget(ctx, opDeclineRequest, input, func(actorID uuid.UUID) applyFunc {
		return func(e *domain.Estate, _ time.Time) ([]domain.Outbound, error) {
			if err := e.Decline(actorID, input.UserID); err != nil {
				return nil, err
			}
			return to([]uuid.UUID{input.UserID},
				estateNotice(e, "Join Request Declined", "Your request to join %s has been declined")), nil
		}
	})
}

// self runs a transition the caller applies to their own standing.
func (s *Service) self(ctx context.Context, op string, input EstateInput, build func(actorID uuid.UUID) applyFunc) (*TransitionResult, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	return s.run(ctx, transition{
		op:             op,
		actorID:        actorID,
		estateID:       input.EstateID,
		idempotencyKey: input.IdempotencyKey,
		apply:          build(actorID),
	})
}

// onTarget runs a transition the caller applies to another user.
func (s *Service) onTarget(ctx context.Context, op string, input TargetInput, build func(actorID uuid.UUID) applyFunc) (*TransitionResult, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	return s.run(ctx, transition{
		op:             op,
		actorID:        actorID,
		estateID:       input.EstateID,
		subjectID:      input.UserID,
		idempotencyKey: input.IdempotencyKey,
		apply:          build(actorID),
	})
}
