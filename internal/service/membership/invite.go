package membership

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/pkg/ctxutil"
)

const (
	opInvite        = "membership.invite"
	opRevokeInvite  = "membership.revoke_invite"
	opAcceptInvite  = "membership.accept_invite"
	opDeclineInvite = "membership.decline_invite"
)

// Invite issues an invitation with a fresh token. Re-inviting replaces the
// token so an earlier one can no longer be redeemed. Admins only.
func (s *Service) Invite(ctx context.Context, input TargetInput) (*TransitionResult, error) {
	return s.onTarget(ctx, opInvite, input, func(actorID uuid.UUID) applyFunc {
		return func(e *domain.Estate, now time.Time) ([]domain.Outbound, error) {
			tok := domain.InviteToken{Token: s.newToken(), IssuedAt: now, IssuedBy: actorID}
			if _, err := e.Invite(actorID, input.UserID, tok); err != nil {
				return nil, err
			}
			return to([]uuid.UUID{input.UserID}, invitationTemplate(e, tok.Token)), nil
		}
	})
}

// RevokeInvite withdraws an outstanding invitation. Admins only.
func (s *Service) RevokeInvite(ctx context.Context, input TargetInput) (*TransitionResult, error) {
	return s.onTarget(ctx, opRevokeInvite, input, func(actorID uuid.UUID) applyFunc {
		return func(e *domain.Estate, _ time.Time) ([]domain.Outbound, error) {
			if err := e.RevokeInvite(actorID, input.UserID); err != nil {
				return nil, err
			}
			return to([]uuid.UUID{input.UserID},
				estateNotice(e, "Invitation Withdrawn", "Your invitation to join %s has been withdrawn")), nil
		}
	})
}

// AcceptInvite redeems the caller's invitation. The token must match the
// one most recently issued; otherwise domain.ErrInvalidToken is returned
// and nothing changes.
func (s *Service) AcceptInvite(ctx context.Context, input AcceptInviteInput) (*TransitionResult, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	return s.run(ctx, transition{
		op:             opAcceptInvite,
		actorID:        actorID,
		estateID:       input.EstateID,
		idempotencyKey: input.IdempotencyKey,
		apply: func(e *domain.Estate, _ time.Time) ([]domain.Outbound, error) {
			issuer := e.InviteIssuer(actorID)
			if err := e.AcceptInvite(actorID, input.Token); err != nil {
				return nil, err
			}
			return to([]uuid.UUID{issuer}, withRequester(
				estateNotice(e, "Invitation Accepted", "Your invitation to join %s has been accepted"), actorID)), nil
		},
	})
}

// DeclineInvite drops the caller's invitation.
func (s *Service) DeclineInvite(ctx context.Context, input EstateInput) (*TransitionResult, error) {
	return s.self(ctx, opDeclineInvite, input, func(actorID uuid.UUID) applyFunc {
		return func(e *domain.Estate, _ time.Time) ([]domain.Outbound, error) {
			issuer := e.InviteIssuer(actorID)
			if err := e.DeclineInvite(actorID); err != nil {
				return nil, err
			}
			return to([]uuid.UUID{issuer}, withRequester(
				estateNotice(e, "Invitation Declined", "Your invitation to join %s has been declined"), actorID)), nil
		}
	})
}
