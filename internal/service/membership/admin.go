package membership

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/pkg/ctxutil"
)

const (
	opGrantAdmin  = "membership.grant_admin"
	opRevokeAdmin = "membership.revoke_admin"
	opLeave       = "membership.leave"
	opAnnounce    = "estate.announce"
)

// GrantAdmin promotes a member. Only the creator may, and never on themselves.
func (s *Service) GrantAdmin(ctx context.Context, input TargetInput) (*TransitionResult, error) {
	return s.onTarget(ctx, opGrantAdmin, input, func(actorID uuid.UUID) applyFunc {
		return func(e *domain.Estate, _ time.Time) ([]domain.Outbound, error) {
			if err := e.GrantAdmin(actorID, input.UserID); err != nil {
				return nil, err
			}
			return to([]uuid.UUID{input.UserID},
				estateNotice(e, "Admin Access Granted", "You are now an admin of %s")), nil
		}
	})
}

// RevokeAdmin demotes an admin. Only the creator may, and never on themselves.
func (s *Service) RevokeAdmin(ctx context.Context, input TargetInput) (*TransitionResult, error) {
	return s.onTarget(ctx, opRevokeAdmin, input, func(actorID uuid.UUID) applyFunc {
		return func(e *domain.Estate, _ time.Time) ([]domain.Outbound, error) {
			if err := e.RevokeAdmin(actorID, input.UserID); err != nil {
				return nil, err
			}
			return to([]uuid.UUID{input.UserID},
				estateNotice(e, "Admin Access Revoked", "Your admin access to %s has been revoked")), nil
		}
	})
}

// Leave removes the caller from the estate. The creator cannot leave.
func (s *Service) Leave(ctx context.Context, input EstateInput) (*TransitionResult, error) {
	return s.self(ctx, opLeave, input, func(actorID uuid.UUID) applyFunc {
		return func(e *domain.Estate, _ time.Time) ([]domain.Outbound, error) {
			if err := e.Leave(actorID); err != nil {
				return nil, err
			}
			return to([]uuid.UUID{e.CreatedBy}, withRequester(
				estateNotice(e, "Member Left", "A member has left %s"), actorID)), nil
		}
	})
}

// Announce sends a message to every other member. Admins only. The estate is not modified.
func (s *Service) Announce(ctx context.Context, input AnnounceInput) (*TransitionResult, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	message := strings.TrimSpace(input.Message)
	return s.run(ctx, transition{
		op:             opAnnounce,
		actorID:        actorID,
		estateID:       input.EstateID,
		idempotencyKey: input.IdempotencyKey,
		readOnly:       true,
		apply: func(e *domain.Estate, _ time.Time) ([]domain.Outbound, error) {
			if err := e.AuthorizeAnnouncement(actorID); err != nil {
				return nil, err
			}
			return to(e.Members, announcementTemplate(e, message)), nil
		},
	})
}
