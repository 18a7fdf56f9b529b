package membership

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/pkg/ctxutil"
)

// GetEstate returns an estate. Invite tokens are only visible to admins.
func (s *Service) GetEstate(ctx context.Context, estateID uuid.UUID) (*domain.Estate, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if estateID == uuid.Nil {
		return nil, domain.NewValidationError("estate_id", "required")
	}

	e, err := s.estates.GetByID(ctx, estateID)
	if err != nil {
		return nil, fmt.Errorf("get estate %s: %w", estateID, err)
	}
	return e.Redacted(actorID), nil
}

// ListMyEstates returns the estates the caller belongs to, by name.
func (s *Service) ListMyEstates(ctx context.Context) ([]*domain.Estate, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	filter := domain.EstateFilter{MemberID: &actorID, Limit: domain.MaxPageLimit}
	estates, err := s.estates.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list estates: %w", err)
	}
	return redactAll(estates, actorID), nil
}

// DiscoverEstates returns estates the caller has not joined, optionally
// filtered by a case-insensitive name search.
func (s *Service) DiscoverEstates(ctx context.Context, input DiscoverInput) ([]*domain.Estate, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	filter := domain.EstateFilter{
		ExcludeMemberID: &actorID,
		Search:          strings.TrimSpace(input.Search),
		Limit:           input.Limit,
		Offset:          input.Offset,
	}
	filter.Normalize()

	estates, err := s.estates.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("discover estates: %w", err)
	}
	return redactAll(estates, actorID), nil
}

// GetRelationship returns the caller's standing towards an estate.
func (s *Service) GetRelationship(ctx context.Context, estateID uuid.UUID) (domain.Relationship, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	if estateID == uuid.Nil {
		return "", domain.NewValidationError("estate_id", "required")
	}

	e, err := s.estates.GetByID(ctx, estateID)
	if err != nil {
		return "", fmt.Errorf("get estate %s: %w", estateID, err)
	}
	return e.RelationshipOf(actorID), nil
}

// ListAudit returns the estate's committed membership transitions, newest
// first. Admins only.
func (s *Service) ListAudit(ctx context.Context, input AuditInput) ([]domain.AuditRecord, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	e, err := s.estates.GetByID(ctx, input.EstateID)
	if err != nil {
		return nil, fmt.Errorf("get estate %s: %w", input.EstateID, err)
	}
	if !e.IsAdmin(actorID) {
		return nil, fmt.Errorf("%w: only admins may view the membership history", domain.ErrForbidden)
	}

	limit := input.Limit
	if limit == 0 {
		limit = domain.DefaultPageLimit
	}
	records, err := s.audit.ListByEstate(ctx, input.EstateID, limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	return records, nil
}

func redactAll(estates []*domain.Estate, viewerID uuid.UUID) []*domain.Estate {
	out := make([]*domain.Estate, len(estates))
	for i, e := range estates {
		out[i] = e.Redacted(viewerID)
	}
	return out
}
