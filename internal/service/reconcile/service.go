// Package reconcile audits stored estates and charges against the ledger
// and membership invariants without modifying anything.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
)

const defaultPageSize = 100

type estateLister interface {
	List(ctx context.Context, filter domain.EstateFilter) ([]*domain.Estate, error)
}

type chargeLister interface {
	List(ctx context.Context, filter domain.ChargeFilter) ([]*domain.ServiceCharge, error)
}

// Violation is one record that failed its invariant check.
type Violation struct {
	Entity   string
	ID       uuid.UUID
	EstateID uuid.UUID
	Reason   string
}

// Report summarises an audit run.
type Report struct {
	Estates    int
	Charges    int
	Violations []Violation
}

// OK reports whether no violation was found.
func (r Report) OK() bool { return len(r.Violations) == 0 }

// Service walks every estate and its charges page by page.
type Service struct {
	log      *slog.Logger
	estates  estateLister
	charges  chargeLister
	pageSize int
}

func NewService(log *slog.Logger, estates estateLister, charges chargeLister, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Service{
		log:      log.With("service", "reconcile"),
		estates:  estates,
		charges:  charges,
		pageSize: pageSize,
	}
}

// Run audits everything. An error means the walk itself failed; violations
// are reported in the Report.
func (s *Service) Run(ctx context.Context) (Report, error) {
	var report Report

	for offset := 0; ; offset += s.pageSize {
		page, err := s.estates.List(ctx, domain.EstateFilter{Limit: s.pageSize, Offset: offset})
		if err != nil {
			return report, fmt.Errorf("list estates at offset %d: %w", offset, err)
		}

		for _, e := range page {
			report.Estates++
			if err := e.CheckInvariants(); err != nil {
				report.add(s.violation(ctx, "estate", e.ID, e.ID, err))
			}
			if err := s.auditCharges(ctx, e.ID, &report); err != nil {
				return report, err
			}
		}

		if len(page) < s.pageSize {
			break
		}
	}

	s.log.InfoContext(ctx, "reconciliation finished",
		slog.Int("estates", report.Estates),
		slog.Int("charges", report.Charges),
		slog.Int("violations", len(report.Violations)),
	)
	return report, nil
}

func (s *Service) auditCharges(ctx context.Context, estateID uuid.UUID, report *Report) error {
	for offset := 0; ; offset += s.pageSize {
		page, err := s.charges.List(ctx, domain.ChargeFilter{EstateID: estateID, Limit: s.pageSize, Offset: offset})
		if err != nil {
			return fmt.Errorf("list charges of estate %s: %w", estateID, err)
		}
		for _, c := range page {
			report.Charges++
			if err := c.CheckInvariants(); err != nil {
				report.add(s.violation(ctx, "charge", c.ID, estateID, err))
			}
		}
		if len(page) < s.pageSize {
			return nil
		}
	}
}

func (s *Service) violation(ctx context.Context, entity string, id, estateID uuid.UUID, err error) Violation {
	s.log.WarnContext(ctx, "invariant violation",
		slog.String("entity", entity),
		slog.String("id", id.String()),
		slog.String("estate_id", estateID.String()),
		slog.String("reason", err.Error()),
	)
	return Violation{Entity: entity, ID: id, EstateID: estateID, Reason: err.Error()}
}

func (r *Report) add(v Violation) { r.Violations = append(r.Violations, v) }
