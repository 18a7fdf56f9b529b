package notification

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/filatei/btorestate/internal/domain"
)

type outcome struct {
	id        uuid.UUID
	duplicate bool
	err       error
}

// Dispatch writes one notification per distinct recipient. Writes are
// independent: a failed recipient is listed in the report and never affects
// the others. Dispatch runs after the triggering transition committed, so it
// ignores cancellation of ctx and never returns an error.
func (s *Service) Dispatch(ctx context.Context, recipients []uuid.UUID, tmpl domain.NotificationTemplate) domain.DispatchReport {
	ctx = context.WithoutCancel(ctx)

	recipients = domain.RecipientsExcept(recipients, uuid.Nil)
	if len(recipients) == 0 {
		return domain.DispatchReport{Created: []domain.DispatchedNotification{}}
	}
	if tmpl.DedupKey == "" {
		tmpl.DedupKey = uuid.NewString()
	}

	now := s.now()
	results := make([]outcome, len(recipients))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, recipientID := range recipients {
		g.Go(func() error {
			n := tmpl.For(uuid.New(), recipientID, now)
			duplicate, err := s.notifications.Create(ctx, n)
			results[i] = outcome{id: n.ID, duplicate: duplicate, err: err}
			return nil
		})
	}
	_ = g.Wait()

	report := domain.DispatchReport{Created: make([]domain.DispatchedNotification, 0, len(recipients))}
	for i, r := range results {
		recipientID := recipients[i]
		switch {
		case r.err != nil:
			s.log.WarnContext(ctx, "notification write failed",
				slog.String("recipient_id", recipientID.String()),
				slog.String("title", tmpl.Title),
				slog.String("error", r.err.Error()),
			)
			report.Failed = append(report.Failed, domain.DispatchFailure{RecipientID: recipientID, Reason: r.err.Error()})
		case r.duplicate:
			report.Duplicates = append(report.Duplicates, recipientID)
		default:
			report.Created = append(report.Created, domain.DispatchedNotification{RecipientID: recipientID, NotificationID: r.id})
		}
	}

	s.metrics.NotificationsDispatched(len(report.Created), len(report.Duplicates), len(report.Failed))
	return report
}

// DispatchAll sends every outbound request and merges the reports.
func (s *Service) DispatchAll(ctx context.Context, outbound []domain.Outbound) domain.DispatchReport {
	merged := domain.DispatchReport{Created: []domain.DispatchedNotification{}}
	for _, o := range outbound {
		r := s.Dispatch(ctx, o.Recipients, o.Template)
		merged.Created = append(merged.Created, r.Created...)
		merged.Duplicates = append(merged.Duplicates, r.Duplicates...)
		merged.Failed = append(merged.Failed, r.Failed...)
	}
	return merged
}
