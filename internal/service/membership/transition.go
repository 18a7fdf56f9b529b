package membership

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
)

// applyFunc performs one transition on a freshly read estate and returns the
// notifications to send once it has committed.
type applyFunc func(e *domain.Estate, now time.Time) ([]domain.Outbound, error)

type transition struct {
	op             string
	actorID        uuid.UUID
	estateID       uuid.UUID
	// subjectID is the user whose standing changes; zero means the actor.
	subjectID      uuid.UUID
	idempotencyKey string
	// readOnly transitions authorize and notify without writing the estate.
	readOnly bool
	apply    applyFunc
}

type replayedTransition struct {
	EstateID uuid.UUID `json:"estateId"`
}

// run executes t inside one transaction and dispatches its notifications
// after commit. A retried request carrying the same idempotency key gets
// the committed outcome again without a second transition.
func (s *Service) run(ctx context.Context, t transition) (*TransitionResult, error) {
	if t.idempotencyKey != "" {
		if res, ok, err := s.replayed(ctx, t); err != nil || ok {
			return res, err
		}
	}

	var (
		estate   *domain.Estate
		outbound []domain.Outbound
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		e, err := s.estates.GetByID(ctx, t.estateID)
		if err != nil {
			return fmt.Errorf("get estate %s: %w", t.estateID, err)
		}

		outbound, err = t.apply(e, s.now())
		if err != nil {
			return err
		}

		if !t.readOnly {
			e.UpdatedAt = s.now()
			if err := s.estates.Update(ctx, e); err != nil {
				return fmt.Errorf("update estate: %w", err)
			}
			if err := s.recordAudit(ctx, e, t); err != nil {
				return err
			}
		}
		estate = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "membership transition committed",
		slog.String("event", t.op),
		slog.String("estate_id", estate.ID.String()),
		slog.String("user_id", t.actorID.String()),
		slog.Int("member_count", estate.MemberCount),
	)
	s.metrics.MembershipTransition(t.op)

	outbound = addressed(outbound, t)
	if t.idempotencyKey != "" {
		s.remember(ctx, t, outbound)
	}

	return &TransitionResult{
		Estate:        estate.Redacted(t.actorID),
		Notifications: s.dispatcher.DispatchAll(ctx, outbound),
	}, nil
}

// recordAudit appends e's new state to the audit log inside the running
// transaction. It must follow the estate write so the version is current.
func (s *Service) recordAudit(ctx context.Context, e *domain.Estate, t transition) error {
	subject := t.subjectID
	if subject == uuid.Nil {
		subject = t.actorID
	}
	if err := s.audit.Append(ctx, domain.NewAuditRecord(uuid.New(), e, t.actorID, subject, t.op, s.now())); err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}

// addressed drops the actor from every recipient list and scopes dedup keys
// to the request, so a redelivered transition never alerts anyone twice.
func addressed(outbound []domain.Outbound, t transition) []domain.Outbound {
	out := make([]domain.Outbound, 0, len(outbound))
	for i, o := range outbound {
		o.Recipients = domain.RecipientsExcept(o.Recipients, t.actorID)
		if len(o.Recipients) == 0 {
			continue
		}
		if t.idempotencyKey != "" {
			o.Template.DedupKey = fmt.Sprintf("%s:%s:%s:%d", t.op, t.estateID, t.idempotencyKey, i)
		}
		out = append(out, o)
	}
	return out
}

func replayKey(actorID uuid.UUID, idempotencyKey string) string {
	return "membership:" + actorID.String() + ":" + idempotencyKey
}

func (s *Service) replayed(ctx context.Context, t transition) (*TransitionResult, bool, error) {
	rec, ok, err := s.replay.Load(ctx, replayKey(t.actorID, t.idempotencyKey))
	if err != nil {
		s.log.WarnContext(ctx, "replay lookup failed", slog.String("error", err.Error()))
		return nil, false, nil
	}
	if !ok {
		return nil, false, nil
	}

	var prior replayedTransition
	if err := json.Unmarshal(rec.Result, &prior); err != nil ||
		rec.Operation != t.op || (t.estateID != uuid.Nil && prior.EstateID != t.estateID) {
		return nil, false, fmt.Errorf("%w: idempotency key was used for a different request", domain.ErrConflict)
	}

	estate, err := s.estates.GetByID(ctx, prior.EstateID)
	if err != nil {
		return nil, false, fmt.Errorf("get estate %s: %w", prior.EstateID, err)
	}

	s.metrics.Replayed(t.op)
	return &TransitionResult{
		Estate:        estate.Redacted(t.actorID),
		Notifications: s.dispatcher.DispatchAll(ctx, rec.Outbound),
		Replayed:      true,
	}, true, nil
}

func (s *Service) remember(ctx context.Context, t transition, outbound []domain.Outbound) {
	result, err := json.Marshal(replayedTransition{EstateID: t.estateID})
	if err == nil {
		err = s.replay.Save(ctx, &domain.TransitionRecord{
			Key:         replayKey(t.actorID, t.idempotencyKey),
			Operation:   t.op,
			ActorID:     t.actorID,
			Result:      result,
			Outbound:    outbound,
			CommittedAt: s.now(),
		})
	}
	if err != nil {
		s.log.WarnContext(ctx, "replay record not saved",
			slog.String("event", t.op),
			slog.String("estate_id", t.estateID.String()),
			slog.String("error", err.Error()),
		)
	}
}
