package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/pkg/ctxutil"
)

type replayedPayment struct {
	ChargeID uuid.UUID `json:"chargeId"`
	EntryID  uuid.UUID `json:"entryId"`
}

// SubmitPayment records a payment against a charge.
//
// Input is validated before any I/O. A manual payment uploads its receipt
// first, then a single transaction re-reads the charge, applies the payment
// and writes it under the charge version. Notifications go out after commit.
//
// With an idempotency key a retried request returns the entry recorded by
// the first one and never writes a second entry.
func (s *Service) SubmitPayment(ctx context.Context, input SubmitPaymentInput) (*PaymentResult, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg.MaxBytes); err != nil {
		return nil, err
	}

	if input.IdempotencyKey != "" {
		if res, ok, err := s.replayFromCache(ctx, actorID, input); err != nil || ok {
			return res, err
		}
	}

	charge, estate, err := s.loadForMember(ctx, input.ChargeID, actorID)
	if err != nil {
		return nil, err
	}
	if entry, ok := charge.EntryByIdempotencyKey(actorID, input.IdempotencyKey); ok {
		return s.replayed(ctx, estate, charge, entry), nil
	}

	var receiptURL *string
	if input.Method.RequiresReceipt() {
		url, err := s.uploadReceipt(ctx, estate.ID, actorID, input.Receipt)
		if err != nil {
			return nil, err
		}
		receiptURL = &url
	}

	var (
		entry    domain.PaymentEntry
		replayed bool
	)
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		replayed = false

		var err error
		charge, estate, err = s.loadForMember(ctx, input.ChargeID, actorID)
		if err != nil {
			return err
		}
		if existing, ok := charge.EntryByIdempotencyKey(actorID, input.IdempotencyKey); ok {
			entry, replayed = existing, true
			return nil
		}

		sub := domain.PaymentSubmission{
			Amount:     input.Amount,
			Method:     input.Method,
			UserID:     actorID,
			ReceiptURL: receiptURL,
		}
		if input.IdempotencyKey != "" {
			key := input.IdempotencyKey
			sub.IdempotencyKey = &key
		}

		entry, err = charge.ApplyPayment(sub, uuid.New(), s.now())
		if err != nil {
			return err
		}
		if err := s.charges.SavePayment(ctx, charge, entry); err != nil {
			return fmt.Errorf("save payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if replayed {
		return s.replayed(ctx, estate, charge, entry), nil
	}

	s.log.InfoContext(ctx, "payment recorded",
		slog.String("event", "payment.recorded"),
		slog.String("estate_id", estate.ID.String()),
		slog.String("charge_id", charge.ID.String()),
		slog.String("user_id", actorID.String()),
		slog.String("method", entry.Method.String()),
		slog.String("amount", entry.Amount.StringFixed(2)),
		slog.String("status", charge.Status.String()),
	)
	s.metrics.PaymentRecorded(entry.Method.String(), charge.Status.String())

	outbound := paymentOutbound(estate, charge, entry)
	if input.IdempotencyKey != "" {
		s.remember(ctx, actorID, input.IdempotencyKey, charge.ID, entry.ID, outbound)
	}

	return &PaymentResult{
		Charge:        charge,
		Entry:         entry,
		Notifications: s.dispatcher.DispatchAll(ctx, outbound),
	}, nil
}

// loadForMember reads a charge and its estate, requiring actorID to be a member.
func (s *Service) loadForMember(ctx context.Context, chargeID, actorID uuid.UUID) (*domain.ServiceCharge, *domain.Estate, error) {
	charge, err := s.charges.GetByID(ctx, chargeID)
	if err != nil {
		return nil, nil, fmt.Errorf("get charge %s: %w", chargeID, err)
	}
	estate, err := s.estates.GetByID(ctx, charge.EstateID)
	if err != nil {
		return nil, nil, fmt.Errorf("get estate %s: %w", charge.EstateID, err)
	}
	if !estate.IsMember(actorID) {
		return nil, nil, fmt.Errorf("%w: not a member of this estate", domain.ErrForbidden)
	}
	return charge, estate, nil
}

func (s *Service) replayFromCache(ctx context.Context, actorID uuid.UUID, input SubmitPaymentInput) (*PaymentResult, bool, error) {
	rec, ok, err := s.replay.Load(ctx, replayKey(actorID, input.IdempotencyKey))
	if err != nil {
		s.log.WarnContext(ctx, "replay lookup failed", slog.String("error", err.Error()))
		return nil, false, nil
	}
	if !ok {
		return nil, false, nil
	}

	var prior replayedPayment
	if err := json.Unmarshal(rec.Result, &prior); err != nil || prior.ChargeID != input.ChargeID {
		return nil, false, fmt.Errorf("%w: idempotency key was used for a different request", domain.ErrConflict)
	}

	charge, _, err := s.loadForMember(ctx, prior.ChargeID, actorID)
	if err != nil {
		return nil, false, err
	}
	entry, ok := charge.EntryByIdempotencyKey(actorID, input.IdempotencyKey)
	if !ok {
		return nil, false, fmt.Errorf("%w: replayed payment %s missing from history", domain.ErrInvariant, prior.EntryID)
	}

	s.metrics.Replayed("payment.submit")
	return &PaymentResult{
		Charge:        charge,
		Entry:         entry,
		Notifications: s.dispatcher.DispatchAll(ctx, rec.Outbound),
		Replayed:      true,
	}, true, nil
}

// replayed answers a retry whose entry is already in the charge history.
func (s *Service) replayed(ctx context.Context, estate *domain.Estate, charge *domain.ServiceCharge, entry domain.PaymentEntry) *PaymentResult {
	s.metrics.Replayed("payment.submit")
	return &PaymentResult{
		Charge:        charge,
		Entry:         entry,
		Notifications: s.dispatcher.DispatchAll(ctx, paymentOutbound(estate, charge, entry)),
		Replayed:      true,
	}
}

func (s *Service) remember(ctx context.Context, actorID uuid.UUID, key string, chargeID, entryID uuid.UUID, outbound []domain.Outbound) {
	result, err := json.Marshal(replayedPayment{ChargeID: chargeID, EntryID: entryID})
	if err == nil {
		err = s.replay.Save(ctx, &domain.TransitionRecord{
			Key:         replayKey(actorID, key),
			Operation:   "payment.submit",
			ActorID:     actorID,
			Result:      result,
			Outbound:    outbound,
			CommittedAt: s.now(),
		})
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		s.log.WarnContext(ctx, "replay record not saved",
			slog.String("charge_id", chargeID.String()),
			slog.String("error", err.Error()),
		)
	}
}
