package payment

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/filatei/btorestate/internal/domain"
)

const maxReceiptNameLen = 100

// receiptKey builds receipts/{estateId}/{userId}/{unixMillis}_{name}.
func receiptKey(estateID, userID uuid.UUID, filename string, at time.Time) string {
	return path.Join("receipts", estateID.String(), userID.String(),
		fmt.Sprintf("%d_%s", at.UnixMilli(), sanitizeFilename(filename)))
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := strings.Trim(b.String(), "._")
	if len(out) > maxReceiptNameLen {
		out = out[len(out)-maxReceiptNameLen:]
	}
	if out == "" {
		return "receipt"
	}
	return out
}

// linearBackoff waits base, 2*base, 3*base, ... between attempts.
func linearBackoff(base time.Duration) retry.Backoff {
	var n time.Duration
	return retry.BackoffFunc(func() (time.Duration, bool) {
		n++
		return base * n, false
	})
}

// uploadReceipt stores the receipt, retrying with linearly growing pauses.
// It runs before any transaction is opened. Exhaustion returns an
// *domain.ExternalServiceError that matches domain.ErrUploadFailed.
func (s *Service) uploadReceipt(ctx context.Context, estateID, userID uuid.UUID, r *Receipt) (string, error) {
	attempts := s.cfg.UploadAttempts
	if attempts < 1 {
		attempts = 1
	}
	key := receiptKey(estateID, userID, r.Filename, s.now())

	var (
		url     string
		tries   int
		lastErr error
	)
	backoff := retry.WithMaxRetries(uint64(attempts-1), linearBackoff(s.cfg.UploadBaseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		tries++
		u, err := s.receipts.Put(ctx, key, r.ContentType, r.Data)
		if err != nil {
			lastErr = err
			s.log.WarnContext(ctx, "receipt upload attempt failed",
				slog.String("key", key),
				slog.Int("attempt", tries),
				slog.String("error", err.Error()),
			)
			return retry.RetryableError(err)
		}
		url = u
		return nil
	})

	s.metrics.ReceiptUploaded(err == nil, tries)
	if err != nil {
		if lastErr == nil {
			lastErr = err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("upload receipt: %w", ctxErr)
		}
		return "", &domain.ExternalServiceError{Service: "object store", Attempts: tries, Err: lastErr}
	}
	return url, nil
}
