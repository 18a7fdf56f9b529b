package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/filatei/btorestate/internal/domain"
)

// TxManager runs callbacks against staged state and commits optimistically,
// re-running the callback when another transaction committed first.
type TxManager struct {
	store       *Store
	maxAttempts uint64
	retryDelay  time.Duration
	onRetry     func(attempt int, err error)
}

// NewTxManager creates a TxManager over store. maxAttempts below 1 means 5.
func NewTxManager(store *Store, maxAttempts int, retryDelay time.Duration) *TxManager {
	if maxAttempts < 1 {
		maxAttempts = 5
	}
	return &TxManager{store: store, maxAttempts: uint64(maxAttempts), retryDelay: retryDelay}
}

// OnRetry registers a callback invoked before each re-run.
func (m *TxManager) OnRetry(fn func(attempt int, err error)) *TxManager {
	m.onRetry = fn
	return m
}

// RunInTx executes fn in a transaction. Writes become visible to other
// callers only when fn returns nil and the commit succeeds. Exhausted
// retries return an error matching domain.ErrContention.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := 0
	var lastErr error
	backoff := retry.WithMaxRetries(m.maxAttempts-1, retry.BackoffFunc(func() (time.Duration, bool) {
		return m.retryDelay, false
	}))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		if attempts > 1 && m.onRetry != nil {
			m.onRetry(attempts, lastErr)
		}
		tx := newTxState()
		err := fn(context.WithValue(ctx, txCtxKey{}, tx))
		if err == nil {
			err = m.store.commit(tx)
		}
		lastErr = err
		return retryable(err)
	})
	if errors.Is(err, domain.ErrContention) {
		return fmt.Errorf("transaction gave up after %d attempts: %w", attempts, err)
	}
	return err
}

func retryable(err error) error {
	if err != nil && errors.Is(err, domain.ErrContention) {
		return retry.RetryableError(err)
	}
	return err
}
