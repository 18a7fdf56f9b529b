package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"

	"github.com/filatei/btorestate/internal/domain"
)

const (
	defaultMaxAttempts = 5
	defaultRetryDelay  = 10 * time.Millisecond
)

// TxManager manages database transactions using the context pattern.
// Nested RunInTx calls are not supported: calling RunInTx inside a RunInTx
// callback opens a second, independent transaction.
type TxManager struct {
	pool        *pgxpool.Pool
	maxAttempts int
	retryDelay  time.Duration
	onRetry     func(attempt int, err error)
}

// TxOption configures a TxManager.
type TxOption func(*TxManager)

// WithMaxAttempts bounds how many times fn runs before ErrContention is returned.
func WithMaxAttempts(n int) TxOption {
	return func(m *TxManager) {
		if n > 0 {
			m.maxAttempts = n
		}
	}
}

// WithRetryDelay sets the base pause between attempts. Each pause is jittered
// by up to the same amount.
func WithRetryDelay(d time.Duration) TxOption {
	return func(m *TxManager) {
		if d >= 0 {
			m.retryDelay = d
		}
	}
}

// WithRetryObserver registers a callback invoked before each re-run.
func WithRetryObserver(fn func(attempt int, err error)) TxOption {
	return func(m *TxManager) { m.onRetry = fn }
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool, opts ...TxOption) *TxManager {
	m := &TxManager{
		pool:        pool,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RunInTx executes fn within a database transaction.
// Isolation level: Read Committed (PostgreSQL default); lost updates are
// prevented by the version check every repository write performs.
// On success: commits.
// On a version conflict, serialization failure or deadlock: rolls back and
// re-runs fn against fresh reads, up to the configured attempts, then
// returns an error matching domain.ErrContention.
// On any other error from fn: rolls back and returns the error.
// On panic from fn: rolls back and re-panics.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	attempt := 0
	var lastErr error

	err := retry.Do(ctx, m.backoff(), func(ctx context.Context) error {
		attempt++
		if attempt > 1 && m.onRetry != nil {
			m.onRetry(attempt, lastErr)
		}

		err := m.runOnce(ctx, fn)
		if err != nil && IsRetryable(err) {
			lastErr = err
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil && IsRetryable(err) {
		return fmt.Errorf("transaction gave up after %d attempts: %w: %w", attempt, domain.ErrContention, err)
	}
	return err
}

func (m *TxManager) backoff() retry.Backoff {
	retries := uint64(m.maxAttempts - 1)
	if m.retryDelay <= 0 {
		return retry.WithMaxRetries(retries, retry.BackoffFunc(func() (time.Duration, bool) { return 0, false }))
	}
	return retry.WithMaxRetries(retries, retry.WithJitter(m.retryDelay, retry.NewConstant(m.retryDelay)))
}

func (m *TxManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	txCtx := withTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
