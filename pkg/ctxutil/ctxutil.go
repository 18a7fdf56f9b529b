// Package ctxutil carries per-request identity through context: the acting
// user, the request id and the client's idempotency key.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type (
	userIDKey         struct{}
	requestIDKey      struct{}
	idempotencyKeyKey struct{}
)

// WithUserID stores the acting user.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserIDFromCtx returns the acting user. ok is false when the value is
// missing or uuid.Nil, which services treat as unauthenticated.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromCtx returns "" when absent.
func RequestIDFromCtx(ctx context.Context) string {
	return stringValue(ctx, requestIDKey{})
}

// WithIdempotencyKey stores the client's retry key for the current request.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKeyKey{}, key)
}

// IdempotencyKeyFromCtx returns "" when the request carried no key.
func IdempotencyKeyFromCtx(ctx context.Context) string {
	return stringValue(ctx, idempotencyKeyKey{})
}

func stringValue(ctx context.Context, key any) string {
	s, _ := ctx.Value(key).(string)
	return s
}
