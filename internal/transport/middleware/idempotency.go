package middleware

import (
	"net/http"
	"strings"

	"github.com/filatei/btorestate/pkg/ctxutil"
)

// IdempotencyKeyHeader carries the client's retry key on mutating requests.
const IdempotencyKeyHeader = "Idempotency-Key"

// IdempotencyKey moves a present Idempotency-Key header into the context.
// Keys follow the request id rules; anything else is rejected with 400 so a
// mangled key never silently turns a retry into a second payment.
func IdempotencyKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}
		if !validRequestID(key) {
			writeError(w, http.StatusBadRequest, "Idempotency-Key must be 1-128 printable characters without spaces")
			return
		}
		next.ServeHTTP(w, r.WithContext(ctxutil.WithIdempotencyKey(r.Context(), key)))
	})
}
