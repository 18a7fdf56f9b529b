package membership

import "github.com/filatei/btorestate/internal/domain"

// TransitionResult is the outcome of a membership transition. Estate is
// redacted for the caller. Replayed is set when the transition had already
// been committed under the same idempotency key.
type TransitionResult struct {
	Estate        *domain.Estate
	Notifications domain.DispatchReport
	Replayed      bool
}
