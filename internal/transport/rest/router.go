package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/filatei/btorestate/internal/config"
	"github.com/filatei/btorestate/internal/metrics"
	"github.com/filatei/btorestate/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// RouterDeps is everything the HTTP surface needs.
type RouterDeps struct {
	Log           *slog.Logger
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer
	Tokens        tokenValidator
	CORS          config.CORSConfig
	RateLimiter   *middleware.RateLimiter
	RateLimit     int
	Health        *HealthHandler
	Estates       *EstateHandler
	Charges       *ChargeHandler
	Notifications *NotificationHandler
}

// NewRouter builds the chi router. Middleware order: request id,
// idempotency key, access log, panic recovery, CORS, rate limit, bearer auth. Everything under
// /api/v1 requires an authenticated user.
func NewRouter(d RouterDeps) http.Handler {
	var limit middleware.Middleware
	if d.RateLimiter != nil {
		limit = d.RateLimiter.Limit(d.RateLimit)
	}

	r := chi.NewRouter()
	r.Use(middleware.Chain(
		middleware.RequestID,
		middleware.IdempotencyKey,
		middleware.Logger(d.Log, d.Metrics),
		middleware.Recovery(d.Log),
		middleware.CORS(d.CORS),
		limit,
		middleware.Auth(d.Tokens),
	))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health/live", d.Health.Live)
	r.Get("/health/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireUser)

		r.Route("/estates", func(r chi.Router) {
			r.Post("/", d.Estates.Create)
			r.Get("/", d.Estates.ListMine)
			r.Get("/discover", d.Estates.Discover)

			r.Route("/{estateID}", func(r chi.Router) {
				r.Get("/", d.Estates.Get)
				r.Get("/relationship", d.Estates.Relationship)
				r.Get("/audit", d.Estates.Audit)

				r.Post("/join-requests", d.Estates.RequestJoin)
				r.Delete("/join-requests", d.Estates.CancelRequest)
				r.Post("/join-requests/{userID}/approve", d.Estates.Approve)
				r.Post("/join-requests/{userID}/decline", d.Estates.Decline)

				r.Post("/invites", d.Estates.Invite)
				r.Post("/invites/accept", d.Estates.AcceptInvite)
				r.Post("/invites/decline", d.Estates.DeclineInvite)
				r.Delete("/invites/{userID}", d.Estates.RevokeInvite)

				r.Put("/admins/{userID}", d.Estates.GrantAdmin)
				r.Delete("/admins/{userID}", d.Estates.RevokeAdmin)
				r.Post("/leave", d.Estates.Leave)
				r.Post("/announcements", d.Estates.Announce)

				r.Post("/charges", d.Charges.Create)
				r.Get("/charges", d.Charges.List)
			})
		})

		r.Route("/charges", func(r chi.Router) {
			r.Get("/outstanding", d.Charges.Outstanding)
			r.Get("/{chargeID}", d.Charges.Get)
			r.Post("/{chargeID}/payments", d.Charges.SubmitPayment)
			r.Post("/{chargeID}/confirm", d.Charges.ConfirmReview)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", d.Notifications.List)
			r.Get("/unread-count", d.Notifications.UnreadCount)
			r.Post("/read-all", d.Notifications.MarkAllRead)
			r.Post("/{id}/read", d.Notifications.MarkRead)
		})
	})

	return r
}
