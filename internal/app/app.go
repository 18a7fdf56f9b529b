package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/filatei/btorestate/internal/adapter/objectstore"
	"github.com/filatei/btorestate/internal/auth"
	"github.com/filatei/btorestate/internal/config"
	"github.com/filatei/btorestate/internal/metrics"
	"github.com/filatei/btorestate/internal/service/membership"
	"github.com/filatei/btorestate/internal/service/notification"
	"github.com/filatei/btorestate/internal/service/payment"
	"github.com/filatei/btorestate/internal/transport/middleware"
	"github.com/filatei/btorestate/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, opens storage,
// wires the services behind the HTTP router and serves until ctx is
// cancelled, then drains in-flight requests within the shutdown timeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	storage, err := OpenStorage(ctx, cfg, logger, m)
	if err != nil {
		return err
	}
	defer storage.Close()

	handler, cleanup := NewHandler(cfg, logger, reg, m, storage)
	defer cleanup()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	logger.Info("starting server",
		slog.String("version", BuildVersion()),
		slog.String("addr", srv.Addr),
		slog.String("storage", storage.Backend),
		slog.Bool("redis", storage.RedisPing != nil),
		slog.String("log_level", cfg.Log.Level),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// NewHandler builds the services over storage and returns the HTTP handler.
// cleanup stops background work started for the handler.
func NewHandler(cfg *config.Config, logger *slog.Logger, gatherer prometheus.Gatherer, m *metrics.Metrics, storage *Storage) (http.Handler, func()) {
	receipts := objectstore.New(cfg.ObjectStore,
		cfg.Receipts.BreakerMaxFailures, cfg.Receipts.BreakerOpenTimeout, logger,
		objectstore.WithStateObserver(func(_, to gobreaker.State) {
			m.BreakerChanged(to == gobreaker.StateOpen)
		}),
	)

	inbox := notification.NewService(logger, storage.Notifications, cfg.Notifications, m)
	members := membership.NewService(logger, storage.Estates, storage.Audit, storage.Tx, storage.Replay, inbox, m)
	payments := payment.NewService(logger, storage.Charges, storage.Estates, storage.Tx, receipts, storage.Replay, inbox, cfg.Receipts, m)

	components := []rest.Component{
		{Name: "database", Check: rest.PingFunc(storage.Ping), Critical: true},
		{Name: "object_store", Check: receipts},
	}
	if storage.RedisPing != nil {
		components = append(components, rest.Component{Name: "redis", Check: rest.PingFunc(storage.RedisPing)})
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)

	handler := rest.NewRouter(rest.RouterDeps{
		Log:           logger,
		Metrics:       m,
		Gatherer:      gatherer,
		Tokens:        auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
		CORS:          cfg.CORS,
		RateLimiter:   limiter,
		RateLimit:     cfg.RateLimit.RequestsPerMinute,
		Health:        rest.NewHealthHandler(BuildVersion(), components...),
		Estates:       rest.NewEstateHandler(members, logger),
		Charges:       rest.NewChargeHandler(payments, cfg.Receipts.MaxBytes, logger),
		Notifications: rest.NewNotificationHandler(inbox, logger),
	})
	return handler, limiter.Stop
}
