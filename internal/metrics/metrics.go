// Package metrics defines the Prometheus collectors of the ledger engine.
// All methods are safe on a nil *Metrics so tests can omit them.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "btorestate"

// Metrics groups every collector the services and transport report to.
type Metrics struct {
	Payments              *prometheus.CounterVec
	TxRetries             prometheus.Counter
	ReceiptUploads        *prometheus.CounterVec
	ReceiptUploadAttempts prometheus.Histogram
	Notifications         *prometheus.CounterVec
	MembershipTransitions *prometheus.CounterVec
	Replays               *prometheus.CounterVec
	BreakerOpen           prometheus.Gauge
	HTTPDuration          *prometheus.HistogramVec
}

// New registers all collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Payments: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Payments accepted, by method and resulting charge status",
		}, []string{"method", "status"}),
		TxRetries: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tx_retries_total",
			Help:      "Transactions re-run after a concurrent write won",
		}),
		ReceiptUploads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipt_uploads_total",
			Help:      "Receipt uploads by outcome",
		}, []string{"outcome"}),
		ReceiptUploadAttempts: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "receipt_upload_attempts",
			Help:      "Attempts needed per receipt upload",
			Buckets:   []float64{1, 2, 3, 5, 10},
		}),
		Notifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification writes by outcome (created, duplicate, failed)",
		}, []string{"outcome"}),
		MembershipTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "membership_transitions_total",
			Help:      "Committed membership transitions by operation",
		}, []string{"operation"}),
		Replays: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "idempotent_replays_total",
			Help:      "Requests answered from the replay cache, by operation",
		}, []string{"operation"}),
		BreakerOpen: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "object_store_breaker_open",
			Help:      "1 while the object store circuit breaker is open",
		}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route", "status"}),
	}
}

// PaymentRecorded counts an accepted payment.
func (m *Metrics) PaymentRecorded(method, status string) {
	if m == nil {
		return
	}
	m.Payments.WithLabelValues(method, status).Inc()
}

// TxRetried counts one transaction re-run.
func (m *Metrics) TxRetried() {
	if m == nil {
		return
	}
	m.TxRetries.Inc()
}

// ReceiptUploaded records an upload outcome and how many attempts it took.
func (m *Metrics) ReceiptUploaded(ok bool, attempts int) {
	if m == nil {
		return
	}
	outcome := "failed"
	if ok {
		outcome = "ok"
	}
	m.ReceiptUploads.WithLabelValues(outcome).Inc()
	m.ReceiptUploadAttempts.Observe(float64(attempts))
}

// NotificationsDispatched records one dispatch fan-out.
func (m *Metrics) NotificationsDispatched(created, duplicates, failed int) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues("created").Add(float64(created))
	m.Notifications.WithLabelValues("duplicate").Add(float64(duplicates))
	m.Notifications.WithLabelValues("failed").Add(float64(failed))
}

// MembershipTransition counts a committed membership operation.
func (m *Metrics) MembershipTransition(operation string) {
	if m == nil {
		return
	}
	m.MembershipTransitions.WithLabelValues(operation).Inc()
}

// Replayed counts a request answered from the replay cache.
func (m *Metrics) Replayed(operation string) {
	if m == nil {
		return
	}
	m.Replays.WithLabelValues(operation).Inc()
}

// BreakerChanged tracks whether the object store breaker is open.
func (m *Metrics) BreakerChanged(open bool) {
	if m == nil {
		return
	}
	if open {
		m.BreakerOpen.Set(1)
	} else {
		m.BreakerOpen.Set(0)
	}
}

// ObserveHTTP records the latency of one request.
func (m *Metrics) ObserveHTTP(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}
