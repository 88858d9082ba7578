// Package metrics provides Prometheus instrumentation for the storefront.
//
// Wire it up once at boot:
//
//	r.Use(metrics.Middleware())
//	r.HandleFunc("/metrics", metrics.Handler())
//
// Then scrape /metrics from Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// OrdersCreated counts successfully persisted orders.
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Number of orders accepted and persisted.",
	})

	// NotificationsSent counts admin notification emails delivered.
	NotificationsSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "notify",
		Name:      "sent_total",
		Help:      "Number of order notification emails sent.",
	})

	// NotificationFailures counts dropped or failed notifications.
	// Failures here never affect order acceptance; this counter is how the
	// operator finds out about them.
	NotificationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "notify",
		Name:      "failures_total",
		Help:      "Number of order notifications that failed or were dropped.",
	})

	// AttachmentFallbacks counts payment screenshots attached as raw images
	// because PDF conversion failed.
	AttachmentFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "notify",
		Name:      "attachment_fallbacks_total",
		Help:      "Number of payment proofs attached as raw images after PDF conversion failed.",
	})
)

var registry = prometheus.NewRegistry()

func init() {
	registry.MustRegister(
		RequestDuration,
		OrdersCreated,
		NotificationsSent,
		NotificationFailures,
		AttachmentFallbacks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// statusRecorder captures the response status code for labelling.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request duration for every request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			RequestDuration.WithLabelValues(
				r.Method,
				routePattern(r),
				strconv.Itoa(rec.status),
			).Observe(time.Since(start).Seconds())
		})
	}
}

// routePattern labels by the matched route pattern, "/api/orders/{orderId}"
// rather than "/api/orders/ORD-...", keeping label cardinality bounded.
// Unmatched requests share one label value.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// Handler returns the /metrics scrape endpoint handler.
func Handler() http.HandlerFunc {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP
}
