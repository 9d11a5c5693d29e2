// Package metrics exposes Prometheus collectors for the view server and the
// remote API client.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rama_crm",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "View server requests by route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rama_crm",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of view server requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method", "route"},
	)

	apiCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rama_crm",
			Subsystem: "remote_api",
			Name:      "calls_total",
			Help:      "Remote API calls by outcome: ok, validation, auth, generic or transport.",
		},
		[]string{"method", "outcome"},
	)

	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rama_crm",
			Subsystem: "remote_api",
			Name:      "call_duration_seconds",
			Help:      "Duration of remote API calls.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"method"},
	)

	breakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rama_crm",
			Subsystem: "remote_api",
			Name:      "breaker_state",
			Help:      "Circuit breaker state: 0 closed, 1 half-open, 2 open.",
		},
		[]string{"name"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		apiCalls,
		apiDuration,
		breakerState,
		prometheus.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Instrument is a mux middleware; it labels requests with the matched route
// template so ids do not explode the label space.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func RecordAPICall(method, outcome string, duration time.Duration) {
	apiCalls.WithLabelValues(method, outcome).Inc()
	apiDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// SetBreakerState records a breaker transition. state follows gobreaker's
// numbering.
func SetBreakerState(name string, state int) {
	breakerState.WithLabelValues(name).Set(float64(state))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
