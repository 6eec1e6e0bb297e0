package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const NAMESPACE = "raksha"

// Metrics holds the server's collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	alertsCreatedTotal  *prometheus.CounterVec
	smsSentTotal        *prometheus.CounterVec
	rateLimitedTotal    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: NAMESPACE,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: NAMESPACE,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		alertsCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: NAMESPACE,
				Name:      "alerts_created_total",
				Help:      "Total number of alerts created by type",
			},
			[]string{"type"},
		),

		smsSentTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: NAMESPACE,
				Name:      "sms_sent_total",
				Help:      "SMS sends to emergency contacts by result",
			},
			[]string{"result"},
		),

		rateLimitedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: NAMESPACE,
				Name:      "rate_limited_total",
				Help:      "Requests denied by the rate limiter",
			},
			[]string{"path"},
		),
	}
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) AlertCreated(alertType string) {
	if m == nil {
		return
	}
	m.alertsCreatedTotal.WithLabelValues(alertType).Inc()
}

func (m *Metrics) SMSResult(delivered bool) {
	if m == nil {
		return
	}

	result := "delivered"
	if !delivered {
		result = "failed"
	}
	m.smsSentTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RateLimited(path string) {
	if m == nil {
		return
	}
	m.rateLimitedTotal.WithLabelValues(path).Inc()
}

// Middleware records request counts & latency labelled by the matched route template
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		path := routeTemplate(r)
		m.httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(recorder.status)).Inc()
		m.httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// routeTemplate keeps label cardinality bounded, ids in paths are never used as labels
func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unmatched"
	}

	template, err := route.GetPathTemplate()
	if err != nil {
		return "unmatched"
	}

	return template
}
