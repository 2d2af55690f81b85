package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mindcheck/internal/model"
)

// Metrics groups the Prometheus collectors of the API. A nil *Metrics is a no-op.
type Metrics struct {
	gatherer prometheus.Gatherer

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	scored          *prometheus.CounterVec
	logins          *prometheus.CounterVec
	reviews         *prometheus.CounterVec
}

// New registers the collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg)
}

// NewWithRegistry allows tests to inspect a dedicated registry
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindcheck",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "method", "code"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mindcheck",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		scored: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindcheck",
			Subsystem: "survey",
			Name:      "scored_total",
			Help:      "Scored surveys by result and whether the entry was stored",
		}, []string{"result", "stored"}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindcheck",
			Subsystem: "admin",
			Name:      "logins_total",
			Help:      "Admin login attempts by outcome",
		}, []string{"outcome"}),
		reviews: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindcheck",
			Subsystem: "admin",
			Name:      "reviews_total",
			Help:      "Admin review decisions by resulting status",
		}, []string{"status"}),
	}
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// SurveyScored records a scored survey
func (m *Metrics) SurveyScored(result model.Result, stored bool) {
	if m == nil {
		return
	}
	m.scored.WithLabelValues(string(result), strconv.FormatBool(stored)).Inc()
}

// LoginAttempt records a login outcome such as "ok" or "invalid_credentials"
func (m *Metrics) LoginAttempt(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

// Reviewed records an admin review decision
func (m *Metrics) Reviewed(status model.AdminStatus) {
	if m == nil {
		return
	}
	m.reviews.WithLabelValues(string(status)).Inc()
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
