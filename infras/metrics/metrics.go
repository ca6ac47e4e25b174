package metrics

import (
	"net/http"
	"strconv"
	"vista/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	LabelMethod  = "method"
	LabelRoute   = "route"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelOutcome = "outcome"

	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// Metrics owns a dedicated registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry
	enabled  bool

	RequestCounter           *prometheus.CounterVec
	RequestDurationHistogram *prometheus.HistogramVec
	ActivityEventCounter     *prometheus.CounterVec
}

func New(cfg *config.Config) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)
	namespace := cfg.Metrics.Namespace

	return &Metrics{
		registry: registry,
		enabled:  cfg.Metrics.Enable,
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{LabelMethod, LabelRoute, LabelStatus},
		),
		RequestDurationHistogram: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{LabelMethod, LabelRoute, LabelStatus},
		),
		ActivityEventCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "activity_events_total",
				Help:      "Activity events by type and publish outcome",
			},
			[]string{LabelType, LabelOutcome},
		),
	}
}

func (m *Metrics) Enabled() bool {
	return m.enabled
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	labels := prometheus.Labels{
		LabelMethod: method,
		LabelRoute:  route,
		LabelStatus: strconv.Itoa(status),
	}

	m.RequestCounter.With(labels).Inc()
	m.RequestDurationHistogram.With(labels).Observe(seconds)
}

func (m *Metrics) ObserveEvent(eventType, outcome string) {
	m.ActivityEventCounter.WithLabelValues(eventType, outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
