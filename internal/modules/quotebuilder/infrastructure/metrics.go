package infrastructure

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mealQuote/internal/modules/quotebuilder/application/port"
)

const metricsNamespace = "mealquote"

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	cacheLookups  *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	upstreamCalls *prometheus.CounterVec
	upstreamTime  *prometheus.HistogramVec
	wsClients     prometheus.Gauge
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "cache",
				Name:      "lookups_total",
				Help:      "Query cache lookups by key family and outcome",
			},
			[]string{"key", "outcome"},
		),
		invalidations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "cache",
				Name:      "invalidations_total",
				Help:      "Query cache invalidations by key family",
			},
			[]string{"key"},
		),
		upstreamCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "upstream",
				Name:      "requests_total",
				Help:      "Remote API calls by service, method and status",
			},
			[]string{"service", "method", "status"},
		),
		upstreamTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "upstream",
				Name:      "request_duration_seconds",
				Help:      "Remote API call latency",
				Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"service", "method"},
		),
		wsClients: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "websocket",
				Name:      "clients",
				Help:      "Connected websocket clients",
			},
		),
	}
}

func (m *Metrics) ObserveLookup(key, outcome string) {
	m.cacheLookups.WithLabelValues(key, outcome).Inc()
}

func (m *Metrics) ObserveInvalidation(key string) {
	m.invalidations.WithLabelValues(key).Inc()
}

func (m *Metrics) ObserveRequest(service, method, status string, elapsed time.Duration) {
	m.upstreamCalls.WithLabelValues(service, method, status).Inc()
	m.upstreamTime.WithLabelValues(service, method).Observe(elapsed.Seconds())
}

// ClientConnected and ClientDisconnected track the hub's live connections.
func (m *Metrics) ClientConnected()    { m.wsClients.Inc() }
func (m *Metrics) ClientDisconnected() { m.wsClients.Dec() }

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

var (
	_ port.CacheMetrics = (*Metrics)(nil)
	_ RequestObserver   = (*Metrics)(nil)
)
