package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/worldtrends/explorer/pkg/trends"
)

const namespace = "trends_explorer"

// Metrics owns a private registry so that tests can create as many
// instances as they need.
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	providerCalls  *prometheus.CounterVec
	activeProvider *prometheus.GaugeVec
}

var _ trends.Observer = (*Metrics)(nil)

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by route, method and status code",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "Total data provider calls by provider, operation and outcome",
		}, []string{"provider", "operation", "outcome"}),
		activeProvider: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_provider",
			Help:      "1 for the provider currently serving requests, 0 for the others",
		}, []string{"provider"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.providerCalls,
		m.activeProvider,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveProviderCall(provider, operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = trends.ClassifyError(err)
	}
	m.providerCalls.WithLabelValues(provider, operation, outcome).Inc()
}

func (m *Metrics) ObserveActiveProvider(active string, providers []string) {
	m.activeProvider.Reset()
	for _, p := range providers {
		value := 0.0
		if p == active {
			value = 1
		}
		m.activeProvider.WithLabelValues(p).Set(value)
	}
}
