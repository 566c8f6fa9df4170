package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	ResolutionsTotal *prometheus.CounterVec

	GatewayCallsTotal   *prometheus.CounterVec
	GatewayCallDuration *prometheus.HistogramVec
}

// NewCollector registers every metric on its own registry, so several
// collectors can live in one process.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route, and status code.",
		}, []string{"method", "route", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "route", "status"}),

		ResolutionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "strategy_outcomes_total",
			Help:      "Identifier resolution outcomes by resource kind, strategy, and outcome.",
		}, []string{"kind", "strategy", "outcome"}),

		GatewayCallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fhir",
			Name:      "calls_total",
			Help:      "Total FHIR backend calls by resource type, operation, and status code.",
		}, []string{"resource_type", "operation", "status"}),

		GatewayCallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "fhir",
			Name:      "call_duration_seconds",
			Help:      "FHIR backend call latency distribution.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}, []string{"resource_type", "operation"}),
	}
}

func (c *Collector) RecordResolution(kind, strategy, outcome string) {
	c.ResolutionsTotal.WithLabelValues(kind, strategy, outcome).Inc()
}

func (c *Collector) RecordGatewayCall(resourceType, operation string, statusCode int, duration time.Duration) {
	c.GatewayCallsTotal.WithLabelValues(resourceType, operation, strconv.Itoa(statusCode)).Inc()
	c.GatewayCallDuration.WithLabelValues(resourceType, operation).Observe(duration.Seconds())
}

func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	c.RequestsTotal.WithLabelValues(method, route, status).Inc()
	c.RequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
