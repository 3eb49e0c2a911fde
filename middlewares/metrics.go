package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/rex/internal"
)

type MetricsConfig struct {
	Registry    prometheus.Registerer
	Gatherer    prometheus.Gatherer
	ConstLabels prometheus.Labels
	Namespace   string
	Buckets     []float64
}

type MetricsOption func(*MetricsConfig)

func WithMetricsNamespace(ns string) MetricsOption {
	return func(cfg *MetricsConfig) {
		cfg.Namespace = ns
	}
}

func WithMetricsBuckets(buckets []float64) MetricsOption {
	return func(cfg *MetricsConfig) {
		if len(buckets) > 0 {
			cfg.Buckets = buckets
		}
	}
}

func WithMetricsConstLabels(labels prometheus.Labels) MetricsOption {
	return func(cfg *MetricsConfig) {
		cfg.ConstLabels = labels
	}
}

// WithMetricsRegistry registers the collectors on reg and serves reg.
func WithMetricsRegistry(reg *prometheus.Registry) MetricsOption {
	return func(cfg *MetricsConfig) {
		if reg != nil {
			cfg.Registry = reg
			cfg.Gatherer = reg
		}
	}
}

// Metrics holds the HTTP request collectors.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
	gatherer prometheus.Gatherer
}

// NewMetrics registers the request collectors. It panics if they are
// already registered on the same registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := &MetricsConfig{
		Namespace: "rex",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
		Gatherer:  prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "HTTP requests by method, route and status.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"method", "route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request latency by method and route.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"method", "route"}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "http",
			Name:        "requests_in_flight",
			Help:        "HTTP requests being served.",
			ConstLabels: cfg.ConstLabels,
		}),
		gatherer: cfg.Gatherer,
	}
}

// Middleware records every request. The route label is the chi pattern
// ("/users/{id}"), or "unmatched" for 404s, to keep cardinality bounded.
func (m *Metrics) Middleware() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			m.inFlight.Inc()
			defer m.inFlight.Dec()

			start := time.Now()
			err := next(c)

			status := c.ResponseWriter().Status()
			if err != nil && !c.ResponseWriter().Written() {
				status = internal.ErrorStatus(err)
			}
			route := "unmatched"
			if rctx := chi.RouteContext(c.Request().Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			method := c.Request().Method

			m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the collected metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
