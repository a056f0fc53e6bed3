package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aadhaar"

// Metrics owns a dedicated Prometheus registry and the service collectors.
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	recordsLoaded  prometheus.Gauge
	reloads        *prometheus.CounterVec
	lastReloadUnix prometheus.Gauge
}

// New creates the collectors and registers them with a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		recordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_loaded",
			Help:      "Rows in the currently served records snapshot.",
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_reloads_total",
			Help:      "Snapshot reload attempts by result.",
		}, []string{"result"}),
		lastReloadUnix: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_last_reload_timestamp_seconds",
			Help:      "Unix time of the last successful snapshot reload.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.recordsLoaded,
		m.reloads,
		m.lastReloadUnix,
	)
	return m
}

// Middleware records request counts and latency per matched route.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		route := c.Route().Path
		m.requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// RecordsLoaded sets the served snapshot size.
func (m *Metrics) RecordsLoaded(n int) {
	m.recordsLoaded.Set(float64(n))
}

// ReloadSucceeded counts a successful reload.
func (m *Metrics) ReloadSucceeded(at time.Time) {
	m.reloads.WithLabelValues("success").Inc()
	m.lastReloadUnix.Set(float64(at.Unix()))
}

// ReloadFailed counts a failed reload.
func (m *Metrics) ReloadFailed() {
	m.reloads.WithLabelValues("failure").Inc()
}
