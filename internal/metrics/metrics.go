// Package metrics exposes Prometheus collectors for the HTTP API, persistence,
// rendering and content generation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "careerforge"

// Result label values
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics owns a registry and every collector registered on it
type Metrics struct {
	registry *prometheus.Registry

	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	requestsInFlight prometheus.Gauge

	saves          *prometheus.CounterVec
	loads          *prometheus.CounterVec
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	generations    *prometheus.CounterVec
}

// New creates a Metrics instance with its own registry, including the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		requestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "in_flight_requests",
				Help:      "Number of HTTP requests currently being served.",
			},
		),
		saves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "autosave",
				Name:      "writes_total",
				Help:      "Persisted document writes by trigger and result.",
			},
			[]string{"trigger", "result"},
		),
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "autosave",
				Name:      "loads_total",
				Help:      "Document restore attempts by outcome.",
			},
			[]string{"result"},
		),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "render",
				Name:      "total",
				Help:      "Rendered artifacts by format and result.",
			},
			[]string{"format", "result"},
		),
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "render",
				Name:      "duration_seconds",
				Help:      "Time spent rendering an artifact.",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"format"},
		),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "generate",
				Name:      "requests_total",
				Help:      "Content generation requests by kind and result.",
			},
			[]string{"kind", "result"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration,
		m.requestTotal,
		m.requestsInFlight,
		m.saves,
		m.loads,
		m.renders,
		m.renderDuration,
		m.generations,
	)
	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records latency and status for every request. The route pattern
// is used as the path label so that ids do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.requestsInFlight.Inc()
		defer m.requestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		labels := prometheus.Labels{
			"method": r.Method,
			"path":   path,
			"status": strconv.Itoa(rec.status),
		}
		m.requestDuration.With(labels).Observe(time.Since(start).Seconds())
		m.requestTotal.With(labels).Inc()
	})
}

// ObserveSave records a persisted write. trigger is "debounce", "manual" or "close".
func (m *Metrics) ObserveSave(trigger string, err error) {
	m.saves.WithLabelValues(trigger, result(err)).Inc()
}

// ObserveLoad records the outcome of a restore attempt
func (m *Metrics) ObserveLoad(outcome string) {
	m.loads.WithLabelValues(outcome).Inc()
}

// ObserveRender records a render of the given format
func (m *Metrics) ObserveRender(format string, elapsed time.Duration, err error) {
	m.renders.WithLabelValues(format, result(err)).Inc()
	m.renderDuration.WithLabelValues(format).Observe(elapsed.Seconds())
}

// ObserveGeneration records a content generation request
func (m *Metrics) ObserveGeneration(kind string, err error) {
	m.generations.WithLabelValues(kind, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
