package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds the Prometheus instruments exposed at /metrics. It
// tracks the diagnostics HTTP surface itself plus the handful of store
// and worker gauges that matter for operating the tree server (live
// workers, command throughput) — it never touches per-key data.
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	commandsTotal       *prometheus.CounterVec
	commandDuration     *prometheus.HistogramVec
	workersActive       prometheus.Gauge
	connectionsAccepted prometheus.Counter
}

// NewMetrics creates and registers the diagnostics metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kvtree_http_requests_total",
				Help: "Total number of diagnostics HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kvtree_http_request_duration_seconds",
				Help:    "Diagnostics HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		httpRequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kvtree_http_requests_in_flight",
				Help: "Number of diagnostics HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),
		commandsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kvtree_commands_total",
				Help: "Total number of wire-protocol commands interpreted",
			},
			[]string{"verb", "status"},
		),
		commandDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kvtree_command_duration_seconds",
				Help:    "Wire-protocol command duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"verb"},
		),
		workersActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "kvtree_workers_active",
				Help: "Number of currently connected client workers",
			},
		),
		connectionsAccepted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "kvtree_connections_accepted_total",
				Help: "Total number of TCP connections accepted",
			},
		),
	}
}

// RecordCommand records one interpreted wire-protocol command.
func (m *Metrics) RecordCommand(verb string, success bool, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.commandsTotal.WithLabelValues(verb, status).Inc()
	m.commandDuration.WithLabelValues(verb).Observe(duration.Seconds())
}

// SetWorkersActive reports the current live worker count.
func (m *Metrics) SetWorkersActive(n int) {
	m.workersActive.Set(float64(n))
}

// RecordConnectionAccepted records one accepted TCP connection.
func (m *Metrics) RecordConnectionAccepted() {
	m.connectionsAccepted.Inc()
}

// InstrumentHandler wraps an HTTP handler with request-count, duration,
// and in-flight gauges.
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		duration := time.Since(start)
		m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
