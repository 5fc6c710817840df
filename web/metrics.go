package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics carries per-handler-group Prometheus instruments
type Metrics struct {
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewMetrics registers request metrics for a handler group
func NewMetrics(subsystem string) *Metrics {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: subsystem + "_requests_total",
			Help: "Total number of requests handled by the " + subsystem + " endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    subsystem + "_request_duration_seconds",
			Help:    "Duration of " + subsystem + " requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &Metrics{
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware wraps a handler with request counting and latency observation
func (m *Metrics) Middleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		m.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		m.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}
