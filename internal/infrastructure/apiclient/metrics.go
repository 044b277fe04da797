package apiclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metric names.
const (
	MetricRequestsTotal          = "shesafe_client_requests_total"
	MetricRequestDurationSeconds = "shesafe_client_request_duration_seconds"
)

// Metrics records backend requests by operation.
// A nil *Metrics records nothing.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates the client metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricRequestsTotal,
				Help: "Total number of requests sent to the backend",
			},
			[]string{"operation", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricRequestDurationSeconds,
				Help:    "Backend request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.requestsTotal, m.requestDuration)
	}
	return m
}

func (m *Metrics) observe(op string, statusCode int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(op, statusClass(statusCode)).Inc()
	m.requestDuration.WithLabelValues(op).Observe(d.Seconds())
}

// statusClass buckets a status code as "2xx", "4xx", ... or "error"
// when no response was received
func statusClass(code int) string {
	if code <= 0 {
		return "error"
	}
	return strconv.Itoa(code/100) + "xx"
}
