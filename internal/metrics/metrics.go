// Package metrics provides Prometheus instrumentation for requests sent to
// the verification provider. A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the dispatch metrics of the signed transport.
type Metrics struct {
	// Completed HTTP exchanges by method and status class ("2xx", "4xx"...)
	Requests *prometheus.CounterVec

	// Requests that never completed an HTTP exchange, by transport error kind
	TransportErrors *prometheus.CounterVec

	// Wall time of a dispatch, including reading a buffered body
	Duration *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg. Use a dedicated
// registry per client to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sumsub_client_requests_total",
			Help: "Completed requests to the verification provider by method and status class",
		}, []string{"method", "status"}),

		TransportErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sumsub_client_transport_errors_total",
			Help: "Requests to the verification provider that failed before a response was received",
		}, []string{"kind"}),

		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sumsub_client_request_duration_seconds",
			Help:    "Duration of requests to the verification provider",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"method"}),
	}
}

// ObserveRequest records a completed exchange.
func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	if m != nil {
		m.Requests.WithLabelValues(method, statusClass(status)).Inc()
		m.Duration.WithLabelValues(method).Observe(d.Seconds())
	}
}

// IncrementTransportError records a failed dispatch.
func (m *Metrics) IncrementTransportError(method, kind string, d time.Duration) {
	if m != nil {
		m.TransportErrors.WithLabelValues(kind).Inc()
		m.Duration.WithLabelValues(method).Observe(d.Seconds())
	}
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "other"
	}
	return strconv.Itoa(status/100) + "xx"
}
