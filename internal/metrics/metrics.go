package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors the HTTP layer records into.
type Metrics struct {
	registry  *prometheus.Registry
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
	Outcomes  *prometheus.CounterVec
}

func New() *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodorder",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "foodorder",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodorder",
		Name:      "order_operation_outcomes_total",
		Help:      "Outcomes of order resolution, balance and status operations.",
	}, []string{"operation", "outcome"})

	registry := prometheus.NewRegistry()
	registry.MustRegister(requests, latency, outcomes)
	return &Metrics{registry: registry, Requests: requests, LatencyMS: latency, Outcomes: outcomes}
}

// Observe records the outcome of one core operation.
func (m *Metrics) Observe(operation, outcome string) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
