package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the API's Prometheus collectors
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CalculationsTotal    *prometheus.CounterVec
	RecommendationsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on registry
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bandwidth_cost_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bandwidth_cost_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		CalculationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bandwidth_cost_calculations_total",
				Help: "Cost calculations by plan and outcome",
			},
			[]string{"plan", "outcome"},
		),
		RecommendationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bandwidth_cost_recommendations_total",
				Help: "Plan recommendations by recommended plan",
			},
			[]string{"plan"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CalculationsTotal,
		m.RecommendationsTotal,
	)
	return m
}
