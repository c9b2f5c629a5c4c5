package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP layer metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "framecheck_http_requests_total",
			Help: "Total number of API requests handled",
		},
		[]string{"path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "framecheck_http_request_duration_seconds",
			Help:    "Duration of API request handling in seconds",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"path"},
	)
)
