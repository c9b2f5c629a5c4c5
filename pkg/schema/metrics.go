package schema

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Validation pass metrics
	validateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "framecheck_validate_duration_seconds",
			Help:    "Duration of a full check set validation pass in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
	)

	checksEvaluatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "framecheck_checks_evaluated_total",
			Help: "Total number of checks evaluated",
		},
		[]string{"status"}, // passed, failed, warned or skipped
	)
)
