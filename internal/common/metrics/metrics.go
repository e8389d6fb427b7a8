package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolver_resolutions_total",
			Help: "Total number of order-intent resolutions by originating path",
		},
		[]string{"path"}, // generation | local | apology
	)

	StageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolver_stage_failures_total",
			Help: "Total number of stage failures during resolution",
		},
		[]string{"stage", "error_code"},
	)

	ResolutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "resolver_resolution_duration_seconds",
			Help: "Duration of order-intent resolution in seconds",
		},
		[]string{"path"},
	)

	RecoveryTierUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolver_recovery_tier_total",
			Help: "Recovery tier that produced the structured result",
		},
		[]string{"tier"}, // regex | brace_scan | salvage | exhausted
	)
)
