// Package metrics exposes Prometheus instrumentation for the telemetry
// service pipelines.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IngestTotal counts ingest attempts by outcome
	// (ok, validation_error, index_error, store_error).
	IngestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskwatch_ingest_total",
			Help: "Total number of usage record ingest attempts by outcome",
		},
		[]string{"outcome"},
	)

	// SearchTotal counts search requests by outcome
	// (ok, validation_error, empty_index, error).
	SearchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskwatch_search_total",
			Help: "Total number of search requests by outcome",
		},
		[]string{"outcome"},
	)

	// IngestDuration observes end-to-end ingest pipeline latency.
	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deskwatch_ingest_duration_seconds",
			Help:    "Duration of the ingest pipeline in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
	)

	// SearchDuration observes end-to-end search pipeline latency.
	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deskwatch_search_duration_seconds",
			Help:    "Duration of the search pipeline in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
	)
)
