package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingestion metrics
	IngestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rca_assist_ingest_runs_total",
			Help: "Total number of ingestion runs",
		},
		[]string{"status"}, // ok, noop, error
	)

	IngestedDocumentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rca_assist_ingested_documents_total",
			Help: "Total number of bug documents upserted into the index",
		},
	)

	// Suggestion metrics
	SuggestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rca_assist_suggestions_total",
			Help: "Total number of RCA suggestion requests",
		},
		[]string{"status", "grounded"},
	)

	SuggestionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rca_assist_suggestion_duration_seconds",
			Help:    "RCA suggestion latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // 250ms to ~2min
		},
	)
)
