// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_queries_total",
			Help: "Total number of chat queries handled, by classified intent and classifier source",
		},
		[]string{"intent", "source"},
	)

	QueryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_query_failures_total",
			Help: "Total number of queries that hit a recoverable pipeline failure, by error code",
		},
		[]string{"error_code"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chat_query_duration_seconds",
			Help: "End-to-end duration of query handling in seconds",
		},
		[]string{"intent"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "provider_request_duration_seconds",
			Help: "Duration of external collaborator calls in seconds",
		},
		[]string{"provider", "status"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_cache_hits_total",
			Help: "Cache lookups for provider responses, by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)
)
