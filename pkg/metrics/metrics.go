package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devfinder_lookups_total",
			Help: "Profile lookups by outcome",
		},
		[]string{"outcome"},
	)

	LookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "devfinder_lookup_duration_seconds",
			Help:    "Latency of profile lookups against the GitHub API",
			Buckets: prometheus.DefBuckets,
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "devfinder_sessions_active",
			Help: "Sessions with a live controller",
		},
	)

	LookupEventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devfinder_lookup_events_consumed_total",
			Help: "Lookup events read from Kafka by outcome",
		},
		[]string{"outcome"},
	)
)
