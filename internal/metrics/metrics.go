package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query kinds.
const (
	KindData  = "data"
	KindCount = "count"
)

var (
	// SearchQueriesTotal counts store round trips issued by member search, per strategy and kind.
	SearchQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "member_search_queries_total",
			Help: "Total number of store queries issued by member search",
		},
		[]string{"strategy", "kind"},
	)
	// CountSkippedTotal counts pages whose total was derived without a count query.
	CountSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "member_search_count_skipped_total",
			Help: "Total number of count queries avoided",
		},
		[]string{"strategy", "reason"},
	)
	// SearchDuration is the latency of a whole search call including every round trip.
	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "member_search_duration_seconds",
			Help:    "Member search latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"strategy"},
	)
	// RequestTotal counts HTTP requests by method, route pattern and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "member_search_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
)
