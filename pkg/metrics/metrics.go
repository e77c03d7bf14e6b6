// Package metrics defines the Prometheus collectors for serve mode.
// Collectors are registered on the default registry via promauto and exposed
// by the API server's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LearnRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netlearn_learn_requests_total",
		Help: "Total number of learn requests, labelled by outcome.",
	}, []string{"status"})

	LearnDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "netlearn_learn_duration_seconds",
		Help:    "End-to-end duration of structure-learning runs.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netlearn_cache_lookups_total",
		Help: "Learned-network cache lookups, labelled by result (hit or miss).",
	}, []string{"result"})

	NetworkEdges = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "netlearn_network_edges",
		Help:    "Number of edges in learned networks.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	RunsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "netlearn_runs_stored_total",
		Help: "Total number of learn runs persisted to the run store.",
	})
)
