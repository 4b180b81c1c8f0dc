// Package metrics exposes Prometheus metrics for the search engine and the
// HTTP surface.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	searchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scout",
			Name:      "searches_total",
			Help:      "Total number of executed searches",
		},
		[]string{"type"},
	)

	searchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scout",
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"type"},
	)

	gatewayFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scout",
			Name:      "gateway_failures_total",
			Help:      "Per-entity-type gateway failures degraded to empty contributions",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(searchesTotal)
	prometheus.MustRegister(searchDuration)
	prometheus.MustRegister(gatewayFailures)
}

// ObserveSearch records one executed search of the given type.
func ObserveSearch(searchType string, duration time.Duration) {
	searchesTotal.WithLabelValues(searchType).Inc()
	searchDuration.WithLabelValues(searchType).Observe(duration.Seconds())
}

// GatewayFailure records one degraded per-type gateway failure.
func GatewayFailure(entityType string) {
	gatewayFailures.WithLabelValues(entityType).Inc()
}
