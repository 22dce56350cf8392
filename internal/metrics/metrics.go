// Package metrics 定義服務的 Prometheus 指標
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API 請求指標
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chef_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chef_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chef_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// 搜尋指標
	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chef_search_duration_seconds",
			Help:    "Duration of recipe searches including the candidate query",
			Buckets: prometheus.DefBuckets,
		},
	)

	SearchCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chef_search_candidates",
			Help:    "Number of candidate recipes fetched per search",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chef_search_results",
			Help:    "Number of recipes returned per search",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		},
	)

	MalformedRecipesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chef_malformed_recipes_skipped_total",
			Help: "Total number of malformed recipe records skipped while ranking",
		},
	)

	// 快取指標
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chef_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chef_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)
)

// RecordAPIRequest 記錄一次 API 請求
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordSearch 記錄一次搜尋
func RecordSearch(candidates, results, skipped int, duration time.Duration) {
	SearchDuration.Observe(duration.Seconds())
	SearchCandidates.Observe(float64(candidates))
	SearchResults.Observe(float64(results))
	if skipped > 0 {
		MalformedRecipesSkipped.Add(float64(skipped))
	}
}

// RecordCacheLookup 記錄快取查詢結果
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
		return
	}
	CacheMisses.WithLabelValues(cache).Inc()
}
