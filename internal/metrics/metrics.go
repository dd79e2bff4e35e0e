// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes
const (
	OutcomeFound   = "found"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
)

var (
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skinmatch_recommendations_total",
			Help: "Total number of recommendation queries by outcome",
		},
		[]string{"outcome"},
	)

	RecommendationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skinmatch_recommendation_cache_hits_total",
			Help: "Recommendation queries answered from cache",
		},
	)

	FeatureRebuildsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skinmatch_feature_rebuilds_total",
			Help: "Total number of full feature matrix rebuilds",
		},
	)

	FeatureRebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skinmatch_feature_rebuild_duration_seconds",
			Help:    "Duration of feature matrix rebuilds in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
	)

	CatalogProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skinmatch_catalog_products",
			Help: "Current number of products in the catalog",
		},
	)

	FeatureColumns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skinmatch_feature_columns",
			Help: "Current number of columns in the feature matrix",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skinmatch_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skinmatch_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter",
		},
	)
)

// RecordRebuild records a feature matrix rebuild
func RecordRebuild(duration time.Duration, products, columns int) {
	FeatureRebuildsTotal.Inc()
	FeatureRebuildDuration.Observe(duration.Seconds())
	CatalogProducts.Set(float64(products))
	FeatureColumns.Set(float64(columns))
}

// RecordRecommendation records the outcome of a recommendation query
func RecordRecommendation(outcome string, fromCache bool) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	if fromCache {
		RecommendationCacheHits.Inc()
	}
}

// RecordHTTPRequest records the latency of one HTTP request
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
