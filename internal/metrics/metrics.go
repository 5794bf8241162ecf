// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

// Package metrics holds the Prometheus instrumentation for Showrec.
//
// Metrics are registered on the default registry through promauto and
// exposed by the API server at /metrics. Callers use the Record helpers
// rather than touching the collectors directly.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for recommendation requests.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showrec_recommendation_requests_total",
			Help: "Total number of recommendation requests by kind and outcome",
		},
		[]string{"kind", "outcome"}, // kind: "collaborative", "content", "preference"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showrec_recommendation_duration_seconds",
			Help:    "Time spent producing a recommendation list",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"kind"},
	)

	RecommendationResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showrec_recommendation_result_size",
			Help:    "Number of items returned per recommendation request",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"kind"},
	)

	RecommendationCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showrec_recommendation_candidates",
			Help:    "Number of candidates scored per recommendation request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"kind"},
	)

	// Dataset Metrics
	DatasetRowsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showrec_dataset_rows_loaded_total",
			Help: "Rows accepted while loading dataset files",
		},
		[]string{"dataset"}, // "ratings", "catalog", "metadata"
	)

	DatasetRowsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showrec_dataset_rows_skipped_total",
			Help: "Malformed rows skipped while loading dataset files",
		},
		[]string{"dataset"},
	)

	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showrec_dataset_load_duration_seconds",
			Help:    "Duration of dataset file loads",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"dataset"},
	)

	SnapshotSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "showrec_snapshot_entries",
			Help: "Entries held by the loaded corpus snapshot",
		},
		[]string{"kind"}, // "ratings", "users", "titles", "shows", "metadata"
	)

	RecommendationCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showrec_recommendation_cache_lookups_total",
			Help: "Collaborative result cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	// Profile Metrics
	ProfileOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showrec_profile_operations_total",
			Help: "Profile store operations by type and result",
		},
		[]string{"operation", "result"},
	)

	ProfileFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "showrec_profile_fallbacks_total",
			Help: "Preference requests answered from stored recommendations",
		},
	)

	ProfileGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showrec_profile_gc_runs_total",
			Help: "Profile store value log GC cycles by result",
		},
		[]string{"result"},
	)

	ProfileGCDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "showrec_profile_gc_duration_seconds",
			Help:    "Duration of a profile store value log GC cycle",
			Buckets: prometheus.DefBuckets,
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)
)

// RecordRecommendation records one recommendation request.
func RecordRecommendation(kind, outcome string, duration time.Duration, candidates, returned int) {
	RecommendationRequests.WithLabelValues(kind, outcome).Inc()
	RecommendationDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if outcome == OutcomeOK || outcome == OutcomeEmpty {
		RecommendationResultSize.WithLabelValues(kind).Observe(float64(returned))
		RecommendationCandidates.WithLabelValues(kind).Observe(float64(candidates))
	}
}

// RecordCacheLookup counts one result cache lookup.
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendationCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	RecommendationCacheLookups.WithLabelValues("miss").Inc()
}

// RecordDatasetLoad records the outcome of loading one dataset file.
func RecordDatasetLoad(dataset string, loaded, skipped int, duration time.Duration) {
	DatasetRowsLoaded.WithLabelValues(dataset).Add(float64(loaded))
	DatasetRowsSkipped.WithLabelValues(dataset).Add(float64(skipped))
	DatasetLoadDuration.WithLabelValues(dataset).Observe(duration.Seconds())
}

// SetSnapshotSize sets the gauge for one snapshot dimension.
func SetSnapshotSize(kind string, n int) {
	SnapshotSize.WithLabelValues(kind).Set(float64(n))
}

// RecordProfileOperation records a profile store operation.
func RecordProfileOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	ProfileOperations.WithLabelValues(operation, result).Inc()
}

// RecordProfileFallback counts a preference request served from stored recommendations.
func RecordProfileFallback() {
	ProfileFallbacks.Inc()
}

// RecordProfileGC records one value log GC cycle.
func RecordProfileGC(duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	ProfileGCRuns.WithLabelValues(result).Inc()
	ProfileGCDuration.Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}
