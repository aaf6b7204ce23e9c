package metrics

import (
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		tryOnJobsSubmittedTotal,
		tryOnJobsProcessedTotal,
		bananaRequestSeconds,
		outfitSearchesTotal,
	)
}

var (
	tryOnJobsSubmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tryon_jobs_submitted_total",
			Help: "Total number of try-on jobs accepted for processing.",
		},
	)

	tryOnJobsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tryon_jobs_processed_total",
			Help: "Total number of try-on jobs reaching a terminal state, labeled by status.",
		},
		[]string{"status"}, // 'succeeded', 'failed'
	)

	bananaRequestSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "banana_request_duration_seconds",
			Help:    "Latency distribution of generation API calls.",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"success"},
	)

	outfitSearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfit_searches_total",
			Help: "Outfit image searches by outcome.",
		},
		[]string{"outcome"}, // 'ok', 'error'
	)
)

func IncJobSubmitted() {
	tryOnJobsSubmittedTotal.Inc()
}

func IncJobProcessed(status string) {
	tryOnJobsProcessedTotal.WithLabelValues(norm(status)).Inc()
}

func ObserveBananaRequest(seconds float64, success bool) {
	bananaRequestSeconds.WithLabelValues(strconv.FormatBool(success)).Observe(seconds)
}

func IncOutfitSearch(outcome string) {
	outfitSearchesTotal.WithLabelValues(norm(outcome)).Inc()
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
