// Package metrics exposes Prometheus collectors for the ingestion service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gpuradar/gpuradar/internal/ingest"
)

var (
	pagesFetchedTotal    *prometheus.CounterVec
	fetchDurationSeconds prometheus.Histogram
	fetchRetriesTotal    prometheus.Counter
	listingsTotal        *prometheus.CounterVec
	rejectionsTotal      *prometheus.CounterVec
	duplicatesTotal      prometheus.Counter
	runsTotal            *prometheus.CounterVec

	once sync.Once
)

// Init initializes the Prometheus collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		pagesFetchedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gpuradar_pages_fetched_total",
				Help: "Total result pages fetched, labeled by HTTP status.",
			},
			[]string{"status"},
		)

		fetchDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gpuradar_fetch_duration_seconds",
				Help:    "Histogram of page fetch latencies.",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30},
			},
		)

		fetchRetriesTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "gpuradar_fetch_retries_total",
				Help: "Total fetch attempts that were retried.",
			},
		)

		listingsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gpuradar_listings_total",
				Help: "Total listings processed, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		rejectionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gpuradar_rejections_total",
				Help: "Total rejected listings, labeled by category.",
			},
			[]string{"category"},
		)

		duplicatesTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "gpuradar_duplicate_listings_total",
				Help: "Total listings skipped because their URL was already seen.",
			},
		)

		runsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gpuradar_runs_total",
				Help: "Total ingestion runs, labeled by result.",
			},
			[]string{"result"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveFetch records one finished fetch attempt.
func ObserveFetch(status int, duration time.Duration) {
	Init()
	pagesFetchedTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	if duration > 0 {
		fetchDurationSeconds.Observe(duration.Seconds())
	}
}

// CountFetchRetry records one retried fetch attempt.
func CountFetchRetry() {
	Init()
	fetchRetriesTotal.Inc()
}

// CountListing records one processed listing by outcome
// ("kept", "rejected", "skipped").
func CountListing(outcome string) {
	Init()
	listingsTotal.WithLabelValues(outcome).Inc()
}

// CountRejection records one rejection by category.
func CountRejection(cat ingest.RejectionCategory) {
	Init()
	rejectionsTotal.WithLabelValues(string(cat)).Inc()
}

// CountDuplicate records one skipped duplicate URL.
func CountDuplicate() {
	Init()
	duplicatesTotal.Inc()
}

// CountRun records one finished run ("ok" or "error").
func CountRun(result string) {
	Init()
	runsTotal.WithLabelValues(result).Inc()
}
