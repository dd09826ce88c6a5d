package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tenebreuse"

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)
)

// Content document metrics
var (
	DocumentsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_loaded_total",
			Help:      "Document fetches from storage by outcome",
		},
		[]string{"document", "result"},
	)

	DocumentCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_cache_hits_total",
			Help:      "Document requests served from the loader cache",
		},
		[]string{"document"},
	)

	DocumentLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_load_duration_seconds",
			Help:      "Time spent fetching and decoding a document",
			Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"document"},
	)
)

// Business metrics
var (
	FormSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_submissions_total",
			Help:      "Form posts by form and outcome",
		},
		[]string{"form", "result"},
	)

	QuotesSummarized = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_summarized_total",
			Help:      "Total number of quote requests summarized",
		},
	)

	QuoteEstimate = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_estimate_euros",
			Help:      "Indicative quote totals in euros",
			Buckets:   []float64{100, 250, 500, 1000, 2000, 5000, 10000},
		},
	)

	QuoteExports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_exports_total",
			Help:      "Quote exports by format",
		},
		[]string{"format"},
	)
)
