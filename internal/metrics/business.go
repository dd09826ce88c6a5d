package metrics

import "time"

// DocumentFetched records a storage fetch and its outcome ("ok" or an HTTP
// status such as "404").
func DocumentFetched(document, result string, duration time.Duration) {
	DocumentsLoaded.WithLabelValues(document, result).Inc()
	DocumentLoadDuration.WithLabelValues(document).Observe(duration.Seconds())
}

// DocumentCacheHit records a document served without a fetch.
func DocumentCacheHit(document string) {
	DocumentCacheHits.WithLabelValues(document).Inc()
}

// FormSubmitted records a form post; result is "ok", "invalid" or "error".
func FormSubmitted(form, result string) {
	FormSubmissions.WithLabelValues(form, result).Inc()
}

// QuoteSummarized records a successful quote summary and its total.
func QuoteSummarized(total float64) {
	QuotesSummarized.Inc()
	QuoteEstimate.Observe(total)
}

// QuoteExported records a download in the given format ("json" or "text").
func QuoteExported(format string) {
	QuoteExports.WithLabelValues(format).Inc()
}
