package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	analyzeCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "timeline_backend",
		Subsystem: "engine",
		Name:      "analyze_requests_total",
		Help:      "Analysis requests by outcome.",
	}, []string{"status"})

	analyzeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "timeline_backend",
		Subsystem: "engine",
		Name:      "analyze_duration_seconds",
		Help:      "Wall-clock duration of analysis runs.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	skippedSegments = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "timeline_backend",
		Subsystem: "engine",
		Name:      "segments_skipped_total",
		Help:      "Raw export segments skipped as unusable.",
	})
)

func init() {
	prometheus.MustRegister(analyzeCounter, analyzeDuration, skippedSegments)
}

// ObserveAnalyze records one analysis request outcome and duration
func ObserveAnalyze(status string, elapsed time.Duration) {
	analyzeCounter.WithLabelValues(status).Inc()
	analyzeDuration.Observe(elapsed.Seconds())
}

// AddSkippedSegments accumulates the per-run skip count
func AddSkippedSegments(n int) {
	if n > 0 {
		skippedSegments.Add(float64(n))
	}
}
