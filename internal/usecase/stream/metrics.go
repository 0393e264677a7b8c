package stream

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stream_cycles_total",
		Help: "Total number of poll cycles by status (success/failure)",
	}, []string{"status"})

	cycleDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stream_cycle_duration_seconds",
		Help:    "Duration of poll cycles in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	feedSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stream_feed_page_size",
		Help:    "Number of notifications per fetched feed page",
		Buckets: []float64{0, 5, 10, 15, 20, 30, 50},
	})

	newItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stream_new_items_total",
		Help: "Total number of new items dispatched by type",
	}, []string{"type"})

	skippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stream_items_skipped_total",
		Help: "Total number of items skipped by type and reason",
	}, []string{"type", "reason"})

	dispatchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stream_dispatch_errors_total",
		Help: "Total number of subscriber callback errors by type",
	}, []string{"type"})

	cacheSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "stream_cache_entries",
		Help: "Current number of entries per dedup cache",
	}, []string{"cache"})
)

func recordCycle(status string, duration time.Duration) {
	cyclesTotal.WithLabelValues(status).Inc()
	cycleDurationSeconds.Observe(duration.Seconds())
}

func recordFeedSize(n int) {
	feedSize.Observe(float64(n))
}

func recordNewItem(itemType string) {
	newItemsTotal.WithLabelValues(itemType).Inc()
}

func recordSkipped(itemType, reason string) {
	skippedTotal.WithLabelValues(itemType, reason).Inc()
}

func recordDispatchError(itemType string) {
	dispatchErrorsTotal.WithLabelValues(itemType).Inc()
}

func setCacheSize(cache string, entries int) {
	cacheSize.WithLabelValues(cache).Set(float64(entries))
}
