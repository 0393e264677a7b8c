package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"weverse-watcher/internal/pkg/config"
)

// WatcherMetrics provides process-level Prometheus metrics for the
// watcher. Per-cycle metrics (cycle counts, delta sizes, cache sizes)
// live with the stream engine; this type covers the surrounding shell.
//
// Metrics:
//   - watcher_config_*: configuration load and fallback tracking
//   - watcher_start_timestamp: Unix timestamp of process start
//   - watcher_token_renewals_total: access token renewals by status
type WatcherMetrics struct {
	// Config tracks configuration loads and fallbacks.
	Config *config.ConfigMetrics

	// StartTimestamp records when the process came up.
	StartTimestamp prometheus.Gauge

	// TokenRenewalsTotal counts access token renewals.
	// Labels: status (success, failure)
	TokenRenewalsTotal *prometheus.CounterVec
}

// NewWatcherMetrics creates the metrics set. The watcher-specific
// metrics auto-register via promauto; call MustRegister to register
// the embedded configuration metrics as well.
func NewWatcherMetrics() *WatcherMetrics {
	return &WatcherMetrics{
		Config: config.NewConfigMetrics("watcher"),

		StartTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "watcher_start_timestamp",
			Help: "Unix timestamp of watcher process start",
		}),

		TokenRenewalsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "watcher_token_renewals_total",
			Help: "Total number of access token renewals by status (success/failure)",
		}, []string{"status"}),
	}
}

// MustRegister registers the configuration metrics with the default
// registry. Panics on duplicate registration.
func (m *WatcherMetrics) MustRegister() {
	m.Config.MustRegister()
}

// RecordStart marks the process start time.
func (m *WatcherMetrics) RecordStart() {
	m.StartTimestamp.SetToCurrentTime()
}

// RecordTokenRenewal counts one token renewal attempt.
func (m *WatcherMetrics) RecordTokenRenewal(status string) {
	m.TokenRenewalsTotal.WithLabelValues(status).Inc()
}
