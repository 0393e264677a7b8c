package config

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ConfigMetrics provides parameterized Prometheus metrics for configuration management.
// The factory creates a standard set of metrics for tracking configuration state
// and fallback behavior, parameterized by component name.
//
// Metrics generated:
//   - {component}_config_load_timestamp: Unix timestamp of last configuration load
//   - {component}_config_fallbacks_total: Total fallback operations by field
//   - {component}_config_fallback_active: 1 if any fallback active, 0 otherwise
type ConfigMetrics struct {
	LoadTimestamp  prometheus.Gauge
	FallbacksTotal *prometheus.CounterVec
	FallbackActive prometheus.Gauge
}

// NewConfigMetrics creates configuration metrics for the named component.
// The metrics are not registered; call MustRegister on the returned value.
func NewConfigMetrics(component string) *ConfigMetrics {
	return &ConfigMetrics{
		LoadTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_load_timestamp", component),
			Help: "Unix timestamp of the last configuration load",
		}),
		FallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_fallbacks_total", component),
			Help: "Total number of configuration fallback operations",
		}, []string{"field"}),
		FallbackActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_fallback_active", component),
			Help: "Whether any configuration fallback is currently active (1 or 0)",
		}),
	}
}

// MustRegister registers all metrics with the default Prometheus registry.
// Panics if a metric is already registered.
func (m *ConfigMetrics) MustRegister() {
	prometheus.MustRegister(m.LoadTimestamp, m.FallbacksTotal, m.FallbackActive)
}

// RecordLoadTimestamp marks the time of the last configuration load.
func (m *ConfigMetrics) RecordLoadTimestamp() {
	m.LoadTimestamp.Set(float64(time.Now().Unix()))
}

// RecordFallback records one fallback applied for the given field.
func (m *ConfigMetrics) RecordFallback(field string) {
	m.FallbacksTotal.WithLabelValues(field).Inc()
	m.FallbackActive.Set(1)
}
