package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"weverse-watcher/internal/pkg/config"
)

// WatcherConfig holds the runtime configuration for the watcher
// process: account credentials, poll cadence, cache sizing and the
// operational HTTP ports.
//
// Configuration sources:
//   - Environment variables (loaded via LoadConfigFromEnv)
//   - Default values (provided by DefaultConfig)
//
// Credentials are the only hard requirement; every tunable falls back
// to its default when unset or invalid.
type WatcherConfig struct {
	// Email and Password are the Weverse account credentials used to
	// obtain API access tokens. Required, no default.
	Email    string
	Password string

	// PollInterval is the pause between the end of one poll cycle and
	// the start of the next.
	// Range: 5s-10m
	// Default: 20s
	PollInterval time.Duration

	// CacheCapacity bounds each of the dedup caches.
	// Range: 100-100000
	// Default: 5000
	CacheCapacity int

	// CommentFetchDelay paces the per-notification artist-comment
	// fetches within a cycle.
	// Range: 0-5s
	// Default: 350ms
	CommentFetchDelay time.Duration

	// HTTPTimeout is the per-request timeout for upstream calls.
	// Range: 1s-2m
	// Default: 30s
	HTTPTimeout time.Duration

	// MetricsPort serves Prometheus metrics.
	// Range: 1024-65535
	// Default: 9090
	MetricsPort int

	// HealthPort serves liveness and readiness probes.
	// Range: 1024-65535
	// Default: 9091
	HealthPort int
}

// DefaultConfig returns a WatcherConfig with production defaults.
// Credentials are intentionally empty and must come from the
// environment.
func DefaultConfig() WatcherConfig {
	return WatcherConfig{
		PollInterval:      20 * time.Second,
		CacheCapacity:     5000,
		CommentFetchDelay: 350 * time.Millisecond,
		HTTPTimeout:       30 * time.Second,
		MetricsPort:       9090,
		HealthPort:        9091,
	}
}

// Validate checks the configuration. All failures are collected so the
// operator sees every problem at once.
func (c *WatcherConfig) Validate() error {
	var errs []error

	if c.Email == "" {
		errs = append(errs, errors.New("email: required"))
	}
	if c.Password == "" {
		errs = append(errs, errors.New("password: required"))
	}
	if err := config.ValidateDuration(c.PollInterval, 5*time.Second, 10*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("poll interval: %w", err))
	}
	if err := config.ValidateIntRange(c.CacheCapacity, 100, 100000); err != nil {
		errs = append(errs, fmt.Errorf("cache capacity: %w", err))
	}
	if err := config.ValidateDuration(c.CommentFetchDelay, 0, 5*time.Second); err != nil {
		errs = append(errs, fmt.Errorf("comment fetch delay: %w", err))
	}
	if err := config.ValidateDuration(c.HTTPTimeout, time.Second, 2*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("http timeout: %w", err))
	}
	if err := config.ValidatePort(c.MetricsPort); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}
	if err := config.ValidatePort(c.HealthPort); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// LoadConfigFromEnv loads the watcher configuration from environment
// variables with validation and automatic fallback to defaults.
//
// The tunables are fail-open: an invalid value logs a warning, bumps
// the fallback metrics and keeps the default. Credentials are the one
// exception; without them the watcher cannot authenticate, so a
// missing WEVERSE_EMAIL or WEVERSE_PASSWORD returns an error.
//
// Environment variables:
//   - WEVERSE_EMAIL: account email (required)
//   - WEVERSE_PASSWORD: account password (required)
//   - POLL_INTERVAL: duration string, e.g. "20s" (default: 20s)
//   - CACHE_CAPACITY: integer 100-100000 (default: 5000)
//   - COMMENT_FETCH_DELAY: duration string (default: 350ms)
//   - HTTP_TIMEOUT: duration string (default: 30s)
//   - METRICS_PORT: integer 1024-65535 (default: 9090)
//   - HEALTH_PORT: integer 1024-65535 (default: 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WatcherMetrics) (*WatcherConfig, error) {
	cfg := DefaultConfig()

	cfg.Email = config.LoadEnvString("WEVERSE_EMAIL", "")
	cfg.Password = config.LoadEnvString("WEVERSE_PASSWORD", "")
	if cfg.Email == "" || cfg.Password == "" {
		return nil, errors.New("WEVERSE_EMAIL and WEVERSE_PASSWORD must be set")
	}

	loadDuration := func(envKey, field string, target *time.Duration, min, max time.Duration) {
		result := config.LoadEnvDuration(envKey, *target, func(d time.Duration) error {
			return config.ValidateDuration(d, min, max)
		})
		*target = result.Value.(time.Duration)
		recordFallback(logger, metrics, field, result)
	}
	loadInt := func(envKey, field string, target *int, min, max int) {
		result := config.LoadEnvInt(envKey, *target, func(v int) error {
			return config.ValidateIntRange(v, min, max)
		})
		*target = result.Value.(int)
		recordFallback(logger, metrics, field, result)
	}

	loadDuration("POLL_INTERVAL", "poll_interval", &cfg.PollInterval, 5*time.Second, 10*time.Minute)
	loadInt("CACHE_CAPACITY", "cache_capacity", &cfg.CacheCapacity, 100, 100000)
	loadDuration("COMMENT_FETCH_DELAY", "comment_fetch_delay", &cfg.CommentFetchDelay, 0, 5*time.Second)
	loadDuration("HTTP_TIMEOUT", "http_timeout", &cfg.HTTPTimeout, time.Second, 2*time.Minute)
	loadInt("METRICS_PORT", "metrics_port", &cfg.MetricsPort, 1024, 65535)
	loadInt("HEALTH_PORT", "health_port", &cfg.HealthPort, 1024, 65535)

	metrics.Config.RecordLoadTimestamp()
	return &cfg, nil
}

func recordFallback(logger *slog.Logger, metrics *WatcherMetrics, field string, result config.ConfigLoadResult) {
	if !result.FallbackApplied {
		return
	}
	metrics.Config.RecordFallback(field)
	for _, warning := range result.Warnings {
		logger.Warn("Configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}
}
