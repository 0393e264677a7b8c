package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"weverse-watcher/internal/infra/weverse"
	"weverse-watcher/internal/infra/worker"
	"weverse-watcher/internal/observability/logging"
	"weverse-watcher/internal/usecase/stream"
)

func main() {
	logger := logging.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := worker.NewWatcherMetrics()
	metrics.MustRegister()
	metrics.RecordStart()

	cfg, err := worker.LoadConfigFromEnv(logger, metrics)
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("watcher configuration loaded",
		slog.Duration("poll_interval", cfg.PollInterval),
		slog.Int("cache_capacity", cfg.CacheCapacity),
		slog.Duration("comment_fetch_delay", cfg.CommentFetchDelay),
		slog.Int("metrics_port", cfg.MetricsPort),
		slog.Int("health_port", cfg.HealthPort))

	client := weverse.NewClient(
		weverse.Credentials{Email: cfg.Email, Password: cfg.Password},
		weverse.WithHTTPTimeout(cfg.HTTPTimeout),
		weverse.WithLogger(logger),
		weverse.WithRenewalObserver(func(success bool) {
			status := "success"
			if !success {
				status = "failure"
			}
			metrics.RecordTokenRenewal(status)
		}),
	)

	if err := client.Authenticate(ctx); err != nil {
		logger.Error("authentication failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("authenticated with Weverse")

	source := weverse.NewSource(client)
	subscriber := newLoggingSubscriber(logger)
	engine := stream.New(source, subscriber, stream.Config{
		Interval:          cfg.PollInterval,
		CacheCapacity:     cfg.CacheCapacity,
		CommentFetchDelay: cfg.CommentFetchDelay,
	}, logger)

	startMetricsServer(ctx, logger, cfg.MetricsPort, engine)

	healthAddr := fmt.Sprintf(":%d", cfg.HealthPort)
	healthServer := worker.NewHealthServer(healthAddr, logger, func() worker.StreamStats {
		stats := engine.Stats()
		return worker.StreamStats{
			Cycles:             stats.Cycles,
			LastCycleAt:        stats.LastCycleAt,
			LastCycleOK:        stats.LastCycleOK,
			NotificationCached: stats.NotificationCached,
			CommentCountCached: stats.CommentCountCached,
			CommentCached:      stats.CommentCached,
		}
	})

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := healthServer.Start(groupCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		if err := engine.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("stream engine: %w", err)
		}
		return nil
	})

	// Readiness flips once the engine's warm-up cycle completes.
	group.Go(func() error {
		select {
		case <-engine.Ready():
			healthServer.SetReady(true)
		case <-groupCtx.Done():
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		logger.Error("watcher terminated", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("watcher stopped")
}
