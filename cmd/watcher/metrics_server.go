package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weverse-watcher/internal/usecase/stream"
)

// HealthResponse represents a simple health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// StreamHealthResponse reports the poll engine state: cycle counters
// and current dedup cache occupancy.
type StreamHealthResponse struct {
	Healthy            bool      `json:"healthy"`
	Cycles             uint64    `json:"cycles"`
	LastCycleAt        time.Time `json:"last_cycle_at"`
	NotificationCached int       `json:"notification_cached"`
	CommentCountCached int       `json:"comment_count_cached"`
	CommentCached      int       `json:"comment_cached"`
}

// startMetricsServer starts the Prometheus metrics HTTP server.
// It runs in a separate goroutine and supports graceful shutdown via
// context.
//
// Endpoints:
//   - GET /metrics - Prometheus metrics
//   - GET /health - simple liveness probe
//   - GET /health/stream - poll engine state, 503 until the first
//     cycle has completed
func startMetricsServer(ctx context.Context, logger *slog.Logger, port int, engine *stream.Engine) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/health/stream", streamHealthHandler(engine))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("metrics server starting", slog.Int("port", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", slog.Any("error", err))
		}
	}()

	go func() {
		<-ctx.Done()
		logger.Info("metrics server shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", slog.Any("error", err))
		} else {
			logger.Info("metrics server stopped")
		}
	}()

	return server
}

// healthHandler handles GET /health requests (liveness probe).
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(HealthResponse{Status: "healthy"})
}

// streamHealthHandler creates the handler for GET /health/stream.
// Returns 503 until the warm-up cycle has run.
func streamHealthHandler(engine *stream.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := engine.Stats()
		healthy := stats.Cycles > 0 && stats.LastCycleOK

		statusCode := http.StatusOK
		if !healthy {
			statusCode = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_ = json.NewEncoder(w).Encode(StreamHealthResponse{
			Healthy:            healthy,
			Cycles:             stats.Cycles,
			LastCycleAt:        stats.LastCycleAt,
			NotificationCached: stats.NotificationCached,
			CommentCountCached: stats.CommentCountCached,
			CommentCached:      stats.CommentCached,
		})
	}
}
