package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"nestegg/internal/amqp"
	"nestegg/internal/config"
	"nestegg/internal/services"
	"nestegg/internal/storage"
	"nestegg/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting nestegg-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The worker computes snapshots without a cache layer: every refresh is a
	// fresh pass over the stored portfolio.
	projections := services.NewProjectionService(repo, nil)
	projWorker := worker.NewProjectionWorker(projections, repo)

	// Warm the snapshot on startup so the API has something to serve.
	if err := projWorker.Refresh(ctx); err != nil {
		logger.Error("Startup snapshot refresh failed", "error", err)
		// Don't exit - the next change message or tick retries
	}

	go func() {
		handler := func(msg *amqp.InstrumentChangedMessage) error {
			return projWorker.HandleChangeMessage(ctx, msg)
		}
		if err := amqpClient.ConsumeInstrumentChanged(ctx, handler); err != nil {
			if err != context.Canceled {
				logger.Error("Message consumption failed", "error", err)
			}
			cancel()
		}
	}()

	go projWorker.RunPeriodicRefresh(ctx, cfg.RefreshInterval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()
	logger.Info("Shutting down worker...")
	time.Sleep(2 * time.Second)
	logger.Info("Worker shutdown complete")
}
