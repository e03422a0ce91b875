package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"nestegg/internal/amqp"
	"nestegg/internal/cache"
	"nestegg/internal/config"
	"nestegg/internal/core"
	apphttp "nestegg/internal/http"
	"nestegg/internal/ledger"
	gledger "nestegg/internal/ledger/google"
	memledger "nestegg/internal/ledger/memory"
	"nestegg/internal/services"
	"nestegg/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

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

	// AMQP is optional: without a broker the API still works, snapshots just
	// go stale until the periodic refresh.
	var publisher services.ChangePublisher
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("AMQP unavailable, change notifications disabled", "error", err)
	} else {
		defer amqpClient.Close()
		publisher = amqpClient
	}

	var projCache cache.Cache[[]core.ProjectionPoint]
	switch cfg.CacheBackend {
	case "redis":
		redisCache := cache.NewRedis[[]core.ProjectionPoint](cfg.RedisAddr, "nestegg:projection", cfg.CacheTTL)
		defer redisCache.Close()
		projCache = redisCache
		logger.Info("Initialized Redis projection cache", "addr", cfg.RedisAddr)
	default:
		projCache = cache.NewLRU[[]core.ProjectionPoint](cfg.CacheSize, cfg.CacheTTL)
		logger.Info("Initialized in-memory projection cache", "size", cfg.CacheSize, "ttl", cfg.CacheTTL)
	}

	var budgetLedger ledger.Reader
	switch cfg.LedgerBackend {
	case "sheets":
		client, err := gledger.New(context.Background(), gledger.Config{
			SpreadsheetID:     cfg.GoogleSpreadsheetID,
			BudgetsSheet:      cfg.GoogleBudgetsSheet,
			LimitsSheet:       cfg.GoogleLimitsSheet,
			TransactionsSheet: cfg.GoogleTransactionsSheet,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets ledger", "error", err)
			os.Exit(1)
		}
		budgetLedger = client
		logger.Info("Initialized Google Sheets ledger", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	default:
		budgetLedger = memledger.New(nil, nil, nil)
		logger.Info("Initialized empty in-memory ledger")
	}

	instruments := services.NewInstrumentService(repo, publisher)
	projections := services.NewProjectionService(repo, projCache)
	budgets := services.NewBudgetService(budgetLedger, core.StatusThresholds{OnTrackFloorPct: cfg.OnTrackFloorPct})

	srv := apphttp.NewServer(":"+cfg.Port, instruments, projections, budgets, repo)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting nestegg server",
		"port", cfg.Port,
		"ledger_backend", cfg.LedgerBackend,
		"cache_backend", cfg.CacheBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
