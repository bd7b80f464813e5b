// Package main is the entry point for the Sales Report API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sales-report/backend/config"
	"github.com/sales-report/backend/internal/application/adapter"
	"github.com/sales-report/backend/internal/infra/cache"
	"github.com/sales-report/backend/internal/infra/db"
	"github.com/sales-report/backend/internal/infra/dependency"
	"github.com/sales-report/backend/internal/integration/lock"
	"github.com/sales-report/backend/internal/integration/persistence"
	"github.com/sales-report/backend/internal/integration/persistence/memory"
	"github.com/sales-report/backend/internal/integration/persistence/model"
	"github.com/sales-report/backend/internal/integration/snapshot"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Server.LogLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting Sales Report API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"store_driver", cfg.Database.Driver,
	)

	// Initialize record store
	var store adapter.TransactionStore
	var storeHealthChecker func() bool

	if cfg.Database.Driver == config.StoreDriverMemory {
		store = memory.NewTransactionStore()
	} else {
		database, err := db.NewConnection(&cfg.Database)
		if err != nil {
			slog.Error("Database connection failed", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()

		if err := database.AutoMigrate(&model.TransactionModel{}); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		store = persistence.NewTransactionRepository(database.DB())
		storeHealthChecker = database.HealthCheck
	}

	// Initialize ingestion lock
	var ingestionLock adapter.IngestionLock
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Error("Redis connection failed", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := client.Close(); err != nil {
				slog.Error("Failed to close redis connection", "error", err)
			}
		}()
		ingestionLock = lock.NewRedisLock(client, cfg.Seed.LockKey, cfg.Seed.LockTTL)
	} else {
		ingestionLock = lock.NewLocalLock()
	}

	// Initialize snapshot source
	var source adapter.SnapshotSource
	if cfg.Seed.SourceFile != "" {
		source = snapshot.NewFileSource(cfg.Seed.SourceFile)
	} else {
		source = snapshot.NewHTTPSource(cfg.Seed.SourceURL, cfg.Seed.Timeout)
	}
	slog.Info("Snapshot source configured", "source", source.Name())

	injector := dependency.NewInjector(cfg, store, ingestionLock, source, storeHealthChecker)
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Background workers stop with the server
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	go injector.RefreshWorker.Start(workerCtx)
	go injector.SeedRateLimiter.StartCleanup(workerCtx)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
