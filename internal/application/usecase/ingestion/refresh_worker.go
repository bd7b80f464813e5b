package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sales-report/backend/internal/application/adapter"
	domainerror "github.com/sales-report/backend/internal/domain/error"
	"github.com/sales-report/backend/internal/domain/valueobject"
)

// RefreshWorkerConfig holds configuration for the refresh worker.
type RefreshWorkerConfig struct {
	SeedOnStartup bool
	Interval      time.Duration // Zero disables periodic refresh
}

// RefreshWorker seeds an empty store at startup and optionally re-ingests
// the snapshot periodically.
type RefreshWorker struct {
	seedUseCase   *SeedTransactionsUseCase
	store         adapter.TransactionStore
	seedOnStartup bool
	interval      time.Duration
}

// NewRefreshWorker creates a new refresh worker.
func NewRefreshWorker(seedUseCase *SeedTransactionsUseCase, store adapter.TransactionStore, config RefreshWorkerConfig) *RefreshWorker {
	return &RefreshWorker{
		seedUseCase:   seedUseCase,
		store:         store,
		seedOnStartup: config.SeedOnStartup,
		interval:      config.Interval,
	}
}

// Start runs the worker. It blocks until the context is cancelled, or returns
// right after the startup seed when no interval is configured.
func (w *RefreshWorker) Start(ctx context.Context) {
	if w.seedOnStartup {
		w.seedIfEmpty(ctx)
	}

	if w.interval <= 0 {
		return
	}

	slog.Info("Refresh worker started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Refresh worker shutting down")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

// seedIfEmpty loads the snapshot only when the store holds no transactions.
func (w *RefreshWorker) seedIfEmpty(ctx context.Context) {
	count, err := w.store.Count(ctx, valueobject.TransactionPredicate{})
	if err != nil {
		slog.Error("Failed to count transactions before startup seed", "error", err)
		return
	}
	if count > 0 {
		slog.Info("Store already populated, skipping startup seed", "transactions", count)
		return
	}
	w.refresh(ctx)
}

func (w *RefreshWorker) refresh(ctx context.Context) {
	output, err := w.seedUseCase.Execute(ctx)
	if err != nil {
		if errors.Is(err, domainerror.ErrIngestionInProgress) {
			slog.Info("Skipping refresh, ingestion already running")
			return
		}
		slog.Error("Scheduled ingestion failed", "error", err)
		return
	}
	slog.Info("Scheduled ingestion finished", "loaded", output.Loaded)
}
