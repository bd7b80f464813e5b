package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sales-report/backend/internal/application/adapter"
	domainerror "github.com/sales-report/backend/internal/domain/error"
)

// SeedTransactionsOutput represents the result of a successful ingestion.
type SeedTransactionsOutput struct {
	RunID    uuid.UUID
	Loaded   int
	Source   string
	Duration time.Duration
}

// SeedTransactionsUseCase replaces the store's contents with a fresh snapshot.
type SeedTransactionsUseCase struct {
	source adapter.SnapshotSource
	store  adapter.TransactionStore
	lock   adapter.IngestionLock
}

// NewSeedTransactionsUseCase creates a new SeedTransactionsUseCase instance.
func NewSeedTransactionsUseCase(
	source adapter.SnapshotSource,
	store adapter.TransactionStore,
	lock adapter.IngestionLock,
) *SeedTransactionsUseCase {
	return &SeedTransactionsUseCase{
		source: source,
		store:  store,
		lock:   lock,
	}
}

// Execute fetches, validates and loads the snapshot. The store is only
// touched once the whole snapshot has been validated, and the replacement
// itself is atomic, so a failure at any step leaves the previous dataset.
func (uc *SeedTransactionsUseCase) Execute(ctx context.Context) (*SeedTransactionsOutput, error) {
	release, ok, err := uc.lock.TryAcquire(ctx)
	if err != nil {
		return nil, domainerror.NewIngestionError(
			domainerror.ErrCodeIngestionLockError,
			"failed to acquire ingestion lock",
			err,
		)
	}
	if !ok {
		return nil, domainerror.NewIngestionError(
			domainerror.ErrCodeIngestionInProgress,
			"another ingestion is already running",
			domainerror.ErrIngestionInProgress,
		)
	}
	defer release()

	runID := uuid.New()
	start := time.Now()
	logger := slog.With("run_id", runID.String(), "source", uc.source.Name())
	logger.Info("Ingestion started")

	data, err := uc.source.Fetch(ctx)
	if err != nil {
		logger.Error("Failed to fetch snapshot", "error", err)
		return nil, asFetchError(err)
	}

	transactions, err := ParseSnapshot(data)
	if err != nil {
		logger.Error("Snapshot rejected", "error", err)
		return nil, err
	}

	if err := uc.store.ReplaceAll(ctx, transactions); err != nil {
		logger.Error("Failed to replace transactions", "error", err)
		return nil, domainerror.NewIngestionError(
			domainerror.ErrCodeSnapshotLoadFailed,
			"failed to load snapshot, previous dataset kept",
			fmt.Errorf("%w: %w", domainerror.ErrSnapshotLoadFailed, err),
		)
	}

	duration := time.Since(start)
	logger.Info("Ingestion completed",
		"loaded", len(transactions),
		"duration_ms", duration.Milliseconds(),
	)

	return &SeedTransactionsOutput{
		RunID:    runID,
		Loaded:   len(transactions),
		Source:   uc.source.Name(),
		Duration: duration,
	}, nil
}

// asFetchError keeps coded errors from the source and wraps anything else.
func asFetchError(err error) error {
	var ingErr *domainerror.IngestionError
	if errors.As(err, &ingErr) {
		return ingErr
	}
	return domainerror.NewIngestionError(
		domainerror.ErrCodeSnapshotFetchFailed,
		"failed to fetch snapshot",
		fmt.Errorf("%w: %w", domainerror.ErrSnapshotFetchFailed, err),
	)
}
