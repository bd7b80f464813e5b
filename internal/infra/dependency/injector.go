// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/sales-report/backend/config"
	"github.com/sales-report/backend/internal/application/adapter"
	"github.com/sales-report/backend/internal/application/usecase/ingestion"
	"github.com/sales-report/backend/internal/application/usecase/report"
	"github.com/sales-report/backend/internal/infra/server/router"
	"github.com/sales-report/backend/internal/integration/entrypoint/controller"
	"github.com/sales-report/backend/internal/integration/entrypoint/middleware"
)

// Injector holds all application dependencies.
type Injector struct {
	Config          *config.Config
	Store           adapter.TransactionStore
	Router          *router.Router
	SeedUseCase     *ingestion.SeedTransactionsUseCase
	RefreshWorker   *ingestion.RefreshWorker
	SeedRateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
// storeHealthChecker may be nil, in which case the store is pinged directly.
func NewInjector(
	cfg *config.Config,
	store adapter.TransactionStore,
	lock adapter.IngestionLock,
	source adapter.SnapshotSource,
	storeHealthChecker func() bool,
) *Injector {
	// Create report use cases
	listTransactionsUseCase := report.NewListTransactionsUseCase(store)
	getStatisticsUseCase := report.NewGetStatisticsUseCase(store)
	getPriceRangeUseCase := report.NewGetPriceRangeUseCase(store)
	getCategoryBreakdownUseCase := report.NewGetCategoryBreakdownUseCase(store)
	getCombinedReportUseCase := report.NewGetCombinedReportUseCase(
		getStatisticsUseCase,
		getPriceRangeUseCase,
		getCategoryBreakdownUseCase,
	)

	// Create ingestion use cases
	seedUseCase := ingestion.NewSeedTransactionsUseCase(source, store, lock)
	refreshWorker := ingestion.NewRefreshWorker(seedUseCase, store, ingestion.RefreshWorkerConfig{
		SeedOnStartup: cfg.Seed.OnStartup,
		Interval:      cfg.Seed.RefreshInterval,
	})

	if storeHealthChecker == nil {
		storeHealthChecker = pingChecker(store, cfg.Server.ReadTimeout)
	}

	// Create controllers
	healthController := controller.NewHealthController(cfg.Database.Driver, storeHealthChecker)
	reportController := controller.NewReportController(
		listTransactionsUseCase,
		getStatisticsUseCase,
		getPriceRangeUseCase,
		getCategoryBreakdownUseCase,
		getCombinedReportUseCase,
	)
	seedController := controller.NewSeedController(seedUseCase)

	// Create middleware
	seedRateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit.SeedMaxAttempts, cfg.RateLimit.SeedWindow)

	r := router.NewRouter(healthController, reportController, seedController, seedRateLimiter)

	return &Injector{
		Config:          cfg,
		Store:           store,
		Router:          r,
		SeedUseCase:     seedUseCase,
		RefreshWorker:   refreshWorker,
		SeedRateLimiter: seedRateLimiter,
	}
}
