package report

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sales-report/backend/internal/application/adapter"
	"github.com/sales-report/backend/internal/domain/entity"
	"github.com/sales-report/backend/internal/domain/valueobject"
)

// GetCombinedReportInput represents the input for the combined report.
type GetCombinedReportInput struct {
	Month valueobject.MonthFilter
}

// GetCombinedReportUseCase assembles statistics, price range and categories.
type GetCombinedReportUseCase struct {
	statisticsUseCase *GetStatisticsUseCase
	priceRangeUseCase *GetPriceRangeUseCase
	categoryUseCase   *GetCategoryBreakdownUseCase
}

// NewGetCombinedReportUseCase creates a new GetCombinedReportUseCase instance.
func NewGetCombinedReportUseCase(
	statisticsUseCase *GetStatisticsUseCase,
	priceRangeUseCase *GetPriceRangeUseCase,
	categoryUseCase *GetCategoryBreakdownUseCase,
) *GetCombinedReportUseCase {
	return &GetCombinedReportUseCase{
		statisticsUseCase: statisticsUseCase,
		priceRangeUseCase: priceRangeUseCase,
		categoryUseCase:   categoryUseCase,
	}
}

// Execute runs the three reports concurrently over one view of the dataset
// under the same month filter. The first failure cancels the remaining reports.
func (uc *GetCombinedReportUseCase) Execute(ctx context.Context, input GetCombinedReportInput) (*entity.CombinedReport, error) {
	var (
		statistics *entity.SalesStatistics
		priceRange []entity.PriceRangeCount
		categories []entity.CategoryCount
	)

	predicate := valueobject.MonthPredicate(input.Month)

	err := readView(ctx, uc.statisticsUseCase.store, "combined report", predicate, func(reader adapter.TransactionReader) error {
		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			var err error
			statistics, err = uc.statisticsUseCase.compute(gctx, reader, predicate)
			return err
		})

		g.Go(func() error {
			var err error
			priceRange, err = uc.priceRangeUseCase.compute(gctx, reader, predicate)
			return err
		})

		g.Go(func() error {
			var err error
			categories, err = uc.categoryUseCase.compute(gctx, reader, predicate)
			return err
		})

		return g.Wait()
	})
	if err != nil {
		return nil, err
	}

	return &entity.CombinedReport{
		Statistics: *statistics,
		PriceRange: priceRange,
		Categories: categories,
	}, nil
}
