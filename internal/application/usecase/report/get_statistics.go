package report

import (
	"context"

	"github.com/sales-report/backend/internal/application/adapter"
	"github.com/sales-report/backend/internal/domain/entity"
	"github.com/sales-report/backend/internal/domain/valueobject"
)

// GetStatisticsInput represents the input for the month statistics.
type GetStatisticsInput struct {
	Month valueobject.MonthFilter
}

// GetStatisticsUseCase computes the total sale amount and sold/unsold counts.
type GetStatisticsUseCase struct {
	store adapter.TransactionStore
}

// NewGetStatisticsUseCase creates a new GetStatisticsUseCase instance.
func NewGetStatisticsUseCase(store adapter.TransactionStore) *GetStatisticsUseCase {
	return &GetStatisticsUseCase{
		store: store,
	}
}

// Execute returns the statistics for the month. A month without sales yields
// a zero-valued result. The total and both counts come from the same version
// of the dataset.
func (uc *GetStatisticsUseCase) Execute(ctx context.Context, input GetStatisticsInput) (*entity.SalesStatistics, error) {
	predicate := valueobject.MonthPredicate(input.Month)

	var stats *entity.SalesStatistics
	err := readView(ctx, uc.store, "statistics", predicate, func(reader adapter.TransactionReader) error {
		var err error
		stats, err = uc.compute(ctx, reader, predicate)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (uc *GetStatisticsUseCase) compute(ctx context.Context, reader adapter.TransactionReader, predicate valueobject.TransactionPredicate) (*entity.SalesStatistics, error) {
	total, err := reader.SumPrice(ctx, predicate)
	if err != nil {
		return nil, storeFailure("statistics", predicate, err)
	}

	sold, err := reader.Count(ctx, predicate.WithSold(true))
	if err != nil {
		return nil, storeFailure("statistics", predicate, err)
	}

	unsold, err := reader.Count(ctx, predicate.WithSold(false))
	if err != nil {
		return nil, storeFailure("statistics", predicate, err)
	}

	return &entity.SalesStatistics{
		TotalAmount: total.Round(2),
		SoldCount:   sold,
		UnsoldCount: unsold,
	}, nil
}
