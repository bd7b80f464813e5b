package report

import (
	"context"

	"github.com/sales-report/backend/internal/application/adapter"
	"github.com/sales-report/backend/internal/domain/entity"
	"github.com/sales-report/backend/internal/domain/valueobject"
)

// GetPriceRangeInput represents the input for the price histogram.
type GetPriceRangeInput struct {
	Month valueobject.MonthFilter
}

// GetPriceRangeUseCase builds the price histogram for a month.
type GetPriceRangeUseCase struct {
	store adapter.TransactionStore
}

// NewGetPriceRangeUseCase creates a new GetPriceRangeUseCase instance.
func NewGetPriceRangeUseCase(store adapter.TransactionStore) *GetPriceRangeUseCase {
	return &GetPriceRangeUseCase{
		store: store,
	}
}

// Execute returns one entry per bucket in ascending order, including empty buckets.
func (uc *GetPriceRangeUseCase) Execute(ctx context.Context, input GetPriceRangeInput) ([]entity.PriceRangeCount, error) {
	return uc.compute(ctx, uc.store, valueobject.MonthPredicate(input.Month))
}

func (uc *GetPriceRangeUseCase) compute(ctx context.Context, reader adapter.TransactionReader, predicate valueobject.TransactionPredicate) ([]entity.PriceRangeCount, error) {
	counts, err := reader.GroupCount(ctx, predicate, adapter.GroupByPriceRange)
	if err != nil {
		return nil, storeFailure("price range", predicate, err)
	}

	histogram := make([]entity.PriceRangeCount, len(valueobject.PriceBuckets))
	for i, bucket := range valueobject.PriceBuckets {
		histogram[i] = entity.PriceRangeCount{
			Range: bucket.Label,
			Count: counts[bucket.Label],
		}
	}

	return histogram, nil
}
