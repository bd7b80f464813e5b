package report

import (
	"context"
	"sort"

	"github.com/sales-report/backend/internal/application/adapter"
	"github.com/sales-report/backend/internal/domain/entity"
	"github.com/sales-report/backend/internal/domain/valueobject"
)

// GetCategoryBreakdownInput represents the input for the category breakdown.
type GetCategoryBreakdownInput struct {
	Month valueobject.MonthFilter
}

// GetCategoryBreakdownUseCase counts the month's transactions per category.
type GetCategoryBreakdownUseCase struct {
	store adapter.TransactionStore
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(store adapter.TransactionStore) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{
		store: store,
	}
}

// Execute returns the categories with at least one match, most frequent first.
// Ties are ordered by category name.
func (uc *GetCategoryBreakdownUseCase) Execute(ctx context.Context, input GetCategoryBreakdownInput) ([]entity.CategoryCount, error) {
	return uc.compute(ctx, uc.store, valueobject.MonthPredicate(input.Month))
}

func (uc *GetCategoryBreakdownUseCase) compute(ctx context.Context, reader adapter.TransactionReader, predicate valueobject.TransactionPredicate) ([]entity.CategoryCount, error) {
	counts, err := reader.GroupCount(ctx, predicate, adapter.GroupByCategory)
	if err != nil {
		return nil, storeFailure("category breakdown", predicate, err)
	}

	categories := make([]entity.CategoryCount, 0, len(counts))
	for category, count := range counts {
		if count == 0 {
			continue
		}
		categories = append(categories, entity.CategoryCount{
			Category: category,
			Count:    count,
		})
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count != categories[j].Count {
			return categories[i].Count > categories[j].Count
		}
		return categories[i].Category < categories[j].Category
	})

	return categories, nil
}
