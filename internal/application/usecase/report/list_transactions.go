// Package report contains the month-scoped report use cases.
package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/sales-report/backend/internal/application/adapter"
	"github.com/sales-report/backend/internal/domain/entity"
	domainerror "github.com/sales-report/backend/internal/domain/error"
	"github.com/sales-report/backend/internal/domain/valueobject"
)

const (
	// DefaultPageSize is the page size used when the caller does not provide one.
	DefaultPageSize = 10
	// MaxPageSize caps the number of transactions returned per page.
	MaxPageSize = 100
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	Month    valueobject.MonthFilter
	Search   string
	Page     int
	PageSize int
}

// ListTransactionsUseCase handles the paginated, searchable listing.
type ListTransactionsUseCase struct {
	store adapter.TransactionStore
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(store adapter.TransactionStore) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		store: store,
	}
}

// Execute returns the requested page of matching transactions and the total match count.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*entity.TransactionPage, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	pageSize := input.PageSize
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	predicate := valueobject.TransactionPredicate{
		Month:  input.Month,
		Search: valueobject.NewSearchFilter(input.Search),
	}

	var (
		total        int64
		transactions = []*entity.Transaction{}
	)
	err := readView(ctx, uc.store, "list transactions", predicate, func(reader adapter.TransactionReader) error {
		var err error
		total, err = reader.Count(ctx, predicate)
		if err != nil {
			return storeFailure("list transactions", predicate, err, "page", input.Page, "per_page", pageSize)
		}

		// Pages past the end are empty. This also bounds the offset below.
		if int64(input.Page) > pageCount(total, pageSize) {
			return nil
		}

		transactions, err = reader.Find(ctx, predicate, (input.Page-1)*pageSize, pageSize)
		if err != nil {
			return storeFailure("list transactions", predicate, err, "page", input.Page, "per_page", pageSize)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	totalPages := int(pageCount(total, pageSize))
	if totalPages == 0 {
		totalPages = 1
	}

	return &entity.TransactionPage{
		Transactions: transactions,
		Total:        total,
		Page:         input.Page,
		PageSize:     pageSize,
		TotalPages:   totalPages,
	}, nil
}

// validateInput validates the pagination parameters.
func (uc *ListTransactionsUseCase) validateInput(input ListTransactionsInput) error {
	if input.Page < 1 {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidPage,
			"page must be greater than or equal to 1",
			domainerror.ErrInvalidPage,
		)
	}

	if input.PageSize <= 0 {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidPageSize,
			"per_page must be greater than 0",
			domainerror.ErrInvalidPageSize,
		)
	}

	return nil
}

// pageCount returns the number of pages needed for total matches.
func pageCount(total int64, pageSize int) int64 {
	return (total + int64(pageSize) - 1) / int64(pageSize)
}

// readView runs fn over one consistent version of the dataset. Errors that
// are not already report errors, such as a failure to open the view, are
// reported as store failures.
func readView(ctx context.Context, store adapter.TransactionStore, operation string, predicate valueobject.TransactionPredicate, fn func(reader adapter.TransactionReader) error) error {
	err := store.View(ctx, fn)
	if err == nil {
		return nil
	}

	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		return err
	}
	return storeFailure(operation, predicate, err)
}

// storeFailure wraps a store error with the operation name and query parameters.
func storeFailure(operation string, predicate valueobject.TransactionPredicate, err error, extra ...any) error {
	message := fmt.Sprintf("%s failed (%s", operation, predicate)
	for i := 0; i+1 < len(extra); i += 2 {
		message += fmt.Sprintf(" %v=%v", extra[i], extra[i+1])
	}
	message += ")"

	return domainerror.NewReportError(
		domainerror.ErrCodeReportStoreFailure,
		message,
		fmt.Errorf("%w: %w", domainerror.ErrStoreUnavailable, err),
	)
}
