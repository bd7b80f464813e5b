// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sales-report/backend/internal/domain/entity"
	"github.com/sales-report/backend/internal/domain/valueobject"
)

// GroupField identifies the attribute GroupCount groups by.
type GroupField string

const (
	// GroupByCategory groups matches by their category label.
	GroupByCategory GroupField = "category"
	// GroupByPriceRange groups matches by the label of their price bucket.
	GroupByPriceRange GroupField = "price_range"
)

// TransactionReader reads matching transactions. Implementations must
// evaluate predicates exactly as valueobject.TransactionPredicate.Matches does.
type TransactionReader interface {
	// Find returns up to limit matching transactions after skipping skip, ordered by ID.
	Find(ctx context.Context, predicate valueobject.TransactionPredicate, skip, limit int) ([]*entity.Transaction, error)

	// Count returns the number of matching transactions.
	Count(ctx context.Context, predicate valueobject.TransactionPredicate) (int64, error)

	// SumPrice returns the sum of the price of matching transactions, zero when none match.
	SumPrice(ctx context.Context, predicate valueobject.TransactionPredicate) (decimal.Decimal, error)

	// GroupCount counts matching transactions per value of the given field.
	// Values with no matches are absent from the result.
	GroupCount(ctx context.Context, predicate valueobject.TransactionPredicate, field GroupField) (map[string]int64, error)
}

// TransactionStore defines the record store the report engine reads from.
// Each reader call on the store itself sees one version of the dataset; View
// extends that guarantee to a sequence of calls.
type TransactionStore interface {
	TransactionReader

	// View runs fn with a reader pinned to the version of the dataset current
	// when the view opens. A concurrent ReplaceAll is not visible inside fn.
	// The reader may be used from several goroutines and must not escape fn.
	View(ctx context.Context, fn func(reader TransactionReader) error) error

	// ReplaceAll atomically replaces the whole population with the given transactions.
	// On error the previous population is left intact.
	ReplaceAll(ctx context.Context, transactions []*entity.Transaction) error

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}
