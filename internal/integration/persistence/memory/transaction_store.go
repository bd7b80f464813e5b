// Package memory implements an in-process transaction store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/sales-report/backend/internal/application/adapter"
	"github.com/sales-report/backend/internal/domain/entity"
	"github.com/sales-report/backend/internal/domain/valueobject"
)

// generation is one immutable version of the store's contents, ordered by ID.
type generation struct {
	transactions []entity.Transaction
}

// TransactionStore keeps the dataset in memory and replaces it by swapping
// whole generations, so readers never observe a partially replaced set.
// It is safe for concurrent use.
type TransactionStore struct {
	current atomic.Pointer[generation]
}

// NewTransactionStore creates an empty in-memory store.
func NewTransactionStore() *TransactionStore {
	s := &TransactionStore{}
	s.current.Store(&generation{})
	return s
}

// Find implements the adapter.TransactionReader interface.
func (s *TransactionStore) Find(ctx context.Context, predicate valueobject.TransactionPredicate, skip, limit int) ([]*entity.Transaction, error) {
	return s.snapshot().Find(ctx, predicate, skip, limit)
}

// Count implements the adapter.TransactionReader interface.
func (s *TransactionStore) Count(ctx context.Context, predicate valueobject.TransactionPredicate) (int64, error) {
	return s.snapshot().Count(ctx, predicate)
}

// SumPrice implements the adapter.TransactionReader interface.
func (s *TransactionStore) SumPrice(ctx context.Context, predicate valueobject.TransactionPredicate) (decimal.Decimal, error) {
	return s.snapshot().SumPrice(ctx, predicate)
}

// GroupCount implements the adapter.TransactionReader interface.
func (s *TransactionStore) GroupCount(ctx context.Context, predicate valueobject.TransactionPredicate, field adapter.GroupField) (map[string]int64, error) {
	return s.snapshot().GroupCount(ctx, predicate, field)
}

// View implements the adapter.TransactionStore interface. The reader holds
// the generation loaded when the view opens.
func (s *TransactionStore) View(ctx context.Context, fn func(reader adapter.TransactionReader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s.snapshot())
}

// ReplaceAll implements the adapter.TransactionStore interface.
func (s *TransactionStore) ReplaceAll(ctx context.Context, transactions []*entity.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	next := make([]entity.Transaction, len(transactions))
	seen := make(map[int64]struct{}, len(transactions))
	for i, t := range transactions {
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("duplicate transaction id %d", t.ID)
		}
		seen[t.ID] = struct{}{}
		next[i] = *t
	}
	sort.Slice(next, func(i, j int) bool { return next[i].ID < next[j].ID })

	s.current.Store(&generation{transactions: next})
	return nil
}

// Ping implements the adapter.TransactionStore interface.
func (s *TransactionStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *TransactionStore) snapshot() *generation {
	return s.current.Load()
}

// Find returns copies of the matching transactions of this generation.
func (g *generation) Find(ctx context.Context, predicate valueobject.TransactionPredicate, skip, limit int) ([]*entity.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if skip < 0 {
		skip = 0
	}

	result := []*entity.Transaction{}
	matched := 0
	for i := range g.transactions {
		t := &g.transactions[i]
		if !predicate.Matches(t) {
			continue
		}
		matched++
		if matched <= skip {
			continue
		}
		if limit > 0 && len(result) >= limit {
			break
		}
		txnCopy := *t
		result = append(result, &txnCopy)
	}
	return result, nil
}

func (g *generation) Count(ctx context.Context, predicate valueobject.TransactionPredicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int64
	for i := range g.transactions {
		if predicate.Matches(&g.transactions[i]) {
			count++
		}
	}
	return count, nil
}

func (g *generation) SumPrice(ctx context.Context, predicate valueobject.TransactionPredicate) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for i := range g.transactions {
		if predicate.Matches(&g.transactions[i]) {
			sum = sum.Add(g.transactions[i].Price)
		}
	}
	return sum, nil
}

func (g *generation) GroupCount(ctx context.Context, predicate valueobject.TransactionPredicate, field adapter.GroupField) (map[string]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var key func(t *entity.Transaction) string
	switch field {
	case adapter.GroupByCategory:
		key = func(t *entity.Transaction) string { return t.Category }
	case adapter.GroupByPriceRange:
		key = func(t *entity.Transaction) string { return valueobject.BucketLabelFor(t.Price) }
	default:
		return nil, fmt.Errorf("unsupported group field %q", field)
	}

	counts := make(map[string]int64)
	for i := range g.transactions {
		t := &g.transactions[i]
		if predicate.Matches(t) {
			counts[key(t)]++
		}
	}
	return counts, nil
}
