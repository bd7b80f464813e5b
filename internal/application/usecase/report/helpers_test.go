package report

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sales-report/backend/internal/application/adapter"
	"github.com/sales-report/backend/internal/domain/entity"
	"github.com/sales-report/backend/internal/domain/valueobject"
	"github.com/sales-report/backend/internal/integration/persistence/memory"
)

var errStoreDown = errors.New("connection refused")

// failingStore answers every call with errStoreDown.
type failingStore struct{}

func (failingStore) Find(context.Context, valueobject.TransactionPredicate, int, int) ([]*entity.Transaction, error) {
	return nil, errStoreDown
}

func (failingStore) Count(context.Context, valueobject.TransactionPredicate) (int64, error) {
	return 0, errStoreDown
}

func (failingStore) SumPrice(context.Context, valueobject.TransactionPredicate) (decimal.Decimal, error) {
	return decimal.Zero, errStoreDown
}

func (failingStore) GroupCount(context.Context, valueobject.TransactionPredicate, adapter.GroupField) (map[string]int64, error) {
	return nil, errStoreDown
}

func (s failingStore) View(_ context.Context, fn func(reader adapter.TransactionReader) error) error {
	return fn(s)
}

func (failingStore) ReplaceAll(context.Context, []*entity.Transaction) error {
	return errStoreDown
}

func (failingStore) Ping(context.Context) error {
	return errStoreDown
}

func newTransaction(id int64, title, category, price string, date time.Time, sold bool) *entity.Transaction {
	return &entity.Transaction{
		ID:          id,
		Title:       title,
		Description: title + " description",
		Price:       decimal.RequireFromString(price),
		Category:    category,
		DateOfSale:  date,
		Sold:        sold,
	}
}

// newSeededStore returns a memory store with two March sales (different
// years) and one April sale.
func newSeededStore(t *testing.T) *memory.TransactionStore {
	t.Helper()

	store := memory.NewTransactionStore()
	err := store.ReplaceAll(context.Background(), []*entity.Transaction{
		newTransaction(1, "Cotton Jacket", "men's clothing", "50", time.Date(2021, time.March, 5, 10, 0, 0, 0, time.UTC), true),
		newTransaction(2, "Gold Ring", "jewelery", "150", time.Date(2022, time.March, 20, 10, 0, 0, 0, time.UTC), false),
		newTransaction(3, "Hard Drive", "electronics", "950", time.Date(2021, time.April, 11, 10, 0, 0, 0, time.UTC), true),
	})
	if err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	return store
}

// replacingStore swaps in its replacement dataset as soon as the first view
// opens, so reads that escape the view see the new data.
type replacingStore struct {
	*memory.TransactionStore
	replacement []*entity.Transaction
	once        sync.Once
}

func newReplacingStore(t *testing.T) *replacingStore {
	t.Helper()

	return &replacingStore{
		TransactionStore: newSeededStore(t),
		replacement: []*entity.Transaction{
			newTransaction(10, "Steel Watch", "jewelery", "999", time.Date(2023, time.March, 1, 10, 0, 0, 0, time.UTC), true),
		},
	}
}

func (s *replacingStore) View(ctx context.Context, fn func(reader adapter.TransactionReader) error) error {
	return s.TransactionStore.View(ctx, func(reader adapter.TransactionReader) error {
		var err error
		s.once.Do(func() { err = s.TransactionStore.ReplaceAll(ctx, s.replacement) })
		if err != nil {
			return err
		}
		return fn(reader)
	})
}
