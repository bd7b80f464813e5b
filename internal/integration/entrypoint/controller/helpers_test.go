package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/sales-report/backend/internal/application/adapter"
	"github.com/sales-report/backend/internal/domain/entity"
	"github.com/sales-report/backend/internal/domain/valueobject"
	"github.com/sales-report/backend/internal/integration/persistence/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errStoreDown = errors.New("connection refused")

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

func newSeededStore(t *testing.T) *memory.TransactionStore {
	t.Helper()

	store := memory.NewTransactionStore()
	err := store.ReplaceAll(context.Background(), []*entity.Transaction{
		{ID: 1, Title: "Cotton Jacket", Description: "warm", Price: decimal.RequireFromString("50"), Category: "men's clothing", DateOfSale: time.Date(2021, time.March, 5, 10, 0, 0, 0, time.UTC), Sold: true},
		{ID: 2, Title: "Gold Ring", Description: "shiny", Price: decimal.RequireFromString("150"), Category: "jewelery", DateOfSale: time.Date(2022, time.March, 20, 10, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "USB Drive", Description: "fast", Price: decimal.RequireFromString("950"), Category: "electronics", DateOfSale: time.Date(2021, time.April, 11, 10, 0, 0, 0, time.UTC), Sold: true},
	})
	if err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	return store
}

func performRequest(t *testing.T, engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()

	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

