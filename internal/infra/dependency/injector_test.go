package dependency

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sales-report/backend/config"
	"github.com/sales-report/backend/internal/integration/lock"
	"github.com/sales-report/backend/internal/integration/persistence/memory"
)

type staticSource struct {
	data []byte
}

func (s staticSource) Fetch(context.Context) ([]byte, error) {
	return s.data, nil
}

func (s staticSource) Name() string {
	return "static"
}

func newTestConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Environment: "test"},
		Database:  config.DatabaseConfig{Driver: config.StoreDriverMemory},
		RateLimit: config.RateLimitConfig{SeedMaxAttempts: 5},
	}
}

func TestNewInjector_ServesSeededData(t *testing.T) {
	t.Setenv("ENV", "test")

	source := staticSource{data: []byte(`[
		{"id":1,"title":"Jacket","price":50,"description":"warm","category":"men's clothing","sold":true,"dateOfSale":"2021-03-05T10:00:00Z"},
		{"id":2,"title":"Ring","price":150,"description":"gold","category":"jewelery","sold":false,"dateOfSale":"2022-03-20T10:00:00Z"}
	]`)}
	inj := NewInjector(newTestConfig(), memory.NewTransactionStore(), lock.NewLocalLock(), source, nil)
	engine := inj.Router.Setup(inj.Config.Server.Environment)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/seed", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected seed to succeed, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/statistics?month=March", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected statistics to succeed, got %d", rec.Code)
	}

	var stats struct {
		TotalAmount float64 `json:"totalAmount"`
		SoldCount   int64   `json:"soldCount"`
		UnsoldCount int64   `json:"unsoldCount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode statistics: %v", err)
	}
	if stats.TotalAmount != 200 || stats.SoldCount != 1 || stats.UnsoldCount != 1 {
		t.Errorf("unexpected statistics %+v", stats)
	}

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected healthy store, got %d", rec.Code)
	}
}

type unreachableStore struct {
	*memory.TransactionStore
}

func (unreachableStore) Ping(context.Context) error {
	return errors.New("connection refused")
}

func TestPingChecker(t *testing.T) {
	if !pingChecker(memory.NewTransactionStore(), 0)() {
		t.Error("expected the memory store to be healthy")
	}
	if pingChecker(unreachableStore{memory.NewTransactionStore()}, time.Hour)() {
		t.Error("expected an unreachable store to be unhealthy")
	}
}
