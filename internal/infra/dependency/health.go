package dependency

import (
	"context"
	"time"

	"github.com/sales-report/backend/internal/application/adapter"
)

// pingChecker adapts the store's Ping to the health controller's checker.
func pingChecker(store adapter.TransactionStore, timeout time.Duration) func() bool {
	if timeout <= 0 || timeout > 2*time.Second {
		timeout = 2 * time.Second
	}
	return func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return store.Ping(ctx) == nil
	}
}
