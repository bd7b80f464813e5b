// Package lock implements the ingestion lock.
package lock

import (
	"context"
	"sync"
)

// LocalLock serializes ingestions inside a single process.
type LocalLock struct {
	mu sync.Mutex
}

// NewLocalLock creates a new in-process ingestion lock.
func NewLocalLock() *LocalLock {
	return &LocalLock{}
}

// TryAcquire implements the adapter.IngestionLock interface.
func (l *LocalLock) TryAcquire(ctx context.Context) (func(), bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if !l.mu.TryLock() {
		return nil, false, nil
	}

	var once sync.Once
	return func() { once.Do(l.mu.Unlock) }, true, nil
}
