package adapter

import "context"

// IngestionLock guarantees that at most one ingestion runs at a time.
type IngestionLock interface {
	// TryAcquire attempts to take the lock without blocking.
	// It returns a release function when the lock was taken, or ok=false when
	// another holder owns it.
	TryAcquire(ctx context.Context) (release func(), ok bool, err error)
}
