package adapter

import "context"

// SnapshotSource defines the external provider of the full transaction dataset.
type SnapshotSource interface {
	// Fetch returns the raw JSON snapshot. The caller validates its contents.
	Fetch(ctx context.Context) ([]byte, error)

	// Name describes the source for logs (URL or file path).
	Name() string
}
