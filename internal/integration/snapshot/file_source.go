package snapshot

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads the snapshot from a local JSON file.
type FileSource struct {
	path string
}

// NewFileSource creates a new file snapshot source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implements the adapter.SnapshotSource interface.
func (s *FileSource) Name() string {
	return "file://" + s.path
}

// Fetch implements the adapter.SnapshotSource interface.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return data, nil
}
