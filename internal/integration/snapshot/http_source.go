// Package snapshot provides the external sources of the transaction dataset.
package snapshot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	domainerror "github.com/sales-report/backend/internal/domain/error"
)

// maxSnapshotSize bounds the size of a downloaded snapshot.
const maxSnapshotSize = 32 << 20

// HTTPSource downloads the snapshot from a URL.
type HTTPSource struct {
	client *http.Client
	url    string
}

// NewHTTPSource creates a new HTTP snapshot source.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

// Name implements the adapter.SnapshotSource interface.
func (s *HTTPSource) Name() string {
	return s.url
}

// Fetch implements the adapter.SnapshotSource interface.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domainerror.NewIngestionError(
			domainerror.ErrCodeSnapshotBadStatus,
			fmt.Sprintf("snapshot source answered with status %d", resp.StatusCode),
			domainerror.ErrSnapshotFetchFailed,
		)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSnapshotSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > maxSnapshotSize {
		return nil, fmt.Errorf("snapshot exceeds %d bytes", maxSnapshotSize)
	}

	return body, nil
}
