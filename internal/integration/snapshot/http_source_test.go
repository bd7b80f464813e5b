package snapshot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	domainerror "github.com/sales-report/backend/internal/domain/error"
)

func TestHTTPSource_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if accept := r.Header.Get("Accept"); accept != "application/json" {
			t.Errorf("expected Accept application/json, got %q", accept)
		}
		_, _ = w.Write([]byte(`[{"id":1}]`))
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL, time.Second)
	if source.Name() != server.URL {
		t.Errorf("expected name %q, got %q", server.URL, source.Name())
	}

	data, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `[{"id":1}]` {
		t.Errorf("unexpected body %q", data)
	}
}

func TestHTTPSource_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewHTTPSource(server.URL, time.Second).Fetch(context.Background())

	var ingErr *domainerror.IngestionError
	if !errors.As(err, &ingErr) {
		t.Fatalf("expected an IngestionError, got %v", err)
	}
	if ingErr.Code != domainerror.ErrCodeSnapshotBadStatus {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeSnapshotBadStatus, ingErr.Code)
	}
	if !strings.Contains(ingErr.Message, "503") {
		t.Errorf("expected the status in the message, got %q", ingErr.Message)
	}
}

func TestHTTPSource_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := NewHTTPSource(server.URL, 50*time.Millisecond).Fetch(context.Background())
	if err == nil {
		t.Fatal("expected a timeout error")
	}
}

func TestHTTPSource_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	if _, err := NewHTTPSource(url, time.Second).Fetch(context.Background()); err == nil {
		t.Fatal("expected an error for an unreachable source")
	}
}
