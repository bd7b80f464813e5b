package mock

import (
	"net/http"
	"net/http/httptest"
	"sync"
)

// SnapshotPath is the path the snapshot mock serves the dataset on.
const SnapshotPath = "/product_transaction.json"

// ApiMock serves a configurable snapshot document and records every request.
type ApiMock struct {
	mu       sync.Mutex
	server   *httptest.Server
	status   int
	body     []byte
	requests int
}

// NewApiServer creates a snapshot mock answering 200 with an empty array.
func NewApiServer() *ApiMock {
	return &ApiMock{
		status: http.StatusOK,
		body:   []byte("[]"),
	}
}

// Start starts the underlying HTTP server.
func (a *ApiMock) Start() {
	a.server = httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				a.mu.Lock()
				a.requests++
				status, body := a.status, a.body
				a.mu.Unlock()

				if r.URL.Path != SnapshotPath {
					w.WriteHeader(http.StatusNotFound)
					return
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_, _ = w.Write(body)
			},
		),
	)
}

// Close stops the server.
func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

// GetUrl returns the full URL of the snapshot document.
func (a *ApiMock) GetUrl() string {
	return a.server.URL + SnapshotPath
}

// SetResponse changes what the next requests receive.
func (a *ApiMock) SetResponse(status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = status
	a.body = []byte(body)
}

// RequestCount returns how many requests were received.
func (a *ApiMock) RequestCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.requests
}
