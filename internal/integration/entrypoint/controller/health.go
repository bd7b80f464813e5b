package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	storeHealthChecker func() bool
	storeDriver        string
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Store     string `json:"store"`
	Driver    string `json:"driver"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(storeDriver string, storeHealthChecker func() bool) *HealthController {
	return &HealthController{
		storeHealthChecker: storeHealthChecker,
		storeDriver:        storeDriver,
	}
}

// Check handles GET /health requests.
// A reachable store answers 200, an unreachable one 503.
func (h *HealthController) Check(c *gin.Context) {
	status := "ok"
	storeStatus := "connected"
	code := http.StatusOK
	if h.storeHealthChecker == nil || !h.storeHealthChecker() {
		status = "degraded"
		storeStatus = "disconnected"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Store:     storeStatus,
		Driver:    h.storeDriver,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
