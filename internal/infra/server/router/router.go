// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/sales-report/backend/internal/integration/entrypoint/controller"
	"github.com/sales-report/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	healthController *controller.HealthController
	reportController *controller.ReportController
	seedController   *controller.SeedController
	seedRateLimiter  *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	reportController *controller.ReportController,
	seedController *controller.SeedController,
	seedRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController: healthController,
		reportController: reportController,
		seedController:   seedController,
		seedRateLimiter:  seedRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()
	r.engine.Use(middleware.CORS())

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/health", r.healthController.Check)

		if r.seedController != nil {
			seed := v1.Group("/seed")
			if r.seedRateLimiter != nil {
				seed.Use(r.seedRateLimiter.Middleware())
			}
			{
				seed.GET("", r.seedController.Seed)
				seed.POST("", r.seedController.Seed)
			}
		}

		if r.reportController != nil {
			v1.GET("/transactions", r.reportController.List)
			v1.GET("/statistics", r.reportController.Statistics)
			v1.GET("/price-range", r.reportController.PriceRange)
			v1.GET("/categories", r.reportController.Categories)
			v1.GET("/combined-data", r.reportController.Combined)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
