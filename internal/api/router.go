package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pricegate/internal/middleware"
)

// NewRouter creates a Gin engine with routes configured.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery,
//     ErrorHandler, RateLimiter).
//   - Adds request timeout handling (30 seconds: tickers are resolved
//     sequentially, so the budget scales with batch size).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1) behind API-key auth.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in
//     app.InitializeApp() and stay outside the auth gate.
//
// Parameters:
//   - handler (*Handler): The HTTP handler with business logic.
//   - secret (func() string): Accessor for the configured API key.
//
// Returns:
//   - *gin.Engine: Configured Gin router.
func NewRouter(handler *Handler, secret func() string) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(),
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 (API-key gated) ───────────────────
	v1 := router.Group("/api/v1")
	v1.Use(middleware.APIKeyAuth(secret))
	{
		v1.POST("/prices", handler.GetPrices)
	}

	return router
}
