package api

import "github.com/gin-gonic/gin"

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: Basic liveness probe (always returns 200 OK).
//   - /readyz: Readiness probe (depends on the provider client's local
//     resources, e.g. its cache directory).
type HealthHandler struct {
	providerPing func() error // Function to check provider client health
}

// NewHealthHandler constructs a HealthHandler with the provided ping
// function, typically the provider client's Ping method.
func NewHealthHandler(providerPing func() error) *HealthHandler {
	return &HealthHandler{providerPing: providerPing}
}

// Register mounts the health and readiness endpoints into the provided Gin
// router. Both stay outside the API-key gate so orchestrators can probe
// without credentials.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: Returns 200 OK if the ping succeeds, 503 otherwise.
func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/readyz", func(c *gin.Context) {
		if h.providerPing != nil && h.providerPing() != nil {
			c.JSON(503, gin.H{"status": "degraded"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
}
