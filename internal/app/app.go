package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"pricegate/config"
	"pricegate/internal/api"
	"pricegate/internal/gateway"
	"pricegate/internal/service"
)

// secretKey reads the configured API-key secret at call time, so requests
// always see the current configuration.
func secretKey() string { return config.AppConfig.Auth.SecretKey }

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the market-data provider client (with its on-disk cache).
//   - Creates the pricing service layer.
//   - Creates the HTTP handler layer to handle requests.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to release resources.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Build the provider client
	// indirection for unit testing
	client, err := providerOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize provider: %w", err)
	}

	// Initialize service layer (business logic)
	svc := service.NewPricingService(client)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc)

	// Setup Gin router with routes behind the API-key gate
	router := api.NewRouter(handler, secretKey)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(client.Ping)
	healthHandler.Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		client.Close()
	}

	return router, cleanup, nil
}

// InitializeGateway wires the same dependency graph for serverless
// invocation, returning the API-Gateway event handler instead of a router.
func InitializeGateway() (*gateway.Handler, func(), error) {
	cfg := config.AppConfig

	client, err := providerOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize provider: %w", err)
	}

	svc := service.NewPricingService(client)
	handler := gateway.NewHandler(svc, secretKey)

	cleanup := func() {
		client.Close()
	}

	return handler, cleanup, nil
}
