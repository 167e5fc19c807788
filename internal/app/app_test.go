package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pricegate/config"
	"pricegate/internal/middleware"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Auth:   config.AuthConfig{SecretKey: "s3cret"},
		Provider: config.ProviderConfig{
			BaseURL:     "http://127.0.0.1:0",
			TimeoutSec:  1,
			CacheDir:    t.TempDir(),
			CacheTTLSec: 60,
		},
	}
}

func TestInitializeApp_HappyPath(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = testConfig(t)

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: %v", err)
	}
	defer cleanup()

	// Health endpoints are mounted and unauthenticated
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", w.Code)
	}

	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w2.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w2.Code)
	}

	// The pricing route sits behind the API-key gate
	w3 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/prices", strings.NewReader(`{"tickers": ["AAPL"]}`))
	router.ServeHTTP(w3, req)
	if w3.Code != http.StatusForbidden {
		t.Fatalf("unauthenticated request status=%d, want 403", w3.Code)
	}
}

func TestInitializeApp_ProviderFailure(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	cfg := testConfig(t)
	cfg.Provider.BaseURL = ""
	config.AppConfig = cfg

	router, cleanup, err := InitializeApp()
	if err == nil || router != nil || cleanup != nil {
		if cleanup != nil {
			cleanup()
		}
		t.Fatalf("expected error from InitializeApp with empty provider base URL")
	}
}

func TestInitializeGateway_AuthFlow(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = testConfig(t)

	handler, cleanup, err := InitializeGateway()
	if err != nil || handler == nil {
		t.Fatalf("InitializeGateway failed: %v", err)
	}
	defer cleanup()
}

func TestInitializeApp_SecretReadPerRequest(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	cfg := testConfig(t)
	cfg.Auth.SecretKey = ""
	config.AppConfig = cfg

	router, cleanup, err := InitializeApp()
	if err != nil {
		t.Fatalf("InitializeApp: %v", err)
	}
	defer cleanup()

	// Unconfigured secret: misconfiguration response
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/prices", strings.NewReader(`{"tickers": ["AAPL"]}`))
	req.Header.Set(middleware.APIKeyHeader, "anything")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", w.Code)
	}

	// Secret arriving later is picked up without rebuilding the router
	config.AppConfig.Auth.SecretKey = "late-secret"
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/prices", strings.NewReader(`{"tickers": ["AAPL"]}`))
	req2.Header.Set(middleware.APIKeyHeader, "late-secret")
	router.ServeHTTP(w2, req2)
	if w2.Code == http.StatusInternalServerError || w2.Code == http.StatusForbidden {
		t.Fatalf("late secret not picked up, status=%d", w2.Code)
	}
}
