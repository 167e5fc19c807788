package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// It is composed of smaller structs that represent different concerns of the
// system: HTTP server settings, the API-key secret, and the upstream
// market-data provider.
//
// Example YAML/ENV equivalent:
//
//	SERVER_PORT=8080
//	SECRET_KEY=changeme
//	PROVIDER_BASE_URL=https://query1.finance.yahoo.com
//	PROVIDER_TIMEOUT_SEC=10
//	CACHE_DIR=/tmp/pricegate_cache
//	CACHE_TTL_SEC=900
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Auth     AuthConfig     // API-key gating
	Provider ProviderConfig // Upstream quote provider settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// AuthConfig holds the shared secret expected in the X-API-Key header.
//
// SecretKey is intentionally allowed to be empty at startup: the auth
// middleware fails closed and answers every request with a misconfiguration
// error until the secret is set, which is preferable to refusing to boot in
// environments where the secret arrives after deploy.
type AuthConfig struct {
	SecretKey string
}

// ProviderConfig defines how the market-data provider client is built.
//
// Fields:
//   - BaseURL: scheme+host of the quote API (overridable for tests).
//   - TimeoutSec: per-request timeout in seconds.
//   - CacheDir: on-disk cache directory used transparently by the client.
//   - CacheTTLSec: how long cached dividend histories stay fresh.
type ProviderConfig struct {
	BaseURL     string
	TimeoutSec  int
	CacheDir    string
	CacheTTLSec int
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from a .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all fields that have a sensible one.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Calls validateConfig() to ensure required fields are present.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("PROVIDER_BASE_URL", "https://query1.finance.yahoo.com")
	viper.SetDefault("PROVIDER_TIMEOUT_SEC", 10)
	viper.SetDefault("CACHE_DIR", filepath.Join(os.TempDir(), "pricegate_cache"))
	viper.SetDefault("CACHE_TTL_SEC", 900)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Auth: AuthConfig{
			SecretKey: viper.GetString("SECRET_KEY"),
		},
		Provider: ProviderConfig{
			BaseURL:     viper.GetString("PROVIDER_BASE_URL"),
			TimeoutSec:  viper.GetInt("PROVIDER_TIMEOUT_SEC"),
			CacheDir:    viper.GetString("CACHE_DIR"),
			CacheTTLSec: viper.GetInt("CACHE_TTL_SEC"),
		},
	}

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// SECRET_KEY is deliberately not on this list; see AuthConfig.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Provider.BaseURL == "" {
		missing = append(missing, "PROVIDER_BASE_URL")
	}
	if AppConfig.Provider.TimeoutSec <= 0 {
		missing = append(missing, "PROVIDER_TIMEOUT_SEC")
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
