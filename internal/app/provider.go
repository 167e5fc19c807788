package app

import (
	"fmt"
	"time"

	"pricegate/config"
	"pricegate/internal/logger"
	"pricegate/internal/provider/cache"
	"pricegate/internal/provider/yahoo"
)

// providerOpener is an indirection for unit testing; defaults to initProvider.
var providerOpener = initProvider

// initProvider builds the Yahoo Finance client from configuration.
//
// Behavior:
//   - Creates the on-disk cache directory for dividend histories.
//   - A cache that cannot be created is logged and skipped: the client
//     still works, it just refetches histories every time.
//   - Applies the configured request timeout and base URL.
//
// Returns:
//   - *yahoo.Client: the provider client used by the pricing service.
//   - error: only when the base URL is unusable; cache problems are soft.
func initProvider(cfg config.Config) (*yahoo.Client, error) {
	if cfg.Provider.BaseURL == "" {
		return nil, fmt.Errorf("provider base URL is empty")
	}

	timeout := time.Duration(cfg.Provider.TimeoutSec) * time.Second

	var opts []yahoo.Option
	disk, err := cache.NewDisk(cfg.Provider.CacheDir, time.Duration(cfg.Provider.CacheTTLSec)*time.Second)
	if err != nil {
		logger.L().Warn().Err(err).Str("dir", cfg.Provider.CacheDir).Msg("dividend cache disabled")
	} else {
		logger.L().Info().Str("dir", disk.Dir()).Msg("dividend cache enabled")
		opts = append(opts, yahoo.WithCache(disk))
	}

	return yahoo.New(cfg.Provider.BaseURL, timeout, opts...), nil
}
