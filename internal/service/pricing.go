package service

import (
	"context"
	"errors"
	"fmt"

	"pricegate/internal/domain/models"
	"pricegate/internal/logger"
	"pricegate/internal/pricing"
	"pricegate/internal/provider"
)

// ErrNoProvider is the batch-level failure returned when the service was
// wired without a market-data source. It corresponds to a provider failure
// that happens before any per-ticker work and aborts the whole request.
var ErrNoProvider = errors.New("no market-data provider configured")

// PricingService defines the business logic for resolving a batch of
// tickers into normalized pricing snapshots.
//
// GetPricing partitions the input: every requested ticker lands in exactly
// one of the two returned maps. The error return is reserved for
// batch-level failures; individual ticker failures never abort the batch.
type PricingService interface {
	GetPricing(ctx context.Context, tickers []string) (map[string]*models.PricingInfo, map[string]string, error)
}

type pricingService struct {
	src provider.Source
}

// NewPricingService constructs a PricingService backed by the given source.
func NewPricingService(src provider.Source) PricingService {
	return &pricingService{src: src}
}

// GetPricing resolves each ticker sequentially. Tickers are independent: a
// fetch failure for one is recorded in the errors map and processing moves
// on to the next.
func (s *pricingService) GetPricing(ctx context.Context, tickers []string) (map[string]*models.PricingInfo, map[string]string, error) {
	if s.src == nil {
		return nil, nil, ErrNoProvider
	}

	data := make(map[string]*models.PricingInfo, len(tickers))
	errs := make(map[string]string)

	for _, ticker := range tickers {
		info, err := s.fetchOne(ctx, ticker)
		if err != nil {
			logger.L().Warn().Str("ticker", ticker).Err(err).Msg("ticker fetch failed")
			errs[ticker] = fmt.Sprintf("error processing %s: %v", ticker, err)
			continue
		}
		data[ticker] = info
		logger.L().Debug().Str("ticker", ticker).Msg("ticker resolved")
	}

	return data, errs, nil
}

// fetchOne retrieves and normalizes the snapshot for a single ticker.
func (s *pricingService) fetchOne(ctx context.Context, ticker string) (*models.PricingInfo, error) {
	quote, err := s.src.Quote(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if !quote.HasData() {
		return nil, fmt.Errorf("no valid data found for ticker %q", ticker)
	}

	currency := quote.Currency
	currentPrice := pricing.AdjustForCurrency(quote.CurrentPrice, currency)

	// A failed dividend lookup degrades the yield to null; the rest of the
	// snapshot is still worth returning.
	var yield *float64
	dividends, err := s.src.Dividends(ctx, ticker)
	if err != nil {
		logger.L().Warn().Str("ticker", ticker).Err(err).Msg("dividend history unavailable")
	} else {
		yield = pricing.DividendYield(currency, currentPrice, dividends)
	}

	return &models.PricingInfo{
		CurrentPrice:      pricing.Round2(currentPrice),
		TargetLowPrice:    pricing.Round2(pricing.AdjustForCurrency(quote.TargetLowPrice, currency)),
		TargetMeanPrice:   pricing.Round2(pricing.AdjustForCurrency(quote.TargetMeanPrice, currency)),
		TargetMedianPrice: pricing.Round2(pricing.AdjustForCurrency(quote.TargetMedianPrice, currency)),
		FiftyTwoWeekLow:   pricing.Round2(pricing.AdjustForCurrency(quote.FiftyTwoWeekLow, currency)),
		FiftyTwoWeekHigh:  pricing.Round2(pricing.AdjustForCurrency(quote.FiftyTwoWeekHigh, currency)),
		DividendYield:     pricing.Round2(yield),
	}, nil
}
