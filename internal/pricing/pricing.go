// Package pricing holds the pure normalization math applied to raw provider
// data: minor-unit currency adjustment, trailing-year dividend yield, and
// two-decimal rounding. Nothing here touches the network or the clock zone
// of the host; the dividend window is always evaluated in America/New_York.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"pricegate/internal/provider"
)

// penceCurrency is the one minor-unit currency code the upstream feed uses:
// London-listed quotes arrive in pence, 1/100 of a pound.
const penceCurrency = "GBp"

// marketTZ is the reference zone for the trailing-year dividend window.
const marketTZ = "America/New_York"

// AdjustForCurrency converts a price quoted in a minor-unit currency to its
// principal unit. Only pence ("GBp") needs adjustment; every other currency
// code passes through unchanged. A nil price stays nil.
func AdjustForCurrency(price *float64, currency string) *float64 {
	if price == nil {
		return nil
	}
	v := *price
	if currency == penceCurrency {
		v /= 100
	}
	return &v
}

// DividendYield computes the trailing-twelve-month dividend yield as a
// percentage of currentPrice.
//
// Rules:
//   - nil when currentPrice is nil or zero, when the series is empty, or
//     when any payment lacks a timestamp (the series is not time-indexed).
//   - payments are filtered to the trailing year relative to "now" in
//     America/New_York; if none qualify the yield is a defined 0.0.
//   - the summed payments go through AdjustForCurrency before division, so
//     pence-denominated dividends compare against a pound price.
//
// Failures inside the computation (an unloadable timezone database) degrade
// to nil rather than propagate.
func DividendYield(currency string, currentPrice *float64, dividends []provider.Dividend) *float64 {
	if currentPrice == nil || *currentPrice == 0 || len(dividends) == 0 {
		return nil
	}
	for _, d := range dividends {
		if d.PaidAt.IsZero() {
			return nil
		}
	}

	loc, err := time.LoadLocation(marketTZ)
	if err != nil {
		return nil
	}
	cutoff := time.Now().In(loc).AddDate(-1, 0, 0)

	sum := decimal.Zero
	qualifying := 0
	for _, d := range dividends {
		if d.PaidAt.After(cutoff) {
			sum = sum.Add(decimal.NewFromFloat(d.Amount))
			qualifying++
		}
	}
	if qualifying == 0 {
		zero := 0.0
		return &zero
	}

	annual, _ := sum.Float64()
	adjusted := AdjustForCurrency(&annual, currency)
	if adjusted == nil {
		return nil
	}
	yield := *adjusted / *currentPrice * 100
	return &yield
}

// Round2 rounds to two decimal places, propagating nil.
func Round2(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r, _ := decimal.NewFromFloat(*v).Round(2).Float64()
	return &r
}
