package models

// PricingInfo is the normalized pricing snapshot for a single ticker.
//
// Every field is optional: a nil pointer marshals as JSON null, mirroring
// gaps in the provider data (not every security has analyst targets or pays
// dividends). Values are currency-adjusted and rounded to two decimals
// before the struct is built; it is never mutated afterwards.
//
// swagger:model PricingInfo
type PricingInfo struct {
	CurrentPrice      *float64 `json:"current_price" example:"189.84"`
	TargetLowPrice    *float64 `json:"target_low_price" example:"150.00"`
	TargetMeanPrice   *float64 `json:"target_mean_price" example:"205.13"`
	TargetMedianPrice *float64 `json:"target_median_price" example:"210.00"`
	FiftyTwoWeekLow   *float64 `json:"fifty_two_week_low" example:"124.17"`
	FiftyTwoWeekHigh  *float64 `json:"fifty_two_week_high" example:"199.62"`
	DividendYield     *float64 `json:"dividend_yield" example:"0.50"`
}
