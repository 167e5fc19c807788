package dto

import "pricegate/internal/domain/models"

// PricingResponse represents the JSON structure returned by the
// POST /api/v1/prices endpoint.
//
// Every requested ticker appears in exactly one of the two maps: Data holds
// the normalized snapshot for tickers that resolved, Errors holds a message
// for tickers that did not. Both keys are always present in the JSON, as
// empty objects when nothing landed in them.
type PricingResponse struct {
	Data   map[string]*models.PricingInfo `json:"data"`
	Errors map[string]string              `json:"errors"`
}

// NewPricingResponse builds a response, replacing nil maps with empty ones
// so the JSON always carries both keys as objects rather than null.
func NewPricingResponse(data map[string]*models.PricingInfo, errs map[string]string) PricingResponse {
	if data == nil {
		data = map[string]*models.PricingInfo{}
	}
	if errs == nil {
		errs = map[string]string{}
	}
	return PricingResponse{Data: data, Errors: errs}
}
