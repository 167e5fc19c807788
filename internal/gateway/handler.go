// Package gateway adapts the pricing service to AWS API-Gateway proxy
// events, producing the classic {statusCode, headers, body} envelope. The
// semantics mirror the HTTP route exactly; only the transport differs.
package gateway

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"pricegate/internal/domain/dto"
	"pricegate/internal/logger"
	"pricegate/internal/service"
)

// apiKeyHeader is matched case-insensitively: API Gateway forwards header
// names lowercased, direct invocations may not.
const apiKeyHeader = "x-api-key"

var responseHeaders = map[string]string{
	"Content-Type":                "application/json",
	"Access-Control-Allow-Origin": "*",
}

// Handler serves pricing requests arriving as API-Gateway proxy events.
type Handler struct {
	svc    service.PricingService
	secret func() string
}

// NewHandler constructs a Handler around the pricing service and a secret
// accessor (read per invocation so late-injected secrets are picked up).
func NewHandler(svc service.PricingService, secret func() string) *Handler {
	return &Handler{svc: svc, secret: secret}
}

// Handle processes one proxy event.
//
// Check order matches the error-handling design: misconfiguration first
// (500, before the presented key is inspected), then auth (403), then
// payload validation (400), then the batch fetch (500 on batch-level
// failure). Per-ticker failures are reported inline with status 200.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	expected := h.secret()
	if expected == "" {
		logger.L().Error().Msg("security key is not configured")
		return errorResponse(http.StatusInternalServerError, "internal server error: misconfigured security"), nil
	}

	presented := headerValue(event.Headers, apiKeyHeader)
	if subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) != 1 {
		logger.L().Warn().Msg("forbidden: invalid or missing API key")
		return errorResponse(http.StatusForbidden, "Forbidden"), nil
	}

	tickers, err := dto.ParseTickers([]byte(event.Body))
	if err != nil {
		return errorResponse(http.StatusBadRequest, err.Error()), nil
	}

	logger.L().Info().Strs("tickers", tickers).Msg("processing pricing event")

	data, tickerErrs, err := h.svc.GetPricing(ctx, tickers)
	if err != nil {
		logger.L().Error().Err(err).Msg("batch fetch failed")
		return errorResponse(http.StatusInternalServerError, "unexpected failure: "+err.Error()), nil
	}

	body, err := json.Marshal(dto.NewPricingResponse(data, tickerErrs))
	if err != nil {
		return errorResponse(http.StatusInternalServerError, "unexpected failure: "+err.Error()), nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    responseHeaders,
		Body:       string(body),
	}, nil
}

// errorResponse builds the {"error": "<message>"} failure body.
func errorResponse(status int, message string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"error": message})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    responseHeaders,
		Body:       string(body),
	}
}

// headerValue looks up a header by name ignoring case.
func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
