package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pricegate/internal/domain/dto"
	"pricegate/internal/middleware"
	"pricegate/internal/service"
)

// Handler provides the HTTP handlers for the pricing endpoints.
//
// Responsibilities:
//   - Parse and validate the incoming ticker payload
//   - Delegate batch resolution to the pricing service
//   - Translate the partitioned result into the response DTO
//   - Return structured JSON with the appropriate HTTP status code
type Handler struct {
	svc service.PricingService
}

// NewHandler constructs a Handler around the given pricing service.
func NewHandler(svc service.PricingService) *Handler {
	return &Handler{svc: svc}
}

// GetPrices handles POST /api/v1/prices requests.
//
// Responses:
//   - 200 OK: PricingResponse. Partial per-ticker failures still return
//     200; failed tickers appear under "errors".
//   - 400 Bad Request: payload carries no usable tickers list.
//   - 403 Forbidden / 500 misconfiguration: produced by the auth
//     middleware before this handler runs.
//   - 500 Internal Server Error: batch-level provider failure.
//
// GetPrices godoc
// @Summary      Resolve pricing for a batch of tickers
// @Description  Fetches quote snapshots and trailing-year dividend yields for each requested ticker
// @Tags         prices
// @Accept       json
// @Produce      json
// @Param        request  body      object  true  "JSON object with a tickers array"  SchemaExample({"tickers": ["AAPL", "VOD.L"]})
// @Param        X-API-Key  header  string  true  "Shared-secret API key"
// @Success      200  {object}  dto.PricingResponse  "Processed, possibly with partial errors"
// @Failure      400  {object}  dto.ErrorResponse    "Validation failure"
// @Failure      403  {object}  dto.ErrorResponse    "Auth failure"
// @Failure      500  {object}  dto.ErrorResponse    "Misconfiguration or batch failure"
// @Router       /api/v1/prices [post]
func (h *Handler) GetPrices(c *gin.Context) {
	// ─── Read and parse the payload ───────────────────────────
	raw, err := c.GetRawData()
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "unable to read request body", err)
		return
	}

	tickers, err := dto.ParseTickers(raw)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	// ─── Resolve the batch (with request context) ─────────────
	data, tickerErrs, err := h.svc.GetPricing(c.Request.Context(), tickers)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "unexpected failure", err)
		return
	}

	// ─── Build and return response DTO ────────────────────────
	c.Header("Access-Control-Allow-Origin", "*")
	c.JSON(http.StatusOK, dto.NewPricingResponse(data, tickerErrs))
}
