package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"pricegate/internal/domain/models"
	"pricegate/internal/middleware"
	"pricegate/internal/service"
)

// mockPricingServiceRouter exercises the full router wiring.
type mockPricingServiceRouter struct {
	data map[string]*models.PricingInfo
}

func (m *mockPricingServiceRouter) GetPricing(_ context.Context, _ []string) (map[string]*models.PricingInfo, map[string]string, error) {
	return m.data, map[string]string{}, nil
}

var _ service.PricingService = (*mockPricingServiceRouter)(nil)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &mockPricingServiceRouter{data: map[string]*models.PricingInfo{
		"AAPL": {CurrentPrice: fp(189.84)},
	}}
	r := NewRouter(NewHandler(svc), func() string { return "s3cret" })

	req := httptest.NewRequest(http.MethodPost, "/api/v1/prices", strings.NewReader(`{"tickers": ["AAPL"]}`))
	req.Header.Set(middleware.APIKeyHeader, "s3cret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body=%s)", w.Code, w.Body.String())
	}

	// RequestID middleware must inject the header
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}

	var out struct {
		Data map[string]*models.PricingInfo `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if out.Data["AAPL"] == nil || *out.Data["AAPL"].CurrentPrice != 189.84 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestNewRouter_AuthGate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		secret string
		key    string
		want   int
	}{
		{name: "no key", secret: "s3cret", key: "", want: http.StatusForbidden},
		{name: "wrong key", secret: "s3cret", key: "nope", want: http.StatusForbidden},
		{name: "unconfigured secret", secret: "", key: "s3cret", want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			secret := tc.secret
			r := NewRouter(NewHandler(&mockPricingServiceRouter{}), func() string { return secret })

			req := httptest.NewRequest(http.MethodPost, "/api/v1/prices", strings.NewReader(`{"tickers": ["AAPL"]}`))
			if tc.key != "" {
				req.Header.Set(middleware.APIKeyHeader, tc.key)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Fatalf("status=%d, want %d", w.Code, tc.want)
			}
			if strings.Contains(w.Body.String(), `"data"`) {
				t.Fatalf("rejected request must not reach the handler: %s", w.Body.String())
			}
		})
	}
}
