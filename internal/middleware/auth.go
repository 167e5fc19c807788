package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"pricegate/internal/logger"
)

// APIKeyHeader is the request header carrying the shared secret.
// Header lookup is case-insensitive per net/http canonicalization, so
// gateways that lowercase header names are handled transparently.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth gates requests on a shared-secret API key.
//
// The secret is read through a function so the check always sees the
// current configuration. Order of checks matters and fails closed:
//
//  1. Unconfigured secret: every request is answered 500 ("misconfigured
//     security") before the presented key is even looked at, so the
//     response never reveals whether a key would have been accepted.
//  2. Missing or mismatched key: 403. Comparison is constant-time.
func APIKeyAuth(secret func() string) gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := secret()
		if expected == "" {
			logger.L().Error().Msg("security key is not configured")
			AbortWithError(c, http.StatusInternalServerError, "internal server error: misconfigured security", nil)
			return
		}

		presented := c.GetHeader(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) != 1 {
			logger.L().Warn().Str("client_ip", c.ClientIP()).Msg("forbidden: invalid or missing API key")
			AbortWithError(c, http.StatusForbidden, "Forbidden", nil)
			return
		}

		c.Next()
	}
}
