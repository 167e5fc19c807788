package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pricegate/internal/domain/dto"
)

// ErrorHandler converts errors attached to the gin context by downstream
// handlers into the standard JSON error envelope. Handlers that already
// wrote a response are left alone.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("internal server error", err))
}

// AbortWithError stops the handler chain and writes the error envelope with
// the given status code.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
