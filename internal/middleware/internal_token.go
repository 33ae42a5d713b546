package middleware

import (
	"net/http"

	"hotelreserve/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// InternalHeader carries the shared secret for service-to-service calls.
const InternalHeader = "X-Internal-Token"

// InternalTokenAuth protects internal endpoints using a static shared token.
func InternalTokenAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal token is not configured")
			c.Abort()
			return
		}

		got := c.GetHeader(InternalHeader)
		if got == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_MISSING", "Internal token header is required")
			c.Abort()
			return
		}

		if got != token {
			response.Error(c, http.StatusForbidden, "AUTH_INVALID", "Invalid internal token")
			c.Abort()
			return
		}

		c.Next()
	}
}
