package middleware

import (
	"context"
	"net/http"
	"strings"

	"hotelreserve/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// TokenClaims is the identity a verifier vouches for.
type TokenClaims struct {
	UserID int64
	Email  string
	Role   string
}

// TokenVerifier checks a bearer token with whoever owns it, typically the
// auth service.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*TokenClaims, error)
}

// RemoteAuth is Auth for services that do not hold the JWT secret: the
// token is verified through the auth service instead of locally.
func RemoteAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}
