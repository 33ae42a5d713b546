package clients

import (
	"context"
	"net/http"

	"hotelreserve/internal/middleware"
)

// AuthClient verifies tokens against the auth service. The gateway and
// other services can use it instead of sharing the JWT secret.
type AuthClient struct {
	baseClient
}

func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{baseClient: newBaseClient(baseURL, "")}
}

type TokenInfo struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (c *AuthClient) VerifyToken(ctx context.Context, token string) (*TokenInfo, error) {
	var data TokenInfo
	body := map[string]string{"token": token}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/verify-token", body, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Verify adapts VerifyToken to the middleware.TokenVerifier interface.
func (c *AuthClient) Verify(ctx context.Context, token string) (*middleware.TokenClaims, error) {
	info, err := c.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return &middleware.TokenClaims{UserID: info.UserID, Email: info.Email, Role: info.Role}, nil
}
