package auth

import (
	"context"

	"hotelreserve/internal/domain"
	"hotelreserve/internal/pkg/jwt"
)

// UserRepository is the slice of the user store the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, int64, error)
}

type TokenService interface {
	GenerateToken(userID int64, email, role string) (string, error)
	ValidateToken(token string) (*jwt.Claims, error)
}
