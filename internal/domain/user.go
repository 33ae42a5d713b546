package domain

import "time"

type UserRole string

const (
	RoleGuest        UserRole = "guest"
	RoleRegistered   UserRole = "registered"
	RolePremium      UserRole = "premium"
	RoleAdmin        UserRole = "admin"
	RoleHotelManager UserRole = "hotel_manager"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone,omitempty"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
