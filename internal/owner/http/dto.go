package http

import (
	"time"

	"github.com/openbookings/appointment-backend/internal/owner"
)

// RegisterRequest defines the payload for owner registration.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required"`
}

// LoginRequest defines the payload for owner login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OwnerResponse is the shape of owner data returned in API responses.
type OwnerResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"display_name"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// NewOwnerResponse converts domain owner.Owner to the API representation.
func NewOwnerResponse(o *owner.Owner) OwnerResponse {
	return OwnerResponse{
		ID:          o.ID,
		Email:       o.Email,
		DisplayName: o.DisplayName,
		CreatedAt:   o.CreatedAt,
		LastLoginAt: o.LastLoginAt,
	}
}

// LoginResponse returns the access token and owner info.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	Owner       OwnerResponse `json:"owner"`
}

// MeResponse returns the current owner info.
type MeResponse struct {
	Owner OwnerResponse `json:"owner"`
}
