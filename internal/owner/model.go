package owner

import (
	"net/http"
	"time"

	"github.com/openbookings/appointment-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "OwnerNotFound", "owner not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "EmailAlreadyUsed", "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "InvalidCredentials", "invalid email or password")
	ErrInactiveOwner      = apperror.New(http.StatusUnauthorized, "InvalidCredentials", "invalid email or password")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "ValidationError", "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "ValidationError", "password must be at least 8 characters")
)

// Owner is a calendar holder: the account whose weekly availability is
// published and whose calendar reservations occupy.
type Owner struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
