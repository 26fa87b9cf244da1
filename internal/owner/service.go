package owner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openbookings/appointment-backend/internal/auth"
)

// Service defines business logic related to owner accounts.
type Service interface {
	Register(ctx context.Context, email, password, displayName string) (*Owner, error)
	Login(ctx context.Context, email, password string) (*Owner, error)
	GetByID(ctx context.Context, id string) (*Owner, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

// NewService creates a new owner Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, email, password, displayName string) (*Owner, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" {
		return nil, ErrEmailRequired
	}

	if len(password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	// Check if email is already used.
	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		// Found an existing owner.
		return nil, ErrEmailAlreadyUsed
	}
	// If the error is something other than "not found", propagate it.
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	// Hash the password.
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var displayNamePtr *string
	if strings.TrimSpace(displayName) != "" {
		d := strings.TrimSpace(displayName)
		displayNamePtr = &d
	}

	o := &Owner{
		Email:        cleanEmail,
		PasswordHash: hash,
		DisplayName:  displayNamePtr,
		IsActive:     true,
	}

	// The unique index on email backstops the pre-check under concurrent
	// registrations; the loser sees ErrEmailAlreadyUsed from the repository.
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*Owner, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	o, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch owner by email: %w", err)
	}

	if !o.IsActive {
		return nil, ErrInactiveOwner
	}

	// Compare password hash.
	if err := s.hasher.Compare(o.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Update last_login_at, best effort; a failure here must not fail the login.
	now := time.Now().UTC()
	_ = s.repo.UpdateLastLogin(ctx, o.ID, now)

	return o, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Owner, error) {
	return s.repo.GetByID(ctx, id)
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
