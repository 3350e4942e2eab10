package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/jsandoval/campusmap/internal/core/domain"
	"github.com/jsandoval/campusmap/internal/core/ports"
)

var validRoles = map[string]bool{
	"admin":  true,
	"editor": true,
	"viewer": true,
}

// UserService handles console-account business logic.
type UserService struct {
	users ports.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// GetByID returns a single account.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Create validates and persists a new account. New accounts start active.
func (s *UserService) Create(ctx context.Context, u *domain.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return fmt.Errorf("invalid email %q", u.Email)
	}
	if u.Name == "" {
		return fmt.Errorf("user name must not be empty")
	}
	if u.Role == "" {
		u.Role = "viewer"
	}
	if !validRoles[u.Role] {
		return fmt.Errorf("invalid role %q", u.Role)
	}
	if existing, err := s.users.GetByEmail(ctx, u.Email); err == nil && existing != nil {
		return fmt.Errorf("email %s already registered", u.Email)
	}
	u.Active = true
	return s.users.Create(ctx, u)
}

// SetActive toggles the active flag on an account.
func (s *UserService) SetActive(ctx context.Context, id string, active bool) error {
	return s.users.SetActive(ctx, id, active)
}
