package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/drivebay/drivebay/internal/domain"
)

// AuthService authenticates users by email and last name. There are no
// passwords; the check mirrors sign-in against the registered profile.
type AuthService struct {
	users *UserService
}

// NewAuthService wires the service over the user service.
func NewAuthService(users *UserService) *AuthService {
	return &AuthService{users: users}
}

// Register creates a user account, failing on a duplicate email.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email string) (UserView, error) {
	return s.users.Create(ctx, firstName, lastName, email)
}

// Authenticate returns the user whose email and last name both match,
// case-insensitively. Any mismatch, including an unknown email, yields
// the same invalid-credentials error.
func (s *AuthService) Authenticate(ctx context.Context, email, lastName string) (UserView, error) {
	address, err := domain.ParseEmail(email)
	if err != nil {
		return UserView{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	user, err := s.users.users.GetByEmail(ctx, address)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return UserView{}, domain.ErrUnauthorized
		}
		return UserView{}, err
	}
	if !strings.EqualFold(strings.TrimSpace(lastName), user.LastName) {
		return UserView{}, domain.ErrUnauthorized
	}
	return newUserView(user), nil
}
