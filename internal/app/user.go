package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/drivebay/drivebay/internal/domain"
	"github.com/drivebay/drivebay/internal/infra/audit"
)

// UserService manages registered users.
type UserService struct {
	users   domain.UserRepository
	journal *audit.Recorder
}

// NewUserService wires the service. The journal may be nil.
func NewUserService(users domain.UserRepository, journal *audit.Recorder) *UserService {
	return &UserService{users: users, journal: journal}
}

// Create registers a user. The email address must not already be taken.
func (s *UserService) Create(ctx context.Context, firstName, lastName, email string) (UserView, error) {
	address, err := domain.ParseEmail(email)
	if err != nil {
		return UserView{}, err
	}
	if _, err := s.users.GetByEmail(ctx, address); err == nil {
		return UserView{}, fmt.Errorf("%w: email %q is already registered", domain.ErrConflict, address)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return UserView{}, err
	}

	user, err := domain.NewUser(firstName, lastName, address)
	if err != nil {
		return UserView{}, err
	}
	if err := s.users.Add(ctx, user); err != nil {
		return UserView{}, err
	}
	s.record(ctx, user.ID, "registered", user.Email.String())
	return newUserView(user), nil
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (UserView, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return UserView{}, err
	}
	return newUserView(user), nil
}

// List returns all users ordered by first name.
func (s *UserService) List(ctx context.Context) ([]UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, newUserView(u))
	}
	return views, nil
}

// Update replaces a user's names and email. Moving to an email owned by
// a different user is a conflict.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, firstName, lastName, email string) (UserView, error) {
	address, err := domain.ParseEmail(email)
	if err != nil {
		return UserView{}, err
	}
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return UserView{}, err
	}
	if owner, err := s.users.GetByEmail(ctx, address); err == nil {
		if owner.ID != id {
			return UserView{}, fmt.Errorf("%w: email %q is already registered", domain.ErrConflict, address)
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return UserView{}, err
	}

	if err := user.Update(firstName, lastName, address); err != nil {
		return UserView{}, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return UserView{}, err
	}
	s.record(ctx, id, "updated", user.Email.String())
	return newUserView(user), nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user); err != nil {
		return err
	}
	s.record(ctx, id, "deleted", "")
	return nil
}

func (s *UserService) record(ctx context.Context, id uuid.UUID, action, detail string) {
	if err := s.journal.Record(ctx, "user", id.String(), action, detail); err != nil {
		log.Printf("audit: user %s %s: %v", id, action, err)
	}
}
