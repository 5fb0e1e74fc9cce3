package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Email is a validated, normalized email address. Comparison is
// case-insensitive.
type Email string

// ParseEmail validates and normalizes an email address.
func ParseEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", validationf("email address is required")
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", validationf("email address %q is not valid", trimmed)
	}
	return Email(addr.Address), nil
}

// EqualFold reports case-insensitive equality with another address.
func (e Email) EqualFold(other Email) bool {
	return strings.EqualFold(string(e), string(other))
}

func (e Email) String() string { return string(e) }

// User is a registered catalog user.
type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     Email     `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser validates and creates a user.
func NewUser(firstName, lastName string, email Email) (*User, error) {
	u := &User{ID: uuid.New(), Email: email}
	if err := u.setNames(firstName, lastName); err != nil {
		return nil, err
	}
	if u.Email == "" {
		return nil, validationf("email address is required")
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	return u, nil
}

// Update replaces the user's names and email after validation.
func (u *User) Update(firstName, lastName string, email Email) error {
	if err := u.setNames(firstName, lastName); err != nil {
		return err
	}
	if email == "" {
		return validationf("email address is required")
	}
	u.Email = email
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) setNames(firstName, lastName string) error {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	if first == "" {
		return validationf("first name is required")
	}
	if last == "" {
		return validationf("last name is required")
	}
	u.FirstName = first
	u.LastName = last
	return nil
}

// Clone returns a copy safe to hand across the repository boundary.
func (u *User) Clone() *User {
	cp := *u
	return &cp
}
