package memstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/drivebay/drivebay/internal/domain"
)

// AccountStore and CarStore are plain generic stores; the remaining
// collections carry extra query methods.
type (
	AccountStore = Store[*domain.Account]
	CarStore     = Store[*domain.Car]
)

// NewAccountStore lists accounts by owner name, case-insensitive.
func NewAccountStore() *AccountStore {
	return New("account",
		func(a *domain.Account) uuid.UUID { return a.ID },
		func(a *domain.Account) *domain.Account { return a.Clone() },
		func(a, b *domain.Account) bool {
			return strings.ToLower(a.OwnerName) < strings.ToLower(b.OwnerName)
		})
}

// NewCarStore lists cars newest model year first.
func NewCarStore() *CarStore {
	return New("car",
		func(c *domain.Car) uuid.UUID { return c.ID },
		func(c *domain.Car) *domain.Car { return c.Clone() },
		func(a, b *domain.Car) bool { return a.Year > b.Year })
}

// ListingStore lists listings newest first and supports lookup by car.
type ListingStore struct {
	*Store[*domain.Listing]
}

// NewListingStore creates an empty listing collection.
func NewListingStore() *ListingStore {
	return &ListingStore{Store: New("listing",
		func(l *domain.Listing) uuid.UUID { return l.ID },
		func(l *domain.Listing) *domain.Listing { return l.Clone() },
		func(a, b *domain.Listing) bool { return a.CreatedAt.After(b.CreatedAt) })}
}

// ListByCarID returns all listings referencing the car, newest first.
func (s *ListingStore) ListByCarID(ctx context.Context, carID uuid.UUID) ([]*domain.Listing, error) {
	return s.Select(ctx, func(l *domain.Listing) bool { return l.CarID == carID })
}

// PaymentIntentStore lists intents newest first and supports lookup by
// listing.
type PaymentIntentStore struct {
	*Store[*domain.PaymentIntent]
}

// NewPaymentIntentStore creates an empty payment intent collection.
func NewPaymentIntentStore() *PaymentIntentStore {
	return &PaymentIntentStore{Store: New("payment intent",
		func(p *domain.PaymentIntent) uuid.UUID { return p.ID },
		func(p *domain.PaymentIntent) *domain.PaymentIntent { return p.Clone() },
		func(a, b *domain.PaymentIntent) bool { return a.CreatedAt.After(b.CreatedAt) })}
}

// ListByListingID returns all intents created for the listing, newest first.
func (s *PaymentIntentStore) ListByListingID(ctx context.Context, listingID uuid.UUID) ([]*domain.PaymentIntent, error) {
	return s.Select(ctx, func(p *domain.PaymentIntent) bool { return p.ListingID == listingID })
}

// UserStore lists users by first name and supports lookup by email.
type UserStore struct {
	*Store[*domain.User]
}

// NewUserStore creates an empty user collection.
func NewUserStore() *UserStore {
	return &UserStore{Store: New("user",
		func(u *domain.User) uuid.UUID { return u.ID },
		func(u *domain.User) *domain.User { return u.Clone() },
		func(a, b *domain.User) bool { return a.FirstName < b.FirstName })}
}

// GetByEmail returns the user with the address, case-insensitive.
func (s *UserStore) GetByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	matches, err := s.Select(ctx, func(u *domain.User) bool { return u.Email.EqualFold(email) })
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: user %q", domain.ErrNotFound, email)
	}
	return matches[0], nil
}
