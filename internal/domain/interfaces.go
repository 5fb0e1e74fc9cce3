package domain

import (
	"context"

	"github.com/google/uuid"
)

// ─── Repository Contracts ───────────────────────────────────────────────────
// Infrastructure implements these; the orchestration layer depends on them.
// Implementations must serialize access per collection, return snapshots
// (no shared mutable aliasing with stored state), and honor an already
// cancelled context before touching the collection.

// Repository is the common contract for a single entity collection.
type Repository[T any] interface {
	// Get returns the entity by id, or an ErrNotFound-wrapped error.
	Get(ctx context.Context, id uuid.UUID) (T, error)

	// List returns all entities in the collection's defined order.
	List(ctx context.Context) ([]T, error)

	// Add inserts a new entity.
	Add(ctx context.Context, entity T) error

	// Update replaces the stored entity with the same identifier. Unknown
	// identifiers are ignored.
	Update(ctx context.Context, entity T) error

	// Delete removes the entity with the same identifier, if present.
	Delete(ctx context.Context, entity T) error
}

// AccountRepository lists accounts by owner name, case-insensitive.
type AccountRepository interface {
	Repository[*Account]
}

// CarRepository lists cars newest model year first.
type CarRepository interface {
	Repository[*Car]
}

// ListingRepository lists listings newest first.
type ListingRepository interface {
	Repository[*Listing]

	// ListByCarID returns all listings referencing the car.
	ListByCarID(ctx context.Context, carID uuid.UUID) ([]*Listing, error)
}

// PaymentIntentRepository lists payment intents newest first.
type PaymentIntentRepository interface {
	Repository[*PaymentIntent]

	// ListByListingID returns all intents created for the listing.
	ListByListingID(ctx context.Context, listingID uuid.UUID) ([]*PaymentIntent, error)
}

// UserRepository lists users by first name.
type UserRepository interface {
	Repository[*User]

	// GetByEmail returns the user with the address, case-insensitive, or an
	// ErrNotFound-wrapped error.
	GetByEmail(ctx context.Context, email Email) (*User, error)
}

// ─── Payment Gateway Contract ───────────────────────────────────────────────

// GatewayCreateResult is the provider-side handle pair for a new intent.
type GatewayCreateResult struct {
	ProviderIntentID string
	ClientSecret     string
}

// PaymentGateway abstracts the external payment provider. Calls are remote
// and can fail independently of domain state; implementations must never be
// invoked while a repository lock is held.
type PaymentGateway interface {
	// CreateIntent registers a provider-side intent and returns its handle
	// and client secret.
	CreateIntent(ctx context.Context, amount Money, currency, description string) (GatewayCreateResult, error)

	// ConfirmIntent confirms the provider-side intent. Confirming an
	// unknown or canceled handle fails with an ErrGateway-wrapped error.
	ConfirmIntent(ctx context.Context, providerIntentID string) error

	// CancelIntent cancels the provider-side intent. Canceling an unknown
	// or succeeded handle fails with an ErrGateway-wrapped error.
	CancelIntent(ctx context.Context, providerIntentID string) error
}
