package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ListingStatus is the lifecycle state of a marketplace listing.
type ListingStatus string

const (
	ListingActive   ListingStatus = "Active"
	ListingSold     ListingStatus = "Sold"
	ListingArchived ListingStatus = "Archived"
)

// Listing binds a car to an asking price and a lifecycle status. Archived
// is terminal: once archived, no field changes and no transition leaves the
// state. The listing references a car but does not own it.
type Listing struct {
	ID          uuid.UUID     `json:"id"`
	CarID       uuid.UUID     `json:"car_id"`
	AskingPrice Money         `json:"asking_price"`
	Description string        `json:"description,omitempty"`
	Status      ListingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

const maxListingDescriptionLen = 1000

// NewListing creates a listing in the Active state.
func NewListing(carID uuid.UUID, askingPrice Money, description string) (*Listing, error) {
	if carID == uuid.Nil {
		return nil, validationf("car id is required to create a listing")
	}
	price, err := validateAskingPrice(askingPrice)
	if err != nil {
		return nil, err
	}
	desc, err := normalizeListingDescription(description)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Listing{
		ID:          uuid.New(),
		CarID:       carID,
		AskingPrice: price,
		Description: desc,
		Status:      ListingActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateAskingPrice replaces the asking price. Legal from Active or Sold.
func (l *Listing) UpdateAskingPrice(askingPrice Money) error {
	if err := l.ensureNotArchived(); err != nil {
		return err
	}
	price, err := validateAskingPrice(askingPrice)
	if err != nil {
		return err
	}
	l.AskingPrice = price
	l.touch()
	return nil
}

// UpdateDescription replaces the description. Legal from Active or Sold.
func (l *Listing) UpdateDescription(description string) error {
	if err := l.ensureNotArchived(); err != nil {
		return err
	}
	desc, err := normalizeListingDescription(description)
	if err != nil {
		return err
	}
	l.Description = desc
	l.touch()
	return nil
}

// MarkAsSold moves Active to Sold. Calling it on a listing that is already
// Sold is a no-op; archived listings reject the transition.
func (l *Listing) MarkAsSold() error {
	if l.Status == ListingArchived {
		return conflictf("archived listings cannot be marked as sold")
	}
	if l.Status == ListingSold {
		return nil
	}
	l.Status = ListingSold
	l.touch()
	return nil
}

// Archive moves any non-archived listing to Archived. Idempotent.
func (l *Listing) Archive() error {
	if l.Status == ListingArchived {
		return nil
	}
	l.Status = ListingArchived
	l.touch()
	return nil
}

// Activate reactivates a Sold listing. Calling it on an Active listing is a
// no-op; archived listings reject the transition.
func (l *Listing) Activate() error {
	if l.Status == ListingArchived {
		return conflictf("archived listings cannot be reactivated")
	}
	if l.Status == ListingActive {
		return nil
	}
	l.Status = ListingActive
	l.touch()
	return nil
}

// Clone returns a copy safe to hand across the repository boundary.
func (l *Listing) Clone() *Listing {
	cp := *l
	return &cp
}

func (l *Listing) ensureNotArchived() error {
	if l.Status == ListingArchived {
		return conflictf("archived listings cannot be modified")
	}
	return nil
}

func (l *Listing) touch() {
	l.UpdatedAt = time.Now().UTC()
}

func validateAskingPrice(price Money) (Money, error) {
	if !price.IsPositive() {
		return Money{}, validationf("asking price must be greater than zero")
	}
	if price.ExceedsCap() {
		return Money{}, validationf("asking price must be less than or equal to 1,000,000,000")
	}
	return price, nil
}

func normalizeListingDescription(description string) (string, error) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > maxListingDescriptionLen {
		return "", validationf("description cannot exceed %d characters", maxListingDescriptionLen)
	}
	return trimmed, nil
}
