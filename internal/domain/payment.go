package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the lifecycle state of a payment intent.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentSucceeded PaymentStatus = "Succeeded"
	PaymentCanceled  PaymentStatus = "Canceled"
)

// PaymentIntent tracks a listing's sale through an external provider.
// Succeeded and Canceled are mutually absorbing: neither state can ever
// reach the other. Provider details, once applied, are immutable.
type PaymentIntent struct {
	ID               uuid.UUID     `json:"id"`
	ListingID        uuid.UUID     `json:"listing_id"`
	Amount           Money         `json:"amount"`
	Currency         string        `json:"currency"`
	Status           PaymentStatus `json:"status"`
	ProviderIntentID string        `json:"provider_intent_id,omitempty"`
	ClientSecret     string        `json:"client_secret,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// NewPaymentIntent creates a Pending intent for the given listing.
func NewPaymentIntent(listingID uuid.UUID, amount Money, currency string) (*PaymentIntent, error) {
	if listingID == uuid.Nil {
		return nil, validationf("listing id is required for a payment intent")
	}
	if !amount.IsPositive() {
		return nil, validationf("payment amount must be greater than zero")
	}
	if amount.ExceedsCap() {
		return nil, validationf("payment amount must be less than or equal to 1,000,000,000")
	}
	cur, err := normalizeCurrency(currency)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &PaymentIntent{
		ID:        uuid.New(),
		ListingID: listingID,
		Amount:    amount,
		Currency:  cur,
		Status:    PaymentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ApplyProviderDetails sets the provider handle and client secret. Both are
// required, and once set they are immutable: re-applying identical values is
// a no-op, different values are rejected.
func (p *PaymentIntent) ApplyProviderDetails(providerIntentID, clientSecret string) error {
	id := strings.TrimSpace(providerIntentID)
	secret := strings.TrimSpace(clientSecret)
	if id == "" {
		return validationf("provider intent id is required")
	}
	if secret == "" {
		return validationf("client secret is required")
	}
	if p.ProviderIntentID != "" || p.ClientSecret != "" {
		if p.ProviderIntentID == id && p.ClientSecret == secret {
			return nil
		}
		return conflictf("provider details are already applied")
	}
	p.ProviderIntentID = id
	p.ClientSecret = secret
	p.touch()
	return nil
}

// MarkAsSucceeded moves Pending to Succeeded. A succeeded intent absorbs the
// call; a canceled intent rejects it.
func (p *PaymentIntent) MarkAsSucceeded() error {
	if p.Status == PaymentCanceled {
		return conflictf("canceled payment intents cannot be marked as succeeded")
	}
	if p.Status == PaymentSucceeded {
		return nil
	}
	p.Status = PaymentSucceeded
	p.touch()
	return nil
}

// Cancel moves Pending to Canceled. A canceled intent absorbs the call; a
// succeeded intent rejects it.
func (p *PaymentIntent) Cancel() error {
	if p.Status == PaymentSucceeded {
		return conflictf("succeeded payment intents cannot be canceled")
	}
	if p.Status == PaymentCanceled {
		return nil
	}
	p.Status = PaymentCanceled
	p.touch()
	return nil
}

// Clone returns a copy safe to hand across the repository boundary.
func (p *PaymentIntent) Clone() *PaymentIntent {
	cp := *p
	return &cp
}

func (p *PaymentIntent) touch() {
	p.UpdatedAt = time.Now().UTC()
}

func normalizeCurrency(currency string) (string, error) {
	trimmed := strings.TrimSpace(currency)
	if trimmed == "" {
		return "", validationf("currency is required")
	}
	normalized := strings.ToUpper(trimmed)
	if len(normalized) < 3 || len(normalized) > 6 {
		return "", validationf("currency must be between 3 and 6 characters")
	}
	for _, r := range normalized {
		if r < 'A' || r > 'Z' {
			return "", validationf("currency must contain only letters")
		}
	}
	return normalized, nil
}
