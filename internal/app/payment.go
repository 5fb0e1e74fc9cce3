package app

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/drivebay/drivebay/internal/domain"
	"github.com/drivebay/drivebay/internal/infra/audit"
)

// PaymentService drives payment intents through the external provider.
// Gateway calls always precede domain persistence, so a provider failure
// leaves domain state untouched.
type PaymentService struct {
	payments domain.PaymentIntentRepository
	listings domain.ListingRepository
	cars     domain.CarRepository
	gateway  domain.PaymentGateway
	journal  *audit.Recorder
}

// NewPaymentService wires the service. The journal may be nil.
func NewPaymentService(
	payments domain.PaymentIntentRepository,
	listings domain.ListingRepository,
	cars domain.CarRepository,
	gateway domain.PaymentGateway,
	journal *audit.Recorder,
) *PaymentService {
	return &PaymentService{
		payments: payments,
		listings: listings,
		cars:     cars,
		gateway:  gateway,
		journal:  journal,
	}
}

// Create opens a payment intent for an active listing. The amount is the
// listing's asking price; the caller only chooses the currency.
func (s *PaymentService) Create(ctx context.Context, listingID uuid.UUID, currency string) (PaymentIntentView, error) {
	listing, err := s.listings.Get(ctx, listingID)
	if err != nil {
		return PaymentIntentView{}, err
	}
	if listing.Status != domain.ListingActive {
		return PaymentIntentView{}, fmt.Errorf("%w: listing %s is not active", domain.ErrConflict, listingID)
	}

	// Validates amount and currency before anything leaves the process.
	intent, err := domain.NewPaymentIntent(listingID, listing.AskingPrice, currency)
	if err != nil {
		return PaymentIntentView{}, err
	}

	result, err := s.gateway.CreateIntent(ctx, intent.Amount, intent.Currency, s.chargeDescription(ctx, listing.CarID))
	if err != nil {
		return PaymentIntentView{}, err
	}
	if err := intent.ApplyProviderDetails(result.ProviderIntentID, result.ClientSecret); err != nil {
		return PaymentIntentView{}, err
	}
	if err := s.payments.Add(ctx, intent); err != nil {
		return PaymentIntentView{}, err
	}
	s.record(ctx, intent.ID, "created", fmt.Sprintf("listing=%s amount=%s %s", listingID, intent.Amount, intent.Currency))
	return newPaymentIntentView(intent), nil
}

// Get returns one payment intent.
func (s *PaymentService) Get(ctx context.Context, id uuid.UUID) (PaymentIntentView, error) {
	intent, err := s.payments.Get(ctx, id)
	if err != nil {
		return PaymentIntentView{}, err
	}
	return newPaymentIntentView(intent), nil
}

// ListByListing returns a listing's payment intents, newest first.
func (s *PaymentService) ListByListing(ctx context.Context, listingID uuid.UUID) ([]PaymentIntentView, error) {
	intents, err := s.payments.ListByListingID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	views := make([]PaymentIntentView, 0, len(intents))
	for _, p := range intents {
		views = append(views, newPaymentIntentView(p))
	}
	return views, nil
}

// Confirm settles a pending intent. Confirming an already succeeded
// intent is a no-op and does not call the provider again.
func (s *PaymentService) Confirm(ctx context.Context, id uuid.UUID) (PaymentIntentView, error) {
	return s.settle(ctx, id, "succeeded", domain.PaymentSucceeded,
		s.gateway.ConfirmIntent, (*domain.PaymentIntent).MarkAsSucceeded)
}

// Cancel voids a pending intent. Canceling an already canceled intent is
// a no-op and does not call the provider again.
func (s *PaymentService) Cancel(ctx context.Context, id uuid.UUID) (PaymentIntentView, error) {
	return s.settle(ctx, id, "canceled", domain.PaymentCanceled,
		s.gateway.CancelIntent, (*domain.PaymentIntent).Cancel)
}

func (s *PaymentService) settle(
	ctx context.Context,
	id uuid.UUID,
	action string,
	target domain.PaymentStatus,
	providerCall func(context.Context, string) error,
	apply func(*domain.PaymentIntent) error,
) (PaymentIntentView, error) {
	intent, err := s.payments.Get(ctx, id)
	if err != nil {
		return PaymentIntentView{}, err
	}
	if intent.Status == target {
		return newPaymentIntentView(intent), nil
	}
	if intent.ProviderIntentID == "" {
		return PaymentIntentView{}, fmt.Errorf("%w: missing provider metadata", domain.ErrConflict)
	}
	// Surface the terminal-state conflict before touching the provider.
	if err := apply(intent); err != nil {
		return PaymentIntentView{}, err
	}

	if err := providerCall(ctx, intent.ProviderIntentID); err != nil {
		return PaymentIntentView{}, err
	}
	if err := s.payments.Update(ctx, intent); err != nil {
		return PaymentIntentView{}, err
	}
	s.record(ctx, id, action, "")
	return newPaymentIntentView(intent), nil
}

// chargeDescription renders the provider-facing statement text.
func (s *PaymentService) chargeDescription(ctx context.Context, carID uuid.UUID) string {
	car, err := s.cars.Get(ctx, carID)
	if err != nil {
		return "Car purchase"
	}
	return fmt.Sprintf("%d %s", car.Year, car.Model)
}

func (s *PaymentService) record(ctx context.Context, id uuid.UUID, action, detail string) {
	if err := s.journal.Record(ctx, "payment_intent", id.String(), action, detail); err != nil {
		log.Printf("audit: payment intent %s %s: %v", id, action, err)
	}
}
