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

// MarketplaceService manages listings and their lifecycle.
type MarketplaceService struct {
	listings domain.ListingRepository
	cars     domain.CarRepository
	journal  *audit.Recorder
}

// NewMarketplaceService wires the service. The journal may be nil.
func NewMarketplaceService(listings domain.ListingRepository, cars domain.CarRepository, journal *audit.Recorder) *MarketplaceService {
	return &MarketplaceService{listings: listings, cars: cars, journal: journal}
}

// Create lists a car for sale. The car must exist and must not already
// have an active listing.
func (s *MarketplaceService) Create(ctx context.Context, carID uuid.UUID, askingPrice domain.Money, description string) (ListingView, error) {
	car, err := s.cars.Get(ctx, carID)
	if err != nil {
		return ListingView{}, err
	}

	existing, err := s.listings.ListByCarID(ctx, carID)
	if err != nil {
		return ListingView{}, err
	}
	for _, l := range existing {
		if l.Status == domain.ListingActive {
			return ListingView{}, fmt.Errorf("%w: car %s already has an active listing", domain.ErrConflict, carID)
		}
	}

	listing, err := domain.NewListing(carID, askingPrice, description)
	if err != nil {
		return ListingView{}, err
	}
	if err := s.listings.Add(ctx, listing); err != nil {
		return ListingView{}, err
	}
	s.record(ctx, listing.ID, "created", fmt.Sprintf("car=%s price=%s", carID, listing.AskingPrice))
	return newListingView(listing, car), nil
}

// Get returns one listing joined with its car summary.
func (s *MarketplaceService) Get(ctx context.Context, id uuid.UUID) (ListingView, error) {
	listing, err := s.listings.Get(ctx, id)
	if err != nil {
		return ListingView{}, err
	}
	return newListingView(listing, s.carFor(ctx, listing.CarID)), nil
}

// List returns all listings, newest first, joined with car summaries.
func (s *MarketplaceService) List(ctx context.Context) ([]ListingView, error) {
	listings, err := s.listings.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ListingView, 0, len(listings))
	for _, l := range listings {
		views = append(views, newListingView(l, s.carFor(ctx, l.CarID)))
	}
	return views, nil
}

// Update changes a listing's asking price and description.
func (s *MarketplaceService) Update(ctx context.Context, id uuid.UUID, askingPrice domain.Money, description string) (ListingView, error) {
	listing, err := s.listings.Get(ctx, id)
	if err != nil {
		return ListingView{}, err
	}
	if err := listing.UpdateAskingPrice(askingPrice); err != nil {
		return ListingView{}, err
	}
	if err := listing.UpdateDescription(description); err != nil {
		return ListingView{}, err
	}
	if err := s.listings.Update(ctx, listing); err != nil {
		return ListingView{}, err
	}
	s.record(ctx, id, "updated", fmt.Sprintf("price=%s", listing.AskingPrice))
	return newListingView(listing, s.carFor(ctx, listing.CarID)), nil
}

// MarkAsSold transitions a listing to Sold.
func (s *MarketplaceService) MarkAsSold(ctx context.Context, id uuid.UUID) (ListingView, error) {
	return s.transition(ctx, id, "sold", (*domain.Listing).MarkAsSold)
}

// Archive retires a listing. Archived is terminal.
func (s *MarketplaceService) Archive(ctx context.Context, id uuid.UUID) (ListingView, error) {
	return s.transition(ctx, id, "archived", (*domain.Listing).Archive)
}

// Activate returns a sold listing to Active.
func (s *MarketplaceService) Activate(ctx context.Context, id uuid.UUID) (ListingView, error) {
	return s.transition(ctx, id, "activated", (*domain.Listing).Activate)
}

func (s *MarketplaceService) transition(ctx context.Context, id uuid.UUID, action string, apply func(*domain.Listing) error) (ListingView, error) {
	listing, err := s.listings.Get(ctx, id)
	if err != nil {
		return ListingView{}, err
	}
	if err := apply(listing); err != nil {
		return ListingView{}, err
	}
	if err := s.listings.Update(ctx, listing); err != nil {
		return ListingView{}, err
	}
	s.record(ctx, id, action, "")
	return newListingView(listing, s.carFor(ctx, listing.CarID)), nil
}

// carFor loads the car behind a listing. A missing car is not an error
// at read time; the view renders an unknown-car summary.
func (s *MarketplaceService) carFor(ctx context.Context, carID uuid.UUID) *domain.Car {
	car, err := s.cars.Get(ctx, carID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("marketplace: load car %s: %v", carID, err)
		}
		return nil
	}
	return car
}

func (s *MarketplaceService) record(ctx context.Context, id uuid.UUID, action, detail string) {
	if err := s.journal.Record(ctx, "listing", id.String(), action, detail); err != nil {
		log.Printf("audit: listing %s %s: %v", id, action, err)
	}
}
