package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/drivebay/drivebay/internal/domain"
)

// DashboardService summarizes inventory, listings and users.
type DashboardService struct {
	users    domain.UserRepository
	cars     domain.CarRepository
	listings domain.ListingRepository
}

// NewDashboardService wires the service.
func NewDashboardService(users domain.UserRepository, cars domain.CarRepository, listings domain.ListingRepository) *DashboardService {
	return &DashboardService{users: users, cars: cars, listings: listings}
}

// Summary computes the current marketplace totals. The average price is
// rounded to two places, half away from zero.
func (s *DashboardService) Summary(ctx context.Context) (DashboardView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return DashboardView{}, err
	}
	cars, err := s.cars.List(ctx)
	if err != nil {
		return DashboardView{}, err
	}
	listings, err := s.listings.List(ctx)
	if err != nil {
		return DashboardView{}, err
	}

	total := domain.Zero()
	for _, c := range cars {
		total = total.Add(c.Price)
	}
	average := domain.Zero()
	if len(cars) > 0 {
		average = domain.NewMoney(total.Decimal().Div(decimal.NewFromInt(int64(len(cars)))))
	}

	view := DashboardView{
		Users:               len(users),
		Cars:                len(cars),
		TotalInventoryValue: total,
		AverageCarPrice:     average,
		GeneratedAt:         time.Now().UTC(),
	}
	for _, l := range listings {
		switch l.Status {
		case domain.ListingActive:
			view.ActiveListings++
		case domain.ListingSold:
			view.SoldListings++
		case domain.ListingArchived:
			view.ArchivedListings++
		}
	}
	return view, nil
}
