package app

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/drivebay/drivebay/internal/domain"
	"github.com/drivebay/drivebay/internal/infra/audit"
)

// CarService manages the car inventory.
type CarService struct {
	cars    domain.CarRepository
	journal *audit.Recorder
}

// NewCarService wires the service. The journal may be nil.
func NewCarService(cars domain.CarRepository, journal *audit.Recorder) *CarService {
	return &CarService{cars: cars, journal: journal}
}

// Create adds a car to inventory.
func (s *CarService) Create(ctx context.Context, model string, year int, price domain.Money) (CarView, error) {
	car, err := domain.NewCar(model, year, price)
	if err != nil {
		return CarView{}, err
	}
	if err := s.cars.Add(ctx, car); err != nil {
		return CarView{}, err
	}
	s.record(ctx, car.ID, "created", fmt.Sprintf("model=%s year=%d", car.Model, car.Year))
	return newCarView(car), nil
}

// Get returns one car.
func (s *CarService) Get(ctx context.Context, id uuid.UUID) (CarView, error) {
	car, err := s.cars.Get(ctx, id)
	if err != nil {
		return CarView{}, err
	}
	return newCarView(car), nil
}

// List returns all cars, newest model year first.
func (s *CarService) List(ctx context.Context) ([]CarView, error) {
	cars, err := s.cars.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]CarView, 0, len(cars))
	for _, c := range cars {
		views = append(views, newCarView(c))
	}
	return views, nil
}

// Update replaces a car's details.
func (s *CarService) Update(ctx context.Context, id uuid.UUID, model string, year int, price domain.Money) (CarView, error) {
	car, err := s.cars.Get(ctx, id)
	if err != nil {
		return CarView{}, err
	}
	if err := car.Update(model, year, price); err != nil {
		return CarView{}, err
	}
	if err := s.cars.Update(ctx, car); err != nil {
		return CarView{}, err
	}
	s.record(ctx, id, "updated", fmt.Sprintf("model=%s year=%d", car.Model, car.Year))
	return newCarView(car), nil
}

// Delete removes a car from inventory. Listings referencing it keep the
// identifier and render an unknown-car summary from then on.
func (s *CarService) Delete(ctx context.Context, id uuid.UUID) error {
	car, err := s.cars.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.cars.Delete(ctx, car); err != nil {
		return err
	}
	s.record(ctx, id, "deleted", "")
	return nil
}

func (s *CarService) record(ctx context.Context, id uuid.UUID, action, detail string) {
	if err := s.journal.Record(ctx, "car", id.String(), action, detail); err != nil {
		log.Printf("audit: car %s %s: %v", id, action, err)
	}
}
