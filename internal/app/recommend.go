package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/drivebay/drivebay/internal/domain"
)

// RecommendationService runs the scoring engine over cars that are not
// currently listed for sale.
type RecommendationService struct {
	cars     domain.CarRepository
	listings domain.ListingRepository

	defaultLimit int
	maxLimit     int
}

// NewRecommendationService wires the service. Non-positive limits fall
// back to 5 and 20.
func NewRecommendationService(cars domain.CarRepository, listings domain.ListingRepository, defaultLimit, maxLimit int) *RecommendationService {
	if defaultLimit <= 0 {
		defaultLimit = 5
	}
	if maxLimit <= 0 {
		maxLimit = 20
	}
	return &RecommendationService{
		cars:         cars,
		listings:     listings,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Recommend scores available inventory against the criteria. A limit of
// zero or less means the default; larger limits clamp to the maximum.
func (s *RecommendationService) Recommend(ctx context.Context, budget *domain.Money, minYear *int, limit int) ([]RecommendedCarView, error) {
	criteria, err := domain.NewRecommendationCriteria(budget, minYear)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	listed, err := s.activelyListedCarIDs(ctx)
	if err != nil {
		return nil, err
	}
	cars, err := s.cars.List(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.Car, 0, len(cars))
	for _, c := range cars {
		if listed[c.ID] {
			continue
		}
		candidates = append(candidates, *c)
	}

	ranked, err := domain.Recommend(candidates, criteria, limit, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	views := make([]RecommendedCarView, 0, len(ranked))
	for _, r := range ranked {
		car := r.Car
		views = append(views, RecommendedCarView{
			Car:   newCarView(&car),
			Score: r.Score.StringFixed(2),
		})
	}
	return views, nil
}

func (s *RecommendationService) activelyListedCarIDs(ctx context.Context) (map[uuid.UUID]bool, error) {
	listings, err := s.listings.List(ctx)
	if err != nil {
		return nil, err
	}
	listed := make(map[uuid.UUID]bool)
	for _, l := range listings {
		if l.Status == domain.ListingActive {
			listed[l.CarID] = true
		}
	}
	return listed, nil
}
