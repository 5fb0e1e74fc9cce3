package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Scoring weights. Budget fit dominates, recency is secondary, and every
// car keeps a small availability baseline so scores never bottom out at
// zero.
var (
	budgetWeight       = decimal.NewFromInt(60)
	recencyWeight      = decimal.NewFromInt(30)
	availabilityWeight = decimal.NewFromInt(10)
	budgetUnderBonus   = decimal.NewFromInt(5)
	agePenaltyPerYear  = decimal.NewFromInt(3)
	maxScore           = decimal.NewFromInt(100)
)

// RecommendationCriteria restricts and weights the recommendation scoring.
// Both fields are optional; a nil budget switches the budget component to a
// flat half-weight, a nil minimum year disables the year filter.
type RecommendationCriteria struct {
	Budget  *Money
	MinYear *int
}

// NewRecommendationCriteria validates criteria before the engine runs.
func NewRecommendationCriteria(budget *Money, minYear *int) (RecommendationCriteria, error) {
	if budget != nil {
		if !budget.IsPositive() {
			return RecommendationCriteria{}, validationf("budget must be greater than zero when provided")
		}
		if budget.ExceedsCap() {
			return RecommendationCriteria{}, validationf("budget must be less than or equal to 1,000,000,000")
		}
	}
	if minYear != nil {
		maxYear := time.Now().UTC().Year() + 1
		if *minYear < minCarYear || *minYear > maxYear {
			return RecommendationCriteria{}, validationf("minimum year must be between %d and %d", minCarYear, maxYear)
		}
	}
	return RecommendationCriteria{Budget: budget, MinYear: minYear}, nil
}

// RecommendedCar pairs a car with its score, rounded to 2 places.
type RecommendedCar struct {
	Car   Car
	Score decimal.Decimal
}

// Recommend filters, scores and ranks cars. It is a pure function:
// identical inputs (including now) produce identical output regardless of
// input order, up to the score-descending, price-ascending tie-break.
// An empty candidate set yields an empty result, not an error.
func Recommend(cars []Car, criteria RecommendationCriteria, limit int, now time.Time) ([]RecommendedCar, error) {
	if limit <= 0 {
		return nil, validationf("recommendation limit must be greater than zero")
	}

	currentYear := now.UTC().Year()
	results := make([]RecommendedCar, 0, len(cars))
	for _, car := range cars {
		if criteria.MinYear != nil && car.Year < *criteria.MinYear {
			continue
		}
		results = append(results, RecommendedCar{
			Car:   car,
			Score: score(car, criteria, currentYear).Round(2),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if !results[i].Score.Equal(results[j].Score) {
			return results[i].Score.GreaterThan(results[j].Score)
		}
		return results[i].Car.Price.Cmp(results[j].Car.Price) < 0
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func score(car Car, criteria RecommendationCriteria, currentYear int) decimal.Decimal {
	total := availabilityWeight

	if criteria.Budget != nil {
		budget := criteria.Budget.Decimal()
		ratio := car.Price.Decimal().Sub(budget).Abs().Div(budget)
		if ratio.GreaterThan(decimal.NewFromInt(1)) {
			ratio = decimal.NewFromInt(1)
		}
		component := budgetWeight.Mul(decimal.NewFromInt(1).Sub(ratio))
		if car.Price.Decimal().LessThanOrEqual(budget) {
			component = component.Add(budgetUnderBonus)
		}
		if component.IsNegative() {
			component = decimal.Zero
		}
		total = total.Add(component)
	} else {
		total = total.Add(budgetWeight.Div(decimal.NewFromInt(2)))
	}

	age := currentYear - car.Year
	if age < 0 {
		age = 0
	}
	recency := recencyWeight.Sub(agePenaltyPerYear.Mul(decimal.NewFromInt(int64(age))))
	if recency.IsNegative() {
		recency = decimal.Zero
	}
	total = total.Add(recency)

	if total.GreaterThan(maxScore) {
		total = maxScore
	}
	return total
}
