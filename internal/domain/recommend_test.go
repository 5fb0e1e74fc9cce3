package domain

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// A fixed clock keeps recency scoring deterministic across test runs.
var scoringNow = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

func mustCar(t *testing.T, model string, year int, price float64) Car {
	t.Helper()
	c, err := NewCar(model, year, MoneyFromFloat(price))
	if err != nil {
		t.Fatalf("NewCar(%s): %v", model, err)
	}
	return *c
}

func moneyPtr(f float64) *Money {
	m := MoneyFromFloat(f)
	return &m
}

func intPtr(i int) *int { return &i }

func TestNewRecommendationCriteria_Validation(t *testing.T) {
	tests := []struct {
		name    string
		budget  *Money
		minYear *int
		ok      bool
	}{
		{"empty criteria", nil, nil, true},
		{"valid budget and year", moneyPtr(20_000), intPtr(2015), true},
		{"zero budget", moneyPtr(0), nil, false},
		{"negative budget", moneyPtr(-1), nil, false},
		{"budget above cap", moneyPtr(1_000_000_001), nil, false},
		{"year too old", nil, intPtr(1885), false},
		{"year too new", nil, intPtr(time.Now().UTC().Year() + 2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRecommendationCriteria(tt.budget, tt.minYear)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRecommend_LimitValidation(t *testing.T) {
	cars := []Car{mustCar(t, "A", 2020, 10_000)}
	for _, limit := range []int{0, -1} {
		if _, err := Recommend(cars, RecommendationCriteria{}, limit, scoringNow); !errors.Is(err, ErrValidation) {
			t.Errorf("limit %d error = %v, want ErrValidation", limit, err)
		}
	}
}

func TestRecommend_EmptyInput(t *testing.T) {
	got, err := Recommend(nil, RecommendationCriteria{}, 5, scoringNow)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d entries", len(got))
	}
}

func TestRecommend_MinYearFiltersToEmpty(t *testing.T) {
	cars := []Car{mustCar(t, "Oldtimer", 1990, 5_000)}
	criteria, _ := NewRecommendationCriteria(nil, intPtr(2020))
	got, err := Recommend(cars, criteria, 5, scoringNow)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected filtered-out result to be empty, got %d", len(got))
	}
}

func TestRecommend_ScoreComponents(t *testing.T) {
	currentYear := scoringNow.Year()

	tests := []struct {
		name     string
		car      Car
		criteria RecommendationCriteria
		want     string
	}{
		{
			// 10 baseline + flat 30 (no budget) + full recency 30.
			name:     "no budget, current year",
			car:      mustCar(t, "New", currentYear, 30_000),
			criteria: RecommendationCriteria{},
			want:     "70",
		},
		{
			// 10 + 30 + (30 - 3*5) = 55.
			name:     "no budget, five years old",
			car:      mustCar(t, "Used", currentYear-5, 30_000),
			criteria: RecommendationCriteria{},
			want:     "55",
		},
		{
			// 10 + 30 + 0: recency floor for very old cars.
			name:     "no budget, fifteen years old",
			car:      mustCar(t, "Old", currentYear-15, 30_000),
			criteria: RecommendationCriteria{},
			want:     "40",
		},
		{
			// Price == budget: 10 + 60 + 5 under-budget bonus + 30, clamped to 100.
			name:     "exact budget match clamps at 100",
			car:      mustCar(t, "Match", currentYear, 20_000),
			criteria: RecommendationCriteria{Budget: moneyPtr(20_000)},
			want:     "100",
		},
		{
			// Price double the budget: ratio clamps to 1, budget component 0.
			name:     "price far above budget",
			car:      mustCar(t, "Pricey", currentYear, 40_000),
			criteria: RecommendationCriteria{Budget: moneyPtr(20_000)},
			want:     "40",
		},
		{
			// Price 15000, budget 20000: ratio 0.25, 60*0.75 + 5 = 50; + 10 + 30.
			name:     "under budget partial fit",
			car:      mustCar(t, "Under", currentYear, 15_000),
			criteria: RecommendationCriteria{Budget: moneyPtr(20_000)},
			want:     "90",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Recommend([]Car{tt.car}, tt.criteria, 1, scoringNow)
			if err != nil {
				t.Fatalf("Recommend: %v", err)
			}
			want, _ := decimal.NewFromString(tt.want)
			if !got[0].Score.Equal(want) {
				t.Errorf("score = %s, want %s", got[0].Score, want)
			}
		})
	}
}

func TestRecommend_TieBreakByPriceAscending(t *testing.T) {
	currentYear := scoringNow.Year()
	// Same year, no budget: identical scores, so order falls to price.
	cars := []Car{
		mustCar(t, "Expensive", currentYear, 30_000),
		mustCar(t, "Cheap", currentYear, 10_000),
		mustCar(t, "Middle", currentYear, 20_000),
	}
	got, err := Recommend(cars, RecommendationCriteria{}, 3, scoringNow)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	wantOrder := []string{"Cheap", "Middle", "Expensive"}
	for i, want := range wantOrder {
		if got[i].Car.Model != want {
			t.Errorf("rank %d = %s, want %s", i, got[i].Car.Model, want)
		}
	}
}

func TestRecommend_Limit(t *testing.T) {
	currentYear := scoringNow.Year()
	cars := []Car{
		mustCar(t, "A", currentYear, 10_000),
		mustCar(t, "B", currentYear, 20_000),
		mustCar(t, "C", currentYear, 30_000),
	}
	got, err := Recommend(cars, RecommendationCriteria{}, 2, scoringNow)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

// Permuting the input yields the same ranked output.
func TestRecommend_StableUnderInputPermutation(t *testing.T) {
	currentYear := scoringNow.Year()
	cars := []Car{
		mustCar(t, "A", currentYear, 18_500),
		mustCar(t, "B", currentYear-2, 9_900),
		mustCar(t, "C", currentYear-4, 22_000),
		mustCar(t, "D", currentYear-1, 15_000),
		mustCar(t, "E", currentYear-8, 4_500),
		mustCar(t, "F", currentYear, 31_000),
	}
	criteria, _ := NewRecommendationCriteria(moneyPtr(16_000), nil)

	baseline, err := Recommend(cars, criteria, 4, scoringNow)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]Car, len(cars))
		copy(shuffled, cars)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got, err := Recommend(shuffled, criteria, 4, scoringNow)
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if len(got) != len(baseline) {
			t.Fatalf("len = %d, want %d", len(got), len(baseline))
		}
		for i := range got {
			if got[i].Car.Model != baseline[i].Car.Model || !got[i].Score.Equal(baseline[i].Score) {
				t.Fatalf("trial %d rank %d = %s (%s), want %s (%s)",
					trial, i, got[i].Car.Model, got[i].Score, baseline[i].Car.Model, baseline[i].Score)
			}
		}
	}
}
