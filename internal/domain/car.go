package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Car is an inventory entity. Instances only exist through the validating
// constructor and Update method, so a persisted car is always well formed.
type Car struct {
	ID        uuid.UUID `json:"id"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	Price     Money     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	maxModelLen = 200

	// minCarYear is the year of the Benz Patent-Motorwagen.
	minCarYear = 1886
)

// NewCar validates and creates a car.
func NewCar(model string, year int, price Money) (*Car, error) {
	c := &Car{ID: uuid.New()}
	if err := c.setDetails(model, year, price); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}

// Update replaces the car's details after validation. On any validation
// failure the car is left untouched.
func (c *Car) Update(model string, year int, price Money) error {
	if err := c.setDetails(model, year, price); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (c *Car) setDetails(model string, year int, price Money) error {
	trimmed := strings.TrimSpace(model)
	if trimmed == "" {
		return validationf("model is required")
	}
	if len(trimmed) > maxModelLen {
		return validationf("model cannot be longer than %d characters", maxModelLen)
	}

	maxYear := time.Now().UTC().Year() + 1
	if year < minCarYear || year > maxYear {
		return validationf("year must be between %d and %d", minCarYear, maxYear)
	}

	if !price.IsPositive() {
		return validationf("price must be greater than zero")
	}
	if price.ExceedsCap() {
		return validationf("price must be less than or equal to 1,000,000,000")
	}

	c.Model = trimmed
	c.Year = year
	c.Price = price
	return nil
}

// Clone returns a copy safe to hand across the repository boundary.
func (c *Car) Clone() *Car {
	cp := *c
	return &cp
}
