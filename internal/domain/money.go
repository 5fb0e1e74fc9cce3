package domain

import (
	"github.com/shopspring/decimal"
)

// Money is a fixed-precision monetary amount. Every constructor and every
// arithmetic result is rounded to 2 fractional digits, half away from zero,
// so a Money value is always in its stored form.
type Money struct {
	amount decimal.Decimal
}

// maxAmount is the upper bound shared by prices, asking prices, payment
// amounts and budgets.
var maxAmount = decimal.NewFromInt(1_000_000_000)

// NewMoney builds a Money from a raw decimal, applying the rounding rule.
func NewMoney(d decimal.Decimal) Money {
	return Money{amount: d.Round(2)}
}

// MoneyFromString parses a decimal string such as "120.25".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, validationf("malformed amount %q", s)
	}
	return NewMoney(d), nil
}

// MoneyFromFloat builds a Money from a float64. Intended for fixtures and
// request binding; the value is rounded immediately.
func MoneyFromFloat(f float64) Money {
	return NewMoney(decimal.NewFromFloat(f))
}

// Zero is the zero amount.
func Zero() Money { return Money{} }

// Add returns m + other, rounded.
func (m Money) Add(other Money) Money {
	return NewMoney(m.amount.Add(other.amount))
}

// Sub returns m - other, rounded. The result may be negative; callers
// enforce non-negativity where it matters.
func (m Money) Sub(other Money) Money {
	return NewMoney(m.amount.Sub(other.amount))
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int { return m.amount.Cmp(other.amount) }

// Equal reports numeric equality.
func (m Money) Equal(other Money) bool { return m.amount.Equal(other.amount) }

// GreaterThan reports m > other.
func (m Money) GreaterThan(other Money) bool { return m.amount.GreaterThan(other.amount) }

// IsNegative reports m < 0.
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// IsPositive reports m > 0.
func (m Money) IsPositive() bool { return m.amount.IsPositive() }

// IsZero reports m == 0.
func (m Money) IsZero() bool { return m.amount.IsZero() }

// Abs returns the absolute amount.
func (m Money) Abs() Money { return Money{amount: m.amount.Abs()} }

// ExceedsCap reports whether the amount is above the shared 1e9 bound.
func (m Money) ExceedsCap() bool { return m.amount.GreaterThan(maxAmount) }

// Decimal exposes the underlying decimal for scoring arithmetic.
func (m Money) Decimal() decimal.Decimal { return m.amount }

// String formats the amount with exactly two fractional digits.
func (m Money) String() string { return m.amount.StringFixed(2) }

// MarshalJSON encodes the amount as a quoted decimal string, e.g. "120.25".
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return validationf("malformed amount %s", data)
	}
	*m = NewMoney(d)
	return nil
}
