package domain

import (
	"bytes"
	"math/big"
	"strings"
)

// moneyScale matches the fractional precision of a Spanner NUMERIC column.
const moneyScale = 9

var moneyUnit = new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(moneyScale), nil))

// Money represents a price with exact decimal arithmetic using big.Rat.
// The zero value is a valid amount of zero.
type Money struct {
	rat *big.Rat
}

// MustMoney parses a decimal literal and panics on failure. For fixtures.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseMoney parses a decimal string such as "249.99". Fractions and values
// with more than moneyScale decimal places are rejected.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		return Money{}, Errorf(KindValidationFailed, "invalid price %q", s)
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Money{}, Errorf(KindValidationFailed, "invalid price %q", s)
	}
	if !new(big.Rat).Mul(r, moneyUnit).IsInt() {
		return Money{}, Errorf(KindValidationFailed, "price %q has more than %d decimal places", s, moneyScale)
	}
	return Money{rat: r}, nil
}

// NewMoneyFromRat copies r into a Money. A nil rat is zero.
func NewMoneyFromRat(r *big.Rat) Money {
	if r == nil {
		return Money{}
	}
	return Money{rat: new(big.Rat).Set(r)}
}

func (m Money) value() *big.Rat {
	if m.rat == nil {
		return new(big.Rat)
	}
	return m.rat
}

// Rat returns a copy of the underlying rational.
func (m Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.value())
}

// IsNegative returns true if the money value is negative.
func (m Money) IsNegative() bool {
	return m.value().Sign() < 0
}

// Equals compares by value, ignoring representation.
func (m Money) Equals(other Money) bool {
	return m.value().Cmp(other.value()) == 0
}

// String renders the shortest decimal form, e.g. "10" or "299.99".
func (m Money) String() string {
	s := m.value().FloatString(moneyScale)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// MarshalJSON writes the price as a JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if bytes.Equal(data, []byte("null")) || len(data) == 0 {
		return NewError(KindValidationFailed, "price must be a number")
	}
	parsed, err := ParseMoney(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
