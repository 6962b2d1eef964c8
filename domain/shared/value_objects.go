package shared

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeAmount rejects construction of a negative monetary value.
	ErrNegativeAmount = errors.New("Amount cannot be negative")

	// ErrEmptyCurrency rejects construction without a currency code.
	ErrEmptyCurrency = errors.New("Currency cannot be empty")

	// ErrCurrencyMismatch is returned when combining amounts of different currencies.
	ErrCurrencyMismatch = errors.New("Cannot add money with different currencies")
)

// Money is an immutable monetary value: a non-negative amount rounded to
// two decimal places plus an upper-cased currency code. Equality is
// structural (amount and currency).
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates a Money value, rounding the amount to two decimal places.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return Money{}, ErrEmptyCurrency
	}

	return Money{amount: amount.Round(2), currency: currency}, nil
}

// NewMoneyFromString parses a decimal string such as "10.00".
func NewMoneyFromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(d, currency)
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency string) Money {
	return Money{amount: decimal.Zero, currency: strings.ToUpper(strings.TrimSpace(currency))}
}

// Amount returns the amount, already rounded to two decimal places.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Currency returns the upper-cased currency code.
func (m Money) Currency() string { return m.currency }

// Add returns the sum of two amounts. Both must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Add(other.amount).Round(2), currency: m.currency}, nil
}

// Multiply scales the amount by a non-negative integer quantity.
func (m Money) Multiply(quantity int) Money {
	return Money{
		amount:   m.amount.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
		currency: m.currency,
	}
}

// Equals reports structural equality.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.amount.IsZero() }

// String implements fmt.Stringer, e.g. "10.00 USD".
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}
