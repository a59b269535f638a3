package domain

import (
	"regexp"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
	"github.com/shopspring/decimal"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// MaxAmountScale is the number of decimal places an amount may carry. It
// matches the NUMERIC(20, 4) columns amounts are stored in.
const MaxAmountScale = 4

// Money is a non-negative amount tagged with an ISO 4217 currency code.
// The zero value is not valid; use NewMoney.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney builds a Money value, rejecting negative amounts, amounts with more
// than MaxAmountScale decimal places and malformed currency codes.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if !IsValidCurrencyCode(currency) {
		return Money{}, apperrors.NewInvalidArgument("invalid currency code %q", currency)
	}
	if amount.IsNegative() {
		return Money{}, apperrors.NewInvalidArgument("amount %s must not be negative", amount.String())
	}
	if !amount.Equal(amount.Truncate(MaxAmountScale)) {
		return Money{}, apperrors.NewInvalidArgument("amount %s has more than %d decimal places", amount.String(), MaxAmountScale)
	}
	return Money{amount: amount, currency: currency}, nil
}

// IsValidCurrencyCode reports whether code looks like an ISO 4217 code.
func IsValidCurrencyCode(code string) bool {
	return currencyCodePattern.MatchString(code)
}

func (m Money) Amount() decimal.Decimal { return m.amount }

func (m Money) Currency() string { return m.currency }

func (m Money) IsZero() bool { return m.amount.IsZero() }

// Equals compares amount by numeric value, so 10 and 10.00 are equal.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, apperrors.NewCurrencyMismatch(m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns m - other. A negative result is an error, never clamped.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, apperrors.NewCurrencyMismatch(m.currency, other.currency)
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, apperrors.NewInvalidArgument("cannot subtract %s from %s: result would be negative", other.String(), m.String())
	}
	return Money{amount: result, currency: m.currency}, nil
}

func (m Money) String() string {
	return m.amount.String() + " " + m.currency
}
