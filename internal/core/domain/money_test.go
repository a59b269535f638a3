package domain_test

import (
	"testing"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func money(t *testing.T, amount, currency string) domain.Money {
	t.Helper()
	m, err := domain.NewMoney(dec(amount), currency)
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		wantErr  error
	}{
		{name: "valid amount", amount: "100.50", currency: "COP"},
		{name: "zero is allowed", amount: "0", currency: "USD"},
		{name: "negative amount", amount: "-0.01", currency: "USD", wantErr: apperrors.ErrValidation},
		{name: "four decimal places", amount: "0.0001", currency: "USD"},
		{name: "trailing zeros beyond scale", amount: "12.34500", currency: "USD"},
		{name: "five decimal places", amount: "0.00005", currency: "USD", wantErr: apperrors.ErrValidation},
		{name: "lower case currency", amount: "1", currency: "usd", wantErr: apperrors.ErrValidation},
		{name: "empty currency", amount: "1", currency: "", wantErr: apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := domain.NewMoney(dec(tt.amount), tt.currency)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, m.Amount().Equal(dec(tt.amount)))
			assert.Equal(t, tt.currency, m.Currency())
		})
	}
}

func TestMoney_Add(t *testing.T) {
	sum, err := money(t, "100", "COP").Add(money(t, "50.25", "COP"))
	require.NoError(t, err)
	assert.True(t, sum.Equals(money(t, "150.25", "COP")))

	_, err = money(t, "100", "COP").Add(money(t, "1", "USD"))
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)
}

func TestMoney_Subtract(t *testing.T) {
	tests := []struct {
		name    string
		left    domain.Money
		right   domain.Money
		want    string
		wantErr error
	}{
		{name: "leaves remainder", left: money(t, "100", "COP"), right: money(t, "40", "COP"), want: "60"},
		{name: "down to zero", left: money(t, "100", "COP"), right: money(t, "100", "COP"), want: "0"},
		{name: "would go negative", left: money(t, "100", "COP"), right: money(t, "100.01", "COP"), wantErr: apperrors.ErrValidation},
		{name: "different currency", left: money(t, "100", "COP"), right: money(t, "1", "EUR"), wantErr: apperrors.ErrCurrencyMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.left.Subtract(tt.right)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Amount().Equal(dec(tt.want)), "got %s", got)
		})
	}
}

func TestMoney_IsZeroAndEquals(t *testing.T) {
	assert.True(t, money(t, "0.00", "COP").IsZero())
	assert.False(t, money(t, "0.01", "COP").IsZero())
	assert.True(t, money(t, "10", "COP").Equals(money(t, "10.00", "COP")))
	assert.False(t, money(t, "10", "COP").Equals(money(t, "10", "USD")))
	assert.Equal(t, "10.5 COP", money(t, "10.5", "COP").String())
}
