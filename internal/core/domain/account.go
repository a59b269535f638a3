package domain

import (
	"strings"
	"time"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Account is a user's monetary account. Its current balance is only ever
// changed through the methods below, and its currency never changes.
type Account struct {
	id             string
	userID         string
	name           string
	initialBalance Money
	currentBalance Money
	version        int64
	createdAt      time.Time
	updatedAt      time.Time
}

// CreateAccount builds a new account whose current balance equals its initial balance.
func CreateAccount(id, userID, name, currency string, initialBalance decimal.Decimal) (*Account, error) {
	if err := validateID("account id", id); err != nil {
		return nil, err
	}
	if err := validateID("user id", userID); err != nil {
		return nil, err
	}
	name, err := validateAccountName(name)
	if err != nil {
		return nil, err
	}
	balance, err := NewMoney(initialBalance, currency)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Account{
		id:             id,
		userID:         userID,
		name:           name,
		initialBalance: balance,
		currentBalance: balance,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func validateAccountName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.NewInvalidArgument("account name must not be empty")
	}
	return name, nil
}

func (a *Account) ID() string            { return a.id }
func (a *Account) UserID() string        { return a.userID }
func (a *Account) Name() string          { return a.name }
func (a *Account) InitialBalance() Money { return a.initialBalance }
func (a *Account) CurrentBalance() Money { return a.currentBalance }
func (a *Account) Currency() string      { return a.initialBalance.Currency() }
func (a *Account) Version() int64        { return a.version }
func (a *Account) CreatedAt() time.Time  { return a.createdAt }
func (a *Account) UpdatedAt() time.Time  { return a.updatedAt }

func (a *Account) HasCurrency(code string) bool {
	return a.Currency() == code
}

func (a *Account) BelongsTo(userID string) bool {
	return a.userID == userID
}

// ApplyTransaction adds an inbound amount or subtracts an outbound one.
func (a *Account) ApplyTransaction(amount decimal.Decimal, currency string, direction Direction) error {
	money, err := a.moneyIn(amount, currency)
	if err != nil {
		return err
	}
	if direction == Inbound {
		return a.AddAmount(money)
	}
	return a.SubtractAmount(money)
}

// ReverseTransaction undoes the effect ApplyTransaction would have had.
func (a *Account) ReverseTransaction(amount decimal.Decimal, currency string, direction Direction) error {
	return a.ApplyTransaction(amount, currency, direction.Opposite())
}

// AddAmount increases the current balance.
func (a *Account) AddAmount(amount Money) error {
	next, err := a.currentBalance.Add(amount)
	if err != nil {
		return err
	}
	a.setBalance(next)
	return nil
}

// SubtractAmount decreases the current balance; it fails instead of going below zero.
func (a *Account) SubtractAmount(amount Money) error {
	next, err := a.currentBalance.Subtract(amount)
	if err != nil {
		return err
	}
	a.setBalance(next)
	return nil
}

// CanAbsorb reports whether a signed net change keeps the balance non-negative.
func (a *Account) CanAbsorb(net decimal.Decimal) bool {
	return !a.currentBalance.Amount().Add(net).IsNegative()
}

// Rename changes the display name of the account.
func (a *Account) Rename(name string) error {
	name, err := validateAccountName(name)
	if err != nil {
		return err
	}
	a.name = name
	a.touch()
	return nil
}

// IncrementVersion is called by repositories after a successful optimistic write.
func (a *Account) IncrementVersion() {
	a.version++
}

func (a *Account) moneyIn(amount decimal.Decimal, currency string) (Money, error) {
	if !a.HasCurrency(currency) {
		return Money{}, apperrors.NewCurrencyMismatch(a.Currency(), currency)
	}
	return NewMoney(amount, currency)
}

func (a *Account) setBalance(m Money) {
	a.currentBalance = m
	a.touch()
}

func (a *Account) touch() {
	a.updatedAt = time.Now().UTC()
}

// AccountPrimitives is the flat representation used by repositories and the HTTP boundary.
type AccountPrimitives struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	Name           string          `json:"name"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	Version        int64           `json:"version"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
}

func (a *Account) ToPrimitives() AccountPrimitives {
	return AccountPrimitives{
		ID:             a.id,
		UserID:         a.userID,
		Name:           a.name,
		Currency:       a.Currency(),
		InitialBalance: a.initialBalance.Amount(),
		CurrentBalance: a.currentBalance.Amount(),
		Version:        a.version,
		CreatedAt:      formatTime(a.createdAt),
		UpdatedAt:      formatTime(a.updatedAt),
	}
}

// AccountFromPrimitives rebuilds an account from its stored representation.
func AccountFromPrimitives(p AccountPrimitives) (*Account, error) {
	initial, err := NewMoney(p.InitialBalance, p.Currency)
	if err != nil {
		return nil, err
	}
	current, err := NewMoney(p.CurrentBalance, p.Currency)
	if err != nil {
		return nil, err
	}
	createdAt, err := parseTime("createdAt", p.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTime("updatedAt", p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &Account{
		id:             p.ID,
		userID:         p.UserID,
		name:           p.Name,
		initialBalance: initial,
		currentBalance: current,
		version:        p.Version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}
