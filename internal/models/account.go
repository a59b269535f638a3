package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the row stored in the accounts table.
type Account struct {
	AccountID      string          `db:"account_id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	Currency       string          `db:"currency"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	Version        int64           `db:"version"` // Optimistic concurrency counter
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}
