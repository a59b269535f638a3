package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row stored in the transactions table.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	AccountID     string          `db:"account_id"`
	CategoryID    *string         `db:"category_id"` // Nullable
	Amount        decimal.Decimal `db:"amount"`
	Currency      string          `db:"currency"`
	Direction     string          `db:"direction"`
	Description   string          `db:"description"`
	Date          time.Time       `db:"transaction_date"`
	Notes         *string         `db:"notes"` // Nullable
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}
