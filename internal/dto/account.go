package dto

import (
	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required,max=120"`
	Currency       string          `json:"currency" binding:"required,currency"`
	InitialBalance decimal.Decimal `json:"initialBalance" swaggertype:"string"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Only the name is mutable; balances change exclusively through transactions
// and balance adjustments.
type UpdateAccountRequest struct {
	Name *string `json:"name" binding:"omitempty,max=120"`
}

// AdjustBalanceRequest is a corrective adjustment applied directly to an account balance.
type AdjustBalanceRequest struct {
	Operation string          `json:"operation" binding:"required,oneof=add subtract"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
	Currency  string          `json:"currency" binding:"required,currency"`
}

// UpdateAccountBalanceRequest is the input of the balance funnel. Every balance
// adjustment, whichever event or caller it comes from, is expressed as one of these.
type UpdateAccountBalanceRequest struct {
	AccountID string
	Operation domain.BalanceOperation
	Amount    decimal.Decimal
	Currency  string
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string          `json:"accountID"`
	UserID         string          `json:"userID"`
	Name           string          `json:"name"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initialBalance" swaggertype:"string"`
	CurrentBalance decimal.Decimal `json:"currentBalance" swaggertype:"string"`
	Version        int64           `json:"version"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	p := acc.ToPrimitives()
	return AccountResponse{
		AccountID:      p.ID,
		UserID:         p.UserID,
		Name:           p.Name,
		Currency:       p.Currency,
		InitialBalance: p.InitialBalance,
		CurrentBalance: p.CurrentBalance,
		Version:        p.Version,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountResponse converts a slice of accounts to the list response DTO
func ToListAccountResponse(accounts []*domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(acc)
	}
	return ListAccountsResponse{Accounts: res}
}
