package dto

import (
	"time"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	AccountID   string          `json:"accountId" binding:"required,uuid"`
	CategoryID  *string         `json:"categoryId" binding:"omitempty,uuid"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
	Currency    string          `json:"currency" binding:"required,currency"`
	Direction   string          `json:"direction" binding:"required,direction"`
	Description string          `json:"description" binding:"required,max=255"`
	Date        time.Time       `json:"date"`
	Notes       *string         `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateTransactionRequest is a partial update. Pointers distinguish fields
// that were not provided from zero values. ClearCategory removes the category.
type UpdateTransactionRequest struct {
	Amount        *decimal.Decimal `json:"amount" swaggertype:"string"`
	Currency      *string          `json:"currency" binding:"omitempty,currency"`
	Direction     *string          `json:"direction" binding:"omitempty,direction"`
	Description   *string          `json:"description" binding:"omitempty,max=255"`
	Date          *time.Time       `json:"date"`
	Notes         *string          `json:"notes" binding:"omitempty,max=1000"`
	CategoryID    *string          `json:"categoryId" binding:"omitempty,uuid"`
	ClearCategory bool             `json:"clearCategory"`
}

// ToDomainUpdate converts the request into the aggregate's partial update.
func (r UpdateTransactionRequest) ToDomainUpdate() domain.TransactionUpdate {
	u := domain.TransactionUpdate{
		Amount:        r.Amount,
		Currency:      r.Currency,
		Description:   r.Description,
		Date:          r.Date,
		Notes:         r.Notes,
		CategoryID:    r.CategoryID,
		ClearCategory: r.ClearCategory,
	}
	if r.Direction != nil {
		d := domain.Direction(*r.Direction)
		u.Direction = &d
	}
	return u
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	AccountID     string          `json:"accountID"`
	CategoryID    *string         `json:"categoryID"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string"`
	Currency      string          `json:"currency"`
	Direction     string          `json:"direction"`
	Description   string          `json:"description"`
	Date          string          `json:"date"`
	Notes         *string         `json:"notes"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	p := t.ToPrimitives()
	return TransactionResponse{
		TransactionID: p.ID,
		UserID:        p.UserID,
		AccountID:     p.AccountID,
		CategoryID:    p.CategoryID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Direction:     p.Direction,
		Description:   p.Description,
		Date:          p.Date,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

func ToListTransactionResponse(txs []*domain.Transaction) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txs))
	for i, t := range txs {
		res[i] = ToTransactionResponse(t)
	}
	return ListTransactionsResponse{Transactions: res}
}
