package services

import (
	"context"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	"github.com/bacaxnot/finance-sub000/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account owned by userID.
	GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves every account owned by userID.
	ListAccounts(ctx context.Context, userID string) ([]*domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount renames an account. Balances are never changed here.
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account. Its transactions are not cascaded.
	DeleteAccount(ctx context.Context, userID string, accountID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
