package repositories

import (
	"context"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// Search retrieves a transaction by id. A missing transaction yields apperrors.ErrNotFound.
	Search(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// SearchByAccountID lists an account's transactions, most recent date first.
	SearchByAccountID(ctx context.Context, accountID string) ([]*domain.Transaction, error)

	// SearchByUserID lists a user's transactions, most recent date first.
	SearchByUserID(ctx context.Context, userID string) ([]*domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// Save inserts or replaces a transaction.
	Save(ctx context.Context, transaction *domain.Transaction) error

	// Delete removes a transaction. A missing transaction yields apperrors.ErrNotFound.
	Delete(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
