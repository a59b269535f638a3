package repositories

import (
	"context"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// Search retrieves an account by id. A missing account yields apperrors.ErrNotFound.
	Search(ctx context.Context, accountID string) (*domain.Account, error)

	// SearchByUserID lists the accounts owned by a user, oldest first.
	SearchByUserID(ctx context.Context, userID string) ([]*domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// Save inserts or updates an account. Updates are checked against the
	// version the account was loaded with; a stale write yields
	// apperrors.ErrConflict. On success the account's version is advanced.
	Save(ctx context.Context, account *domain.Account) error

	// Delete removes an account. A missing account yields apperrors.ErrNotFound.
	Delete(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
