package repositories

import (
	"context"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// Search retrieves a user by id. A missing user yields apperrors.ErrNotFound.
	Search(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// Save persists a new user. A duplicate email yields apperrors.ErrDuplicate.
	Save(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
