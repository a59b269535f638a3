package repositories

import (
	"context"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
)

type CategoryReader interface {
	// Search retrieves a category by id. A missing category yields apperrors.ErrNotFound.
	Search(ctx context.Context, categoryID string) (*domain.Category, error)

	SearchByUserID(ctx context.Context, userID string) ([]domain.Category, error)
}

type CategoryWriter interface {
	// Save persists a new category. A duplicate name for the same user yields apperrors.ErrDuplicate.
	Save(ctx context.Context, category domain.Category) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
