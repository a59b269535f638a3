package services

import (
	"context"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	"github.com/bacaxnot/finance-sub000/internal/dto"
)

// CategorySvcFacade defines category operations. Categories only label
// transactions.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
}
