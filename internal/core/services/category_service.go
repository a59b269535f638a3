package services

import (
	"context"
	"log/slog"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	portssvc "github.com/bacaxnot/finance-sub000/internal/core/ports/services"
	"github.com/bacaxnot/finance-sub000/internal/dto"
	"github.com/google/uuid"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

func NewCategoryService(repo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: repo}
}

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	category, err := domain.NewCategory(uuid.NewString(), userID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("name", category.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Category created", slog.String("category_id", category.ID))
	return category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	return s.findOwnedCategory(ctx, s.categoryRepo, userID, categoryID)
}

func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.SearchByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("user_id", userID))
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}
