package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
)

type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]domain.Category
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[string]domain.Category)}
}

var _ portsrepo.CategoryRepositoryFacade = (*CategoryRepository)(nil)

func (r *CategoryRepository) Save(_ context.Context, category domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.ID == category.ID || (c.UserID == category.UserID && c.Name == category.Name) {
			return fmt.Errorf("%w: category %q", apperrors.ErrDuplicate, category.Name)
		}
	}
	r.categories[category.ID] = category
	return nil
}

func (r *CategoryRepository) Search(_ context.Context, categoryID string) (*domain.Category, error) {
	r.mu.RLock()
	c, ok := r.categories[categoryID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
	}
	return &c, nil
}

func (r *CategoryRepository) SearchByUserID(_ context.Context, userID string) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := []domain.Category{}
	for _, c := range r.categories {
		if c.UserID == userID {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}
