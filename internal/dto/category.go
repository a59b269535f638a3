package dto

import (
	"time"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
)

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=80"`
}

type CategoryResponse struct {
	CategoryID string    `json:"categoryID"`
	UserID     string    `json:"userID"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
}

func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.ID,
		UserID:     c.UserID,
		Name:       c.Name,
		CreatedAt:  c.CreatedAt,
	}
}

// ListCategoriesResponse wraps the list of categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

func ToListCategoryResponse(categories []domain.Category) ListCategoriesResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return ListCategoriesResponse{Categories: res}
}
