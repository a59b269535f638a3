package mapping

import (
	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	"github.com/bacaxnot/finance-sub000/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:    d.UserID,
		Name:      d.Name,
		Email:     d.Email,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:    m.UserID,
		Name:      m.Name,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}

func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID: d.ID,
		UserID:     d.UserID,
		Name:       d.Name,
		CreatedAt:  d.CreatedAt,
	}
}

func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		ID:        m.CategoryID,
		UserID:    m.UserID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}
