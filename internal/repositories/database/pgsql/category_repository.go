package pgsql

import (
	"context"
	"fmt"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	"github.com/bacaxnot/finance-sub000/internal/models"
	"github.com/bacaxnot/finance-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) *PgxCategoryRepository {
	return &PgxCategoryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func (r *PgxCategoryRepository) Save(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO categories (category_id, user_id, name, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query, m.CategoryID, m.UserID, m.Name, m.CreatedAt)
	return translate(err, "category", m.CategoryID)
}

func (r *PgxCategoryRepository) Search(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT category_id, user_id, name, created_at FROM categories WHERE category_id = $1;`
	var m models.Category
	err := r.Pool.QueryRow(ctx, query, categoryID).Scan(&m.CategoryID, &m.UserID, &m.Name, &m.CreatedAt)
	if err != nil {
		return nil, translate(err, "category", categoryID)
	}
	c := mapping.ToDomainCategory(m)
	return &c, nil
}

func (r *PgxCategoryRepository) SearchByUserID(ctx context.Context, userID string) ([]domain.Category, error) {
	query := `SELECT category_id, user_id, name, created_at FROM categories WHERE user_id = $1 ORDER BY name ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, translate(err, "categories of user", userID)
	}
	defer rows.Close()

	var ms []models.Category
	for rows.Next() {
		var m models.Category
		if err := rows.Scan(&m.CategoryID, &m.UserID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return mapping.ToDomainCategorySlice(ms), nil
}
