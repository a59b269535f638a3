package pgsql

import (
	"context"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	"github.com/bacaxnot/finance-sub000/internal/models"
	"github.com/bacaxnot/finance-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) Save(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (user_id, name, email, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query, m.UserID, m.Name, m.Email, m.CreatedAt)
	return translate(err, "user", m.UserID)
}

func (r *PgxUserRepository) Search(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT user_id, name, email, created_at FROM users WHERE user_id = $1;`
	var m models.User
	if err := r.Pool.QueryRow(ctx, query, userID).Scan(&m.UserID, &m.Name, &m.Email, &m.CreatedAt); err != nil {
		return nil, translate(err, "user", userID)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}
