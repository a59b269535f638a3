package pgsql

import (
	"errors"
	"fmt"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// translate maps driver errors onto the apperrors taxonomy.
func translate(err error, entity, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, entity, id)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s %s (%s)", apperrors.ErrDuplicate, entity, id, pgErr.ConstraintName)
	}
	return apperrors.NewAppError(500, fmt.Sprintf("database error on %s %s", entity, id), err)
}

// expectAffected turns a zero-row command into ErrNotFound.
func expectAffected(tag pgconn.CommandTag, entity, id string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, entity, id)
	}
	return nil
}
