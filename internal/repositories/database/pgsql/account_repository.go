package pgsql

import (
	"context"
	"fmt"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	"github.com/bacaxnot/finance-sub000/internal/models"
	"github.com/bacaxnot/finance-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, user_id, name, currency, initial_balance, current_balance, version, created_at, updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// Save upserts the account. The update only applies when the stored version
// still equals the version the account was loaded with.
func (r *PgxAccountRepository) Save(ctx context.Context, account *domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7 + 1, $8, $9)
		ON CONFLICT (account_id) DO UPDATE SET
			name = EXCLUDED.name,
			current_balance = EXCLUDED.current_balance,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
		WHERE accounts.version = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.UserID,
		m.Name,
		m.Currency,
		m.InitialBalance,
		m.CurrentBalance,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return translate(err, "account", m.AccountID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s changed since version %d", apperrors.ErrConflict, m.AccountID, m.Version)
	}
	account.IncrementVersion()
	return nil
}

func (r *PgxAccountRepository) Search(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, translate(err, "account", accountID)
	}
	return mapping.ToDomainAccount(m)
}

func (r *PgxAccountRepository) SearchByUserID(ctx context.Context, userID string) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, translate(err, "accounts of user", userID)
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms)
}

func (r *PgxAccountRepository) Delete(ctx context.Context, accountID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return translate(err, "account", accountID)
	}
	return expectAffected(tag, "account", accountID)
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.Name,
		&m.Currency,
		&m.InitialBalance,
		&m.CurrentBalance,
		&m.Version,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}
