package pgsql

import (
	"context"
	"fmt"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	"github.com/bacaxnot/finance-sub000/internal/models"
	"github.com/bacaxnot/finance-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, user_id, account_id, category_id, amount, currency, direction, description, transaction_date, notes, created_at, updated_at`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func (r *PgxTransactionRepository) Save(ctx context.Context, transaction *domain.Transaction) error {
	m := mapping.ToModelTransaction(transaction)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (transaction_id) DO UPDATE SET
			category_id = EXCLUDED.category_id,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			direction = EXCLUDED.direction,
			description = EXCLUDED.description,
			transaction_date = EXCLUDED.transaction_date,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.AccountID,
		m.CategoryID,
		m.Amount,
		m.Currency,
		m.Direction,
		m.Description,
		m.Date,
		m.Notes,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return translate(err, "transaction", m.TransactionID)
}

func (r *PgxTransactionRepository) Search(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, translate(err, "transaction", transactionID)
	}
	return mapping.ToDomainTransaction(m)
}

func (r *PgxTransactionRepository) SearchByAccountID(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	return r.list(ctx, `account_id = $1`, accountID)
}

func (r *PgxTransactionRepository) SearchByUserID(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	return r.list(ctx, `user_id = $1`, userID)
}

func (r *PgxTransactionRepository) Delete(ctx context.Context, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return translate(err, "transaction", transactionID)
	}
	return expectAffected(tag, "transaction", transactionID)
}

func (r *PgxTransactionRepository) list(ctx context.Context, where string, arg string) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + where +
		` ORDER BY transaction_date DESC, created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, translate(err, "transactions", arg)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return mapping.ToDomainTransactionSlice(ms)
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.AccountID,
		&m.CategoryID,
		&m.Amount,
		&m.Currency,
		&m.Direction,
		&m.Description,
		&m.Date,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}
