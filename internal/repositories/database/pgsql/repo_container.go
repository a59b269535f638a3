package pgsql

import (
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		CategoryRepo:    newPgxCategoryRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
	}
}
