// Package memory holds map-backed repositories used by tests and by the
// memory storage driver. State is lost when the process exits.
package memory

import portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"

func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     NewAccountRepository(),
		TransactionRepo: NewTransactionRepository(),
		CategoryRepo:    NewCategoryRepository(),
		UserRepo:        NewUserRepository(),
	}
}
