package services

import (
	"log/slog"

	"github.com/bacaxnot/finance-sub000/internal/core/eventbus"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	portssvc "github.com/bacaxnot/finance-sub000/internal/core/ports/services"
	"github.com/bacaxnot/finance-sub000/internal/core/subscribers"
	"github.com/bacaxnot/finance-sub000/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. extra subscribers (event forwarding, auditing) receive every
// transaction event next to the balance subscribers.
func NewServiceContainer(cfg *config.Config, logger *slog.Logger, repos portsrepo.RepositoryProvider, extra ...eventbus.Subscriber) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Every service that writes an account shares one set of locks.
	locks := NewAccountLocks()

	// The balance funnel comes first: the bus subscribers depend on it.
	container.Balance = NewBalanceService(repos.AccountRepo, locks)

	subs := append(subscribers.BalanceSubscribers(container.Balance), extra...)
	bus := eventbus.NewInMemoryBus(logger, subs...)

	container.User = NewUserService(repos.UserRepo)
	container.Account = NewAccountService(repos.AccountRepo, WithUserRepository(repos.UserRepo), WithAccountLocks(locks))
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo, bus, locks)
	container.Token = NewTokenService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.BalanceSvcFacade     = (*balanceService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.CategorySvcFacade    = (*categoryService)(nil)
	_ portssvc.UserSvcFacade        = (*userService)(nil)
	_ portssvc.TokenSvcFacade       = (*tokenService)(nil)
)
