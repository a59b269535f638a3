package services

import (
	"context"
	"log/slog"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	portssvc "github.com/bacaxnot/finance-sub000/internal/core/ports/services"
	"github.com/bacaxnot/finance-sub000/internal/dto"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	userRepo    portsrepo.UserReader
	locks       *AccountLocks
}

// ServiceOption is a functional option for configuring the account service
type ServiceOption func(*accountService)

// WithUserRepository makes CreateAccount verify that the owner exists.
func WithUserRepository(repo portsrepo.UserReader) ServiceOption {
	return func(s *accountService) {
		s.userRepo = repo
	}
}

// WithAccountLocks shares the per-account locks of the balance funnel, so a
// rename never interleaves with a balance adjustment.
func WithAccountLocks(locks *AccountLocks) ServiceOption {
	return func(s *accountService) {
		s.locks = locks
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(svc)
	}
	if svc.locks == nil {
		svc.locks = NewAccountLocks()
	}
	return svc
}

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	if s.userRepo != nil {
		if _, err := s.userRepo.Search(ctx, userID); err != nil {
			return nil, notFoundAs(err, entityUser, userID)
		}
	}

	account, err := domain.CreateAccount(uuid.NewString(), userID, req.Name, req.Currency, req.InitialBalance)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account in repository", slog.String("account_id", account.ID()))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully in service",
		slog.String("account_id", account.ID()),
		slog.String("currency", account.Currency()))
	return account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.findOwnedAccount(ctx, s.accountRepo, userID, accountID)
	if err != nil {
		return nil, err
	}
	s.LogDebug(ctx, "Account retrieved successfully from service", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]*domain.Account, error) {
	accounts, err := s.accountRepo.SearchByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts from repository", slog.String("user_id", userID))
		return nil, err
	}
	if accounts == nil {
		return []*domain.Account{}, nil
	}
	s.LogDebug(ctx, "Accounts listed successfully from service", slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	ctx, unlock := s.locks.Acquire(ctx, accountID)
	defer unlock()

	account, err := s.findOwnedAccount(ctx, s.accountRepo, userID, accountID)
	if err != nil {
		return nil, err
	}
	if req.Name == nil {
		return account, nil
	}
	if err := account.Rename(*req.Name); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to update account in repository", slog.String("account_id", accountID))
		return nil, err
	}
	s.LogInfo(ctx, "Account renamed", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	ctx, unlock := s.locks.Acquire(ctx, accountID)
	defer unlock()

	if _, err := s.findOwnedAccount(ctx, s.accountRepo, userID, accountID); err != nil {
		return err
	}
	if err := s.accountRepo.Delete(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account in repository", slog.String("account_id", accountID))
		return notFoundAs(err, entityAccount, accountID)
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}
