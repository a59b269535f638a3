package services

import (
	"context"
	"log/slog"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	portssvc "github.com/bacaxnot/finance-sub000/internal/core/ports/services"
	"github.com/bacaxnot/finance-sub000/internal/dto"
)

// balanceService is the single funnel for account balance adjustments.
type balanceService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	locks       *AccountLocks
}

// NewBalanceService creates the balance funnel. Adjustments to the same account
// are serialized within the process through locks, which must be the instance
// the other account writers use; across processes the repository's version
// check rejects stale writes with apperrors.ErrConflict.
func NewBalanceService(accountRepo portsrepo.AccountRepositoryFacade, locks *AccountLocks) portssvc.BalanceSvcFacade {
	if locks == nil {
		locks = NewAccountLocks()
	}
	return &balanceService{
		accountRepo: accountRepo,
		locks:       locks,
	}
}

func (s *balanceService) UpdateAccountBalance(ctx context.Context, req dto.UpdateAccountBalanceRequest) error {
	if !req.Operation.IsValid() {
		return apperrors.NewInvalidArgument("invalid balance operation %q", string(req.Operation))
	}
	amount, err := domain.NewMoney(req.Amount, req.Currency)
	if err != nil {
		return err
	}

	ctx, unlock := s.locks.Acquire(ctx, req.AccountID)
	defer unlock()

	account, err := s.accountRepo.Search(ctx, req.AccountID)
	if err != nil {
		return notFoundAs(err, entityAccount, req.AccountID)
	}

	switch req.Operation {
	case domain.BalanceAdd:
		err = account.AddAmount(amount)
	case domain.BalanceSubtract:
		err = account.SubtractAmount(amount)
	}
	if err != nil {
		s.GetLogger(ctx).Warn("Balance adjustment rejected",
			slog.String("account_id", req.AccountID),
			slog.String("operation", string(req.Operation)),
			slog.String("amount", amount.String()),
			slog.String("error", err.Error()))
		return err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to persist account balance", slog.String("account_id", req.AccountID))
		return err
	}

	s.LogInfo(ctx, "Account balance updated",
		slog.String("account_id", req.AccountID),
		slog.String("operation", string(req.Operation)),
		slog.String("amount", amount.String()),
		slog.String("balance", account.CurrentBalance().String()))
	return nil
}

func (s *balanceService) AdjustAccountBalance(ctx context.Context, userID string, accountID string, req dto.AdjustBalanceRequest) (*domain.Account, error) {
	if _, err := s.findOwnedAccount(ctx, s.accountRepo, userID, accountID); err != nil {
		return nil, err
	}
	op, err := domain.ParseBalanceOperation(req.Operation)
	if err != nil {
		return nil, err
	}

	if err := s.UpdateAccountBalance(ctx, dto.UpdateAccountBalanceRequest{
		AccountID: accountID,
		Operation: op,
		Amount:    req.Amount,
		Currency:  req.Currency,
	}); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.Search(ctx, accountID)
	if err != nil {
		return nil, notFoundAs(err, entityAccount, accountID)
	}
	return account, nil
}
