package services

import (
	"context"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	"github.com/bacaxnot/finance-sub000/internal/dto"
)

// AccountBalanceUpdaterSvc is the single funnel for balance adjustments.
type AccountBalanceUpdaterSvc interface {
	// UpdateAccountBalance loads the account, adds or subtracts the amount and persists it.
	UpdateAccountBalance(ctx context.Context, req dto.UpdateAccountBalanceRequest) error
}

// AccountBalanceAdjusterSvc exposes corrective adjustments to account owners.
type AccountBalanceAdjusterSvc interface {
	// AdjustAccountBalance checks ownership and funnels into UpdateAccountBalance.
	AdjustAccountBalance(ctx context.Context, userID string, accountID string, req dto.AdjustBalanceRequest) (*domain.Account, error)
}

// BalanceSvcFacade combines all balance-related service interfaces
type BalanceSvcFacade interface {
	AccountBalanceUpdaterSvc
	AccountBalanceAdjusterSvc
}
