package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	portssvc "github.com/bacaxnot/finance-sub000/internal/core/ports/services"
	"github.com/bacaxnot/finance-sub000/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	account     *domain.Account
	accountRepo *MockAccountRepository
	service     portssvc.BalanceSvcFacade
}

func (s *BalanceServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	var err error
	s.account, err = domain.CreateAccount(uuid.NewString(), uuid.NewString(), "Wallet", "COP", decimal.NewFromInt(100))
	s.Require().NoError(err)
	s.accountRepo = new(MockAccountRepository)
	s.service = NewBalanceService(s.accountRepo, NewAccountLocks())
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}

func (s *BalanceServiceTestSuite) request(op domain.BalanceOperation, amount int64, currency string) dto.UpdateAccountBalanceRequest {
	return dto.UpdateAccountBalanceRequest{
		AccountID: s.account.ID(),
		Operation: op,
		Amount:    decimal.NewFromInt(amount),
		Currency:  currency,
	}
}

func (s *BalanceServiceTestSuite) TestUpdate_AddAndSubtract() {
	s.accountRepo.On("Search", mock.Anything, s.account.ID()).Return(s.account, nil)
	s.accountRepo.On("Save", mock.Anything, s.account).Return(nil)

	s.Require().NoError(s.service.UpdateAccountBalance(s.ctx, s.request(domain.BalanceAdd, 50, "COP")))
	s.True(s.account.CurrentBalance().Amount().Equal(decimal.NewFromInt(150)))

	s.Require().NoError(s.service.UpdateAccountBalance(s.ctx, s.request(domain.BalanceSubtract, 150, "COP")))
	s.True(s.account.CurrentBalance().Amount().IsZero())
	s.accountRepo.AssertNumberOfCalls(s.T(), "Save", 2)
}

func (s *BalanceServiceTestSuite) TestUpdate_Overdraft() {
	s.accountRepo.On("Search", mock.Anything, s.account.ID()).Return(s.account, nil)

	err := s.service.UpdateAccountBalance(s.ctx, s.request(domain.BalanceSubtract, 101, "COP"))

	s.ErrorIs(err, apperrors.ErrValidation)
	s.accountRepo.AssertNotCalled(s.T(), "Save", mock.Anything, mock.Anything)
}

func (s *BalanceServiceTestSuite) TestUpdate_CurrencyMismatch() {
	s.accountRepo.On("Search", mock.Anything, s.account.ID()).Return(s.account, nil)

	err := s.service.UpdateAccountBalance(s.ctx, s.request(domain.BalanceAdd, 1, "USD"))

	s.ErrorIs(err, apperrors.ErrCurrencyMismatch)
	s.accountRepo.AssertNotCalled(s.T(), "Save", mock.Anything, mock.Anything)
}

func (s *BalanceServiceTestSuite) TestUpdate_InvalidOperation() {
	err := s.service.UpdateAccountBalance(s.ctx, s.request(domain.BalanceOperation("multiply"), 1, "COP"))

	s.ErrorIs(err, apperrors.ErrValidation)
	s.accountRepo.AssertNotCalled(s.T(), "Search", mock.Anything, mock.Anything)
}

func (s *BalanceServiceTestSuite) TestUpdate_AccountMissing() {
	s.accountRepo.On("Search", mock.Anything, s.account.ID()).Return(nil, apperrors.ErrNotFound)

	err := s.service.UpdateAccountBalance(s.ctx, s.request(domain.BalanceAdd, 1, "COP"))

	var notFound *apperrors.EntityDoesNotExistError
	s.ErrorAs(err, &notFound)
}

func (s *BalanceServiceTestSuite) TestUpdate_ConflictIsReturned() {
	s.accountRepo.On("Search", mock.Anything, s.account.ID()).Return(s.account, nil)
	s.accountRepo.On("Save", mock.Anything, s.account).Return(apperrors.ErrConflict)

	err := s.service.UpdateAccountBalance(s.ctx, s.request(domain.BalanceAdd, 1, "COP"))

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *BalanceServiceTestSuite) TestAdjust_ChecksOwnership() {
	s.accountRepo.On("Search", mock.Anything, s.account.ID()).Return(s.account, nil)

	_, err := s.service.AdjustAccountBalance(s.ctx, uuid.NewString(), s.account.ID(), dto.AdjustBalanceRequest{
		Operation: "add",
		Amount:    decimal.NewFromInt(1),
		Currency:  "COP",
	})

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.accountRepo.AssertNotCalled(s.T(), "Save", mock.Anything, mock.Anything)
}

func (s *BalanceServiceTestSuite) TestAdjust_ReturnsReloadedAccount() {
	s.accountRepo.On("Search", mock.Anything, s.account.ID()).Return(s.account, nil)
	s.accountRepo.On("Save", mock.Anything, s.account).Return(nil)

	acc, err := s.service.AdjustAccountBalance(s.ctx, s.account.UserID(), s.account.ID(), dto.AdjustBalanceRequest{
		Operation: "add",
		Amount:    decimal.NewFromInt(25),
		Currency:  "COP",
	})

	s.Require().NoError(err)
	s.True(acc.CurrentBalance().Amount().Equal(decimal.NewFromInt(125)))
}

func (s *BalanceServiceTestSuite) TestAdjust_SaveError() {
	s.accountRepo.On("Search", mock.Anything, s.account.ID()).Return(s.account, nil)
	s.accountRepo.On("Save", mock.Anything, s.account).Return(errors.New("db down"))

	_, err := s.service.AdjustAccountBalance(s.ctx, s.account.UserID(), s.account.ID(), dto.AdjustBalanceRequest{
		Operation: "subtract",
		Amount:    decimal.NewFromInt(5),
		Currency:  "COP",
	})

	s.ErrorContains(err, "db down")
}
