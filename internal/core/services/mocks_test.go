package services

import (
	"context"
	"testing"
	"time"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	"github.com/bacaxnot/finance-sub000/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) Search(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SearchByUserID(ctx context.Context, userID string) ([]*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) Search(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SearchByAccountID(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SearchByUserID(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Save(ctx context.Context, transaction *domain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) Search(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SearchByUserID(ctx context.Context, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, events []domain.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTIssuer: "test", JWTExpiryDuration: time.Hour}
}

func mustMoney(t *testing.T, amount int64, currency string) domain.Money {
	t.Helper()
	m, err := domain.NewMoney(decimal.NewFromInt(amount), currency)
	if err != nil {
		t.Fatalf("money: %v", err)
	}
	return m
}
