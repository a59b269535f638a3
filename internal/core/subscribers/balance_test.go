package subscribers_test

import (
	"context"
	"testing"
	"time"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	"github.com/bacaxnot/finance-sub000/internal/core/subscribers"
	"github.com/bacaxnot/finance-sub000/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const accountID = "5b0e8f52-5a4e-4c0f-9a53-2d1b6a8f6c01"

type MockBalanceUpdater struct {
	mock.Mock
}

func (m *MockBalanceUpdater) UpdateAccountBalance(ctx context.Context, req dto.UpdateAccountBalanceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type handler interface {
	Handle(ctx context.Context, event domain.DomainEvent) error
}

func cop(t *testing.T, amount int64) domain.Money {
	t.Helper()
	m, err := domain.NewMoney(decimal.NewFromInt(amount), "COP")
	require.NoError(t, err)
	return m
}

// matchRequest compares decimals numerically so 100 and 100.00 are the same amount.
func matchRequest(op domain.BalanceOperation, amount int64) any {
	return mock.MatchedBy(func(req dto.UpdateAccountBalanceRequest) bool {
		return req.AccountID == accountID &&
			req.Operation == op &&
			req.Currency == "COP" &&
			req.Amount.Equal(decimal.NewFromInt(amount))
	})
}

func TestBalanceSubscribers_Adjustments(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		sub      func(*MockBalanceUpdater) handler
		event    func(t *testing.T) domain.DomainEvent
		op       domain.BalanceOperation
		amount   int64
		expectOp bool
	}{
		{
			name: "created inbound adds",
			sub: func(m *MockBalanceUpdater) handler {
				return subscribers.NewBalanceOnTransactionCreated(m)
			},
			event: func(t *testing.T) domain.DomainEvent {
				return &domain.TransactionCreated{AccountID: accountID, Amount: cop(t, 100), Direction: domain.Inbound}
			},
			op: domain.BalanceAdd, amount: 100, expectOp: true,
		},
		{
			name: "created outbound subtracts",
			sub: func(m *MockBalanceUpdater) handler {
				return subscribers.NewBalanceOnTransactionCreated(m)
			},
			event: func(t *testing.T) domain.DomainEvent {
				return &domain.TransactionCreated{AccountID: accountID, Amount: cop(t, 200), Direction: domain.Outbound}
			},
			op: domain.BalanceSubtract, amount: 200, expectOp: true,
		},
		{
			name: "inbound amount increase adds the delta only",
			sub: func(m *MockBalanceUpdater) handler {
				return subscribers.NewBalanceOnTransactionAmountUpdated(m)
			},
			event: func(t *testing.T) domain.DomainEvent {
				return &domain.TransactionAmountUpdated{AccountID: accountID, Amount: cop(t, 150), PreviousAmount: cop(t, 100), Direction: domain.Inbound}
			},
			op: domain.BalanceAdd, amount: 50, expectOp: true,
		},
		{
			name: "outbound amount increase subtracts the delta",
			sub: func(m *MockBalanceUpdater) handler {
				return subscribers.NewBalanceOnTransactionAmountUpdated(m)
			},
			event: func(t *testing.T) domain.DomainEvent {
				return &domain.TransactionAmountUpdated{AccountID: accountID, Amount: cop(t, 350), PreviousAmount: cop(t, 200), Direction: domain.Outbound}
			},
			op: domain.BalanceSubtract, amount: 150, expectOp: true,
		},
		{
			name: "outbound amount decrease adds back",
			sub: func(m *MockBalanceUpdater) handler {
				return subscribers.NewBalanceOnTransactionAmountUpdated(m)
			},
			event: func(t *testing.T) domain.DomainEvent {
				return &domain.TransactionAmountUpdated{AccountID: accountID, Amount: cop(t, 50), PreviousAmount: cop(t, 200), Direction: domain.Outbound}
			},
			op: domain.BalanceAdd, amount: 150, expectOp: true,
		},
		{
			name: "unchanged amount is a no-op",
			sub: func(m *MockBalanceUpdater) handler {
				return subscribers.NewBalanceOnTransactionAmountUpdated(m)
			},
			event: func(t *testing.T) domain.DomainEvent {
				return &domain.TransactionAmountUpdated{AccountID: accountID, Amount: cop(t, 100), PreviousAmount: cop(t, 100), Direction: domain.Inbound}
			},
		},
		{
			name: "inbound to outbound subtracts twice the amount",
			sub: func(m *MockBalanceUpdater) handler {
				return subscribers.NewBalanceOnTransactionDirectionUpdated(m)
			},
			event: func(t *testing.T) domain.DomainEvent {
				return &domain.TransactionDirectionUpdated{AccountID: accountID, Amount: cop(t, 100), Direction: domain.Outbound, PreviousDirection: domain.Inbound}
			},
			op: domain.BalanceSubtract, amount: 200, expectOp: true,
		},
		{
			name: "outbound to inbound adds twice the amount",
			sub: func(m *MockBalanceUpdater) handler {
				return subscribers.NewBalanceOnTransactionDirectionUpdated(m)
			},
			event: func(t *testing.T) domain.DomainEvent {
				return &domain.TransactionDirectionUpdated{AccountID: accountID, Amount: cop(t, 350), Direction: domain.Inbound, PreviousDirection: domain.Outbound}
			},
			op: domain.BalanceAdd, amount: 700, expectOp: true,
		},
		{
			name: "unchanged direction is a no-op",
			sub: func(m *MockBalanceUpdater) handler {
				return subscribers.NewBalanceOnTransactionDirectionUpdated(m)
			},
			event: func(t *testing.T) domain.DomainEvent {
				return &domain.TransactionDirectionUpdated{AccountID: accountID, Amount: cop(t, 100), Direction: domain.Inbound, PreviousDirection: domain.Inbound}
			},
		},
		{
			name: "deleting inbound subtracts",
			sub: func(m *MockBalanceUpdater) handler {
				return subscribers.NewBalanceOnTransactionDeleted(m)
			},
			event: func(t *testing.T) domain.DomainEvent {
				return &domain.TransactionDeleted{AccountID: accountID, Amount: cop(t, 100), Direction: domain.Inbound}
			},
			op: domain.BalanceSubtract, amount: 100, expectOp: true,
		},
		{
			name: "deleting outbound adds back",
			sub: func(m *MockBalanceUpdater) handler {
				return subscribers.NewBalanceOnTransactionDeleted(m)
			},
			event: func(t *testing.T) domain.DomainEvent {
				return &domain.TransactionDeleted{AccountID: accountID, Amount: cop(t, 350), Direction: domain.Outbound}
			},
			op: domain.BalanceAdd, amount: 350, expectOp: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updater := new(MockBalanceUpdater)
			if tt.expectOp {
				updater.On("UpdateAccountBalance", ctx, matchRequest(tt.op, tt.amount)).Return(nil).Once()
			}

			err := tt.sub(updater).Handle(ctx, tt.event(t))

			require.NoError(t, err)
			updater.AssertExpectations(t)
			if !tt.expectOp {
				updater.AssertNotCalled(t, "UpdateAccountBalance", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestBalanceSubscribers_PropagateUpdaterErrors(t *testing.T) {
	ctx := context.Background()
	updater := new(MockBalanceUpdater)
	updater.On("UpdateAccountBalance", ctx, mock.Anything).Return(assert.AnError).Once()

	sub := subscribers.NewBalanceOnTransactionCreated(updater)
	err := sub.Handle(ctx, &domain.TransactionCreated{AccountID: accountID, Amount: cop(t, 10), Direction: domain.Inbound})

	assert.ErrorIs(t, err, assert.AnError)
}

func TestBalanceSubscribers_RejectForeignEvents(t *testing.T) {
	updater := new(MockBalanceUpdater)
	sub := subscribers.NewBalanceOnTransactionDeleted(updater)

	err := sub.Handle(context.Background(), &domain.TransactionCreated{AccountID: accountID, Amount: cop(t, 10)})

	assert.Error(t, err)
	updater.AssertNotCalled(t, "UpdateAccountBalance", mock.Anything, mock.Anything)
}

func TestBalanceSubscribers_StaticRegistration(t *testing.T) {
	subs := subscribers.BalanceSubscribers(new(MockBalanceUpdater))

	got := make(map[string][]string, len(subs))
	for _, s := range subs {
		got[s.Name()] = s.SubscribedTo()
	}
	assert.Equal(t, map[string][]string{
		"balance_on_transaction_created":           {domain.TransactionCreatedEvent},
		"balance_on_transaction_amount_updated":    {domain.TransactionAmountUpdatedEvent},
		"balance_on_transaction_direction_updated": {domain.TransactionDirectionUpdatedEvent},
		"balance_on_transaction_deleted":           {domain.TransactionDeletedEvent},
	}, got)
}

func TestBalanceAdjustments_SkipsNoopsAndForeignEvents(t *testing.T) {
	tx, err := domain.CreateTransaction(domain.NewTransactionParams{
		ID:          "2c9a4f1e-7b3d-4e8a-9c6f-0a1b2c3d4e5f",
		UserID:      "9f1c2d3e-4b5a-4678-9abc-def012345678",
		AccountID:   accountID,
		Amount:      decimal.NewFromInt(200),
		Currency:    "COP",
		Direction:   domain.Outbound,
		Description: "Rent",
		Date:        time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)
	tx.PullDomainEvents()

	amount := decimal.NewFromInt(350)
	inbound := domain.Inbound
	notes := "split with roommate"
	require.NoError(t, tx.Update(domain.TransactionUpdate{Amount: &amount, Direction: &inbound, Notes: &notes}))
	events := tx.PullDomainEvents()
	require.Len(t, events, 3)

	reqs, err := subscribers.BalanceAdjustments(events)

	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, domain.BalanceSubtract, reqs[0].Operation)
	assert.True(t, reqs[0].Amount.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, domain.BalanceAdd, reqs[1].Operation)
	assert.True(t, reqs[1].Amount.Equal(decimal.NewFromInt(700)))
}
