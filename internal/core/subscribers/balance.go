// Package subscribers holds the reactions to transaction lifecycle events.
package subscribers

import (
	"context"
	"fmt"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	"github.com/bacaxnot/finance-sub000/internal/core/eventbus"
	portssvc "github.com/bacaxnot/finance-sub000/internal/core/ports/services"
	"github.com/bacaxnot/finance-sub000/internal/dto"
	"github.com/shopspring/decimal"
)

// BalanceSubscribers returns the static list of subscribers that keep account
// balances in step with their transactions.
func BalanceSubscribers(balance portssvc.AccountBalanceUpdaterSvc) []eventbus.Subscriber {
	return []eventbus.Subscriber{
		NewBalanceOnTransactionCreated(balance),
		NewBalanceOnTransactionAmountUpdated(balance),
		NewBalanceOnTransactionDirectionUpdated(balance),
		NewBalanceOnTransactionDeleted(balance),
	}
}

// BalanceAdjuster computes the balance adjustment an event calls for. ok is
// false when the event needs none.
type BalanceAdjuster interface {
	Adjustment(event domain.DomainEvent) (req dto.UpdateAccountBalanceRequest, ok bool, err error)
}

// adjusters indexes the balance subscribers by event name for BalanceAdjustments.
var adjusters = func() map[string]BalanceAdjuster {
	index := make(map[string]BalanceAdjuster)
	for _, s := range BalanceSubscribers(nil) {
		for _, name := range s.SubscribedTo() {
			index[name] = s.(BalanceAdjuster)
		}
	}
	return index
}()

// BalanceAdjustments returns the adjustments the balance subscribers will make
// when the events are published, without applying them.
func BalanceAdjustments(events []domain.DomainEvent) ([]dto.UpdateAccountBalanceRequest, error) {
	var reqs []dto.UpdateAccountBalanceRequest
	for _, e := range events {
		adjuster, ok := adjusters[e.EventName()]
		if !ok {
			continue
		}
		req, ok, err := adjuster.Adjustment(e)
		if err != nil {
			return nil, err
		}
		if ok {
			reqs = append(reqs, req)
		}
	}
	return reqs, nil
}

func handle(ctx context.Context, balance portssvc.AccountBalanceUpdaterSvc, adjuster BalanceAdjuster, event domain.DomainEvent) error {
	req, ok, err := adjuster.Adjustment(event)
	if err != nil || !ok {
		return err
	}
	return balance.UpdateAccountBalance(ctx, req)
}

func operationFor(d domain.Direction) domain.BalanceOperation {
	if d == domain.Inbound {
		return domain.BalanceAdd
	}
	return domain.BalanceSubtract
}

func unexpected(sub string, event domain.DomainEvent) error {
	return fmt.Errorf("%s cannot handle %s (%T)", sub, event.EventName(), event)
}

// BalanceOnTransactionCreated applies a new transaction to its account.
type BalanceOnTransactionCreated struct {
	balance portssvc.AccountBalanceUpdaterSvc
}

func NewBalanceOnTransactionCreated(balance portssvc.AccountBalanceUpdaterSvc) *BalanceOnTransactionCreated {
	return &BalanceOnTransactionCreated{balance: balance}
}

func (s *BalanceOnTransactionCreated) Name() string { return "balance_on_transaction_created" }

func (s *BalanceOnTransactionCreated) SubscribedTo() []string {
	return []string{domain.TransactionCreatedEvent}
}

func (s *BalanceOnTransactionCreated) Handle(ctx context.Context, event domain.DomainEvent) error {
	return handle(ctx, s.balance, s, event)
}

func (s *BalanceOnTransactionCreated) Adjustment(event domain.DomainEvent) (dto.UpdateAccountBalanceRequest, bool, error) {
	e, ok := event.(*domain.TransactionCreated)
	if !ok {
		return dto.UpdateAccountBalanceRequest{}, false, unexpected(s.Name(), event)
	}
	return dto.UpdateAccountBalanceRequest{
		AccountID: e.AccountID,
		Operation: operationFor(e.Direction),
		Amount:    e.Amount.Amount(),
		Currency:  e.Amount.Currency(),
	}, true, nil
}

// BalanceOnTransactionAmountUpdated applies the difference between the new and
// the previous amount.
type BalanceOnTransactionAmountUpdated struct {
	balance portssvc.AccountBalanceUpdaterSvc
}

func NewBalanceOnTransactionAmountUpdated(balance portssvc.AccountBalanceUpdaterSvc) *BalanceOnTransactionAmountUpdated {
	return &BalanceOnTransactionAmountUpdated{balance: balance}
}

func (s *BalanceOnTransactionAmountUpdated) Name() string {
	return "balance_on_transaction_amount_updated"
}

func (s *BalanceOnTransactionAmountUpdated) SubscribedTo() []string {
	return []string{domain.TransactionAmountUpdatedEvent}
}

func (s *BalanceOnTransactionAmountUpdated) Handle(ctx context.Context, event domain.DomainEvent) error {
	return handle(ctx, s.balance, s, event)
}

func (s *BalanceOnTransactionAmountUpdated) Adjustment(event domain.DomainEvent) (dto.UpdateAccountBalanceRequest, bool, error) {
	e, ok := event.(*domain.TransactionAmountUpdated)
	if !ok {
		return dto.UpdateAccountBalanceRequest{}, false, unexpected(s.Name(), event)
	}
	if e.Amount.Currency() != e.PreviousAmount.Currency() {
		// A currency change cannot be expressed as a delta on one account.
		return dto.UpdateAccountBalanceRequest{}, false, fmt.Errorf("%s: amount of transaction %s changed currency from %s to %s",
			s.Name(), e.AggregateID(), e.PreviousAmount.Currency(), e.Amount.Currency())
	}

	delta := e.Amount.Amount().Sub(e.PreviousAmount.Amount())
	if delta.IsZero() {
		return dto.UpdateAccountBalanceRequest{}, false, nil
	}
	signed := domain.SignedAmount(delta, e.Direction)
	op := domain.BalanceAdd
	if signed.IsNegative() {
		op = domain.BalanceSubtract
	}
	return dto.UpdateAccountBalanceRequest{
		AccountID: e.AccountID,
		Operation: op,
		Amount:    signed.Abs(),
		Currency:  e.Amount.Currency(),
	}, true, nil
}

// BalanceOnTransactionDirectionUpdated undoes the old direction and applies the
// new one, which moves twice the amount.
type BalanceOnTransactionDirectionUpdated struct {
	balance portssvc.AccountBalanceUpdaterSvc
}

func NewBalanceOnTransactionDirectionUpdated(balance portssvc.AccountBalanceUpdaterSvc) *BalanceOnTransactionDirectionUpdated {
	return &BalanceOnTransactionDirectionUpdated{balance: balance}
}

func (s *BalanceOnTransactionDirectionUpdated) Name() string {
	return "balance_on_transaction_direction_updated"
}

func (s *BalanceOnTransactionDirectionUpdated) SubscribedTo() []string {
	return []string{domain.TransactionDirectionUpdatedEvent}
}

func (s *BalanceOnTransactionDirectionUpdated) Handle(ctx context.Context, event domain.DomainEvent) error {
	return handle(ctx, s.balance, s, event)
}

func (s *BalanceOnTransactionDirectionUpdated) Adjustment(event domain.DomainEvent) (dto.UpdateAccountBalanceRequest, bool, error) {
	e, ok := event.(*domain.TransactionDirectionUpdated)
	if !ok {
		return dto.UpdateAccountBalanceRequest{}, false, unexpected(s.Name(), event)
	}
	if e.Direction == e.PreviousDirection {
		return dto.UpdateAccountBalanceRequest{}, false, nil
	}
	return dto.UpdateAccountBalanceRequest{
		AccountID: e.AccountID,
		Operation: operationFor(e.Direction),
		Amount:    e.Amount.Amount().Mul(decimal.NewFromInt(2)),
		Currency:  e.Amount.Currency(),
	}, true, nil
}

// BalanceOnTransactionDeleted reverses the effect of a removed transaction.
type BalanceOnTransactionDeleted struct {
	balance portssvc.AccountBalanceUpdaterSvc
}

func NewBalanceOnTransactionDeleted(balance portssvc.AccountBalanceUpdaterSvc) *BalanceOnTransactionDeleted {
	return &BalanceOnTransactionDeleted{balance: balance}
}

func (s *BalanceOnTransactionDeleted) Name() string { return "balance_on_transaction_deleted" }

func (s *BalanceOnTransactionDeleted) SubscribedTo() []string {
	return []string{domain.TransactionDeletedEvent}
}

func (s *BalanceOnTransactionDeleted) Handle(ctx context.Context, event domain.DomainEvent) error {
	return handle(ctx, s.balance, s, event)
}

func (s *BalanceOnTransactionDeleted) Adjustment(event domain.DomainEvent) (dto.UpdateAccountBalanceRequest, bool, error) {
	e, ok := event.(*domain.TransactionDeleted)
	if !ok {
		return dto.UpdateAccountBalanceRequest{}, false, unexpected(s.Name(), event)
	}
	return dto.UpdateAccountBalanceRequest{
		AccountID: e.AccountID,
		Operation: operationFor(e.Direction.Opposite()),
		Amount:    e.Amount.Amount(),
		Currency:  e.Amount.Currency(),
	}, true, nil
}
