package services

import (
	"context"
	"log/slog"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	portssvc "github.com/bacaxnot/finance-sub000/internal/core/ports/services"
	"github.com/bacaxnot/finance-sub000/internal/core/subscribers"
	"github.com/bacaxnot/finance-sub000/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionService runs the transaction lifecycle. It never touches an
// account balance itself: balances follow from the events it publishes.
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountReader
	categoryRepo    portsrepo.CategoryReader
	bus             portssvc.EventBus
	locks           *AccountLocks
}

func NewTransactionService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	categoryRepo portsrepo.CategoryReader,
	bus portssvc.EventBus,
	locks *AccountLocks,
) portssvc.TransactionSvcFacade {
	if locks == nil {
		locks = NewAccountLocks()
	}
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		bus:             bus,
		locks:           locks,
	}
}

// The account stays locked from the balance check until the published events
// have been applied, so concurrent changes to one account see each other's effect.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if !domain.IsValidCurrencyCode(req.Currency) {
		return nil, apperrors.NewInvalidArgument("invalid currency code %q", req.Currency)
	}

	ctx, unlock := s.locks.Acquire(ctx, req.AccountID)
	defer unlock()

	account, err := s.findOwnedAccount(ctx, s.accountRepo, userID, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.HasCurrency(req.Currency) {
		return nil, apperrors.NewCurrencyMismatch(account.Currency(), req.Currency)
	}
	if req.CategoryID != nil {
		if _, err := s.findOwnedCategory(ctx, s.categoryRepo, userID, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	tx, err := domain.CreateTransaction(domain.NewTransactionParams{
		ID:          uuid.NewString(),
		UserID:      userID,
		AccountID:   account.ID(),
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Direction:   domain.Direction(req.Direction),
		Description: req.Description,
		Date:        req.Date,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, err
	}

	events := tx.PullDomainEvents()
	if err := ensureAbsorbable(account, events); err != nil {
		return nil, err
	}
	if err := s.transactionRepo.Save(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", tx.ID()))
		return nil, err
	}
	s.publish(ctx, events)

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", tx.ID()),
		slog.String("account_id", tx.AccountID()),
		slog.String("direction", string(tx.Direction())),
		slog.String("amount", tx.Amount().String()))
	return tx, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	update := req.ToDomainUpdate()
	if update.Currency != nil && !domain.IsValidCurrencyCode(*update.Currency) {
		return nil, apperrors.NewInvalidArgument("invalid currency code %q", *update.Currency)
	}

	ctx, tx, unlock, err := s.lockOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	if update.IsEmpty() {
		return tx, nil
	}

	account, err := s.accountRepo.Search(ctx, tx.AccountID())
	if err != nil {
		return nil, notFoundAs(err, entityAccount, tx.AccountID())
	}
	if update.Currency != nil && !account.HasCurrency(*update.Currency) {
		return nil, apperrors.NewCurrencyMismatch(account.Currency(), *update.Currency)
	}
	if update.CategoryID != nil && !update.ClearCategory {
		if _, err := s.findOwnedCategory(ctx, s.categoryRepo, userID, *update.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := tx.Update(update); err != nil {
		return nil, err
	}
	events := tx.PullDomainEvents()
	if err := ensureAbsorbable(account, events); err != nil {
		return nil, err
	}
	if err := s.transactionRepo.Save(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", tx.ID()))
		return nil, err
	}
	s.publish(ctx, events)

	s.LogInfo(ctx, "Transaction updated",
		slog.String("transaction_id", tx.ID()),
		slog.Int("events", len(events)))
	return tx, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	ctx, tx, unlock, err := s.lockOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}
	defer unlock()

	account, err := s.accountRepo.Search(ctx, tx.AccountID())
	if err != nil {
		return notFoundAs(err, entityAccount, tx.AccountID())
	}

	tx.Delete()
	events := tx.PullDomainEvents()
	if err := ensureAbsorbable(account, events); err != nil {
		return err
	}
	if err := s.transactionRepo.Delete(ctx, tx.ID()); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", tx.ID()))
		return notFoundAs(err, entityTransaction, tx.ID())
	}
	s.publish(ctx, events)

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", tx.ID()))
	return nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	return s.findOwnedTransaction(ctx, userID, transactionID)
}

func (s *transactionService) ListTransactionsByAccount(ctx context.Context, userID string, accountID string) ([]*domain.Transaction, error) {
	if _, err := s.findOwnedAccount(ctx, s.accountRepo, userID, accountID); err != nil {
		return nil, err
	}
	txs, err := s.transactionRepo.SearchByAccountID(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account transactions", slog.String("account_id", accountID))
		return nil, err
	}
	return txs, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	txs, err := s.transactionRepo.SearchByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, err
	}
	return txs, nil
}

func (s *transactionService) findOwnedTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	tx, err := s.transactionRepo.Search(ctx, transactionID)
	if err != nil {
		return nil, notFoundAs(err, entityTransaction, transactionID)
	}
	if !tx.BelongsTo(userID) {
		s.GetLogger(ctx).Warn("Transaction access denied",
			slog.String("transaction_id", transactionID),
			slog.String("user_id", userID))
		return nil, apperrors.NewAuthorization(entityTransaction, transactionID, userID)
	}
	return tx, nil
}

// lockOwnedTransaction locks the transaction's account and reloads the
// transaction under that lock, so the change is computed from its latest state.
func (s *transactionService) lockOwnedTransaction(ctx context.Context, userID, transactionID string) (context.Context, *domain.Transaction, func(), error) {
	tx, err := s.findOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return ctx, nil, nil, err
	}
	ctx, unlock := s.locks.Acquire(ctx, tx.AccountID())
	if tx, err = s.findOwnedTransaction(ctx, userID, transactionID); err != nil {
		unlock()
		return ctx, nil, nil, err
	}
	return ctx, tx, unlock, nil
}

// publish hands events to the bus. Delivery problems are logged by the bus;
// the write they follow has already succeeded.
func (s *transactionService) publish(ctx context.Context, events []domain.DomainEvent) {
	if err := s.bus.Publish(ctx, events); err != nil {
		s.LogError(ctx, err, "Failed to publish domain events", slog.Int("events", len(events)))
	}
}

// ensureAbsorbable rejects a change whose balance adjustments could drive the
// account below zero. Adjustments from one publish run concurrently in any
// order, so every subtraction must fit in the current balance on its own,
// regardless of additions made by the same change.
func ensureAbsorbable(account *domain.Account, events []domain.DomainEvent) error {
	reqs, err := subscribers.BalanceAdjustments(events)
	if err != nil {
		return apperrors.NewInvalidArgument("%s", err.Error())
	}
	withdrawn := decimal.Zero
	for _, req := range reqs {
		if req.AccountID != account.ID() {
			continue
		}
		if !account.HasCurrency(req.Currency) {
			return apperrors.NewCurrencyMismatch(account.Currency(), req.Currency)
		}
		if req.Operation == domain.BalanceSubtract {
			withdrawn = withdrawn.Add(req.Amount)
		}
	}
	if !account.CanAbsorb(withdrawn.Neg()) {
		return apperrors.NewInvalidArgument("account %s balance %s cannot cover %s %s",
			account.ID(), account.CurrentBalance().String(), withdrawn.String(), account.Currency())
	}
	return nil
}
