package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	"github.com/bacaxnot/finance-sub000/internal/repositories/database/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(t *testing.T, userID string) *domain.Account {
	t.Helper()
	acc, err := domain.CreateAccount(uuid.NewString(), userID, "Wallet", "COP", decimal.NewFromInt(1000))
	require.NoError(t, err)
	return acc
}

func newTransaction(t *testing.T, userID, accountID string, date time.Time) *domain.Transaction {
	t.Helper()
	tx, err := domain.CreateTransaction(domain.NewTransactionParams{
		ID:          uuid.NewString(),
		UserID:      userID,
		AccountID:   accountID,
		Amount:      decimal.NewFromInt(10),
		Currency:    "COP",
		Direction:   domain.Outbound,
		Description: "Snack",
		Date:        date,
	})
	require.NoError(t, err)
	return tx
}

func TestAccountRepository_SaveAndSearch(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()
	acc := newAccount(t, uuid.NewString())

	require.NoError(t, repo.Save(ctx, acc))
	assert.Equal(t, int64(1), acc.Version())

	found, err := repo.Search(ctx, acc.ID())
	require.NoError(t, err)
	assert.Equal(t, acc.ToPrimitives(), found.ToPrimitives())
	assert.NotSame(t, acc, found)
}

func TestAccountRepository_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()
	acc := newAccount(t, uuid.NewString())
	require.NoError(t, repo.Save(ctx, acc))

	five, err := domain.NewMoney(decimal.NewFromInt(5), "COP")
	require.NoError(t, err)
	require.NoError(t, acc.AddAmount(five))

	found, err := repo.Search(ctx, acc.ID())
	require.NoError(t, err)
	assert.True(t, found.CurrentBalance().Amount().Equal(decimal.NewFromInt(1000)))
}

func TestAccountRepository_StaleWriteConflicts(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()
	acc := newAccount(t, uuid.NewString())
	require.NoError(t, repo.Save(ctx, acc))

	first, err := repo.Search(ctx, acc.ID())
	require.NoError(t, err)
	second, err := repo.Search(ctx, acc.ID())
	require.NoError(t, err)

	require.NoError(t, first.Rename("Savings"))
	require.NoError(t, repo.Save(ctx, first))

	require.NoError(t, second.Rename("Checking"))
	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	found, err := repo.Search(ctx, acc.ID())
	require.NoError(t, err)
	assert.Equal(t, "Savings", found.Name())
	assert.Equal(t, int64(2), found.Version())
}

func TestAccountRepository_SearchByUserIDAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()
	userID := uuid.NewString()
	a1 := newAccount(t, userID)
	a2 := newAccount(t, userID)
	other := newAccount(t, uuid.NewString())
	for _, a := range []*domain.Account{a1, a2, other} {
		require.NoError(t, repo.Save(ctx, a))
	}

	accounts, err := repo.SearchByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)

	require.NoError(t, repo.Delete(ctx, a1.ID()))
	_, err = repo.Search(ctx, a1.ID())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, a1.ID()), apperrors.ErrNotFound)
}

func TestTransactionRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()
	userID, accountID := uuid.NewString(), uuid.NewString()
	now := time.Now().UTC()

	older := newTransaction(t, userID, accountID, now.Add(-48*time.Hour))
	newer := newTransaction(t, userID, accountID, now.Add(-time.Hour))
	elsewhere := newTransaction(t, userID, uuid.NewString(), now.Add(-2*time.Hour))
	for _, tx := range []*domain.Transaction{older, newer, elsewhere} {
		require.NoError(t, repo.Save(ctx, tx))
	}

	byAccount, err := repo.SearchByAccountID(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, byAccount, 2)
	assert.Equal(t, newer.ID(), byAccount[0].ID())
	assert.Equal(t, older.ID(), byAccount[1].ID())

	byUser, err := repo.SearchByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, byUser, 3)

	found, err := repo.Search(ctx, newer.ID())
	require.NoError(t, err)
	assert.Empty(t, found.PullDomainEvents())

	require.NoError(t, repo.Delete(ctx, newer.ID()))
	_, err = repo.Search(ctx, newer.ID())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, newer.ID()), apperrors.ErrNotFound)
}

func TestCategoryRepository_DuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCategoryRepository()
	userID := uuid.NewString()

	food, err := domain.NewCategory(uuid.NewString(), userID, "Food")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, *food))

	again, err := domain.NewCategory(uuid.NewString(), userID, "Food")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(ctx, *again), apperrors.ErrDuplicate)

	otherUser, err := domain.NewCategory(uuid.NewString(), uuid.NewString(), "Food")
	require.NoError(t, err)
	assert.NoError(t, repo.Save(ctx, *otherUser))

	list, err := repo.SearchByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.Search(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	u, err := domain.NewUser(uuid.NewString(), "Ana", "ana@example.com")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, *u))

	dup, err := domain.NewUser(uuid.NewString(), "Ana Two", "ANA@example.com")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(ctx, *dup), apperrors.ErrDuplicate)

	found, err := repo.Search(ctx, u.UserID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", found.Email)
}
