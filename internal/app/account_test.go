package app

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivebay/drivebay/internal/domain"
)

func TestAccountService_OpenAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	opened, err := f.accountSvc.Open(ctx, "Alice", money(100))
	require.NoError(t, err)
	assert.Equal(t, "Alice", opened.OwnerName)
	assert.True(t, opened.Balance.Equal(money(100)))

	got, err := f.accountSvc.Get(ctx, opened.ID)
	require.NoError(t, err)
	require.Len(t, got.Transactions, 2)
	// Newest first: the initial deposit follows the opening entry.
	assert.Equal(t, domain.TxCredit, got.Transactions[0].Kind)
	assert.Equal(t, domain.TxAccountOpened, got.Transactions[1].Kind)
}

func TestAccountService_OpenRejectsInvalid(t *testing.T) {
	f := newFixture(t)

	_, err := f.accountSvc.Open(context.Background(), "   ", money(10))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.accountSvc.Open(context.Background(), "Alice", money(-1))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAccountService_CreditDebit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	opened, err := f.accountSvc.Open(ctx, "Alice", money(100))
	require.NoError(t, err)

	view, err := f.accountSvc.Credit(ctx, opened.ID, money(25.50), "bonus")
	require.NoError(t, err)
	assert.True(t, view.Balance.Equal(money(125.50)))

	view, err = f.accountSvc.Debit(ctx, opened.ID, money(5.25), "fee")
	require.NoError(t, err)
	assert.True(t, view.Balance.Equal(money(120.25)))

	_, err = f.accountSvc.Debit(ctx, opened.ID, money(1000), "too much")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// The failed debit is not persisted.
	got, err := f.accountSvc.Get(ctx, opened.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(money(120.25)))
	assert.Len(t, got.Transactions, 4)
}

func TestAccountService_GetUnknown(t *testing.T) {
	f := newFixture(t)
	_, err := f.accountSvc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountService_TransferConservesTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	diane, err := f.accountSvc.Open(ctx, "Diane", money(500))
	require.NoError(t, err)
	eve, err := f.accountSvc.Open(ctx, "Eve", money(100))
	require.NoError(t, err)

	result, err := f.accountSvc.Transfer(ctx, diane.ID, eve.ID, money(75))
	require.NoError(t, err)
	assert.True(t, result.From.Balance.Equal(money(425)))
	assert.True(t, result.To.Balance.Equal(money(175)))

	total := result.From.Balance.Add(result.To.Balance)
	assert.True(t, total.Equal(money(600)))
}

func TestAccountService_TransferRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	diane, err := f.accountSvc.Open(ctx, "Diane", money(50))
	require.NoError(t, err)
	eve, err := f.accountSvc.Open(ctx, "Eve", money(0))
	require.NoError(t, err)

	_, err = f.accountSvc.Transfer(ctx, diane.ID, diane.ID, money(10))
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.accountSvc.Transfer(ctx, diane.ID, eve.ID, money(100))
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.accountSvc.Transfer(ctx, diane.ID, uuid.New(), money(10))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Nothing persisted by the rejected attempts.
	got, err := f.accountSvc.Get(ctx, diane.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(money(50)))
}

// Transfers persist the two sides sequentially without compensation. If
// the credit-side write fails the debit is already stored; the error
// names the partial state so an operator can reconcile it.
func TestAccountService_TransferPartialPersistOnRepoFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	diane, err := f.accountSvc.Open(ctx, "Diane", money(500))
	require.NoError(t, err)
	eve, err := f.accountSvc.Open(ctx, "Eve", money(100))
	require.NoError(t, err)

	svc := NewAccountService(&failingAccountRepo{AccountRepository: f.accounts, failID: eve.ID}, nil)

	_, err = svc.Transfer(ctx, diane.ID, eve.ID, money(75))
	require.ErrorIs(t, err, errInjected)

	// The debit side is persisted, the credit side is not.
	from, err := f.accountSvc.Get(ctx, diane.ID)
	require.NoError(t, err)
	to, err := f.accountSvc.Get(ctx, eve.ID)
	require.NoError(t, err)
	assert.True(t, from.Balance.Equal(money(425)))
	assert.True(t, to.Balance.Equal(money(100)))
}

func TestAccountService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	opened, err := f.accountSvc.Open(ctx, "Alice", money(10))
	require.NoError(t, err)

	require.NoError(t, f.accountSvc.Delete(ctx, opened.ID))
	_, err = f.accountSvc.Get(ctx, opened.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, f.accountSvc.Delete(ctx, opened.ID), domain.ErrNotFound)
}
