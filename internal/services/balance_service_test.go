package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgeradmin/internal/models"
)

func TestInitialBalance_NoHistoryReturnsStoredBalance(t *testing.T) {
	trx := newStubTransactions()
	bal := newStubBalances()
	_, err := bal.Set(context.Background(), "u1", 900)
	require.NoError(t, err)
	svc := NewBalanceService(trx, bal)

	initial, err := svc.InitialBalance(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, int64(900), initial)
}

func TestInitialBalance_ReverseDerivesOpeningBalance(t *testing.T) {
	// Opening 500, then +1000 and -200: stored balance 1300.
	trx := newStubTransactions(
		models.Transaction{ID: "t1", UserID: "u1", Type: models.TxnDeposit, Status: models.TxnSuccess, Amount: 1000, TransactionDate: at(1), BalanceAfter: 1500},
		models.Transaction{ID: "t2", UserID: "u1", Type: models.TxnWithdrawal, Status: models.TxnSuccess, Amount: 200, TransactionDate: at(2), BalanceAfter: 1300},
	)
	bal := newStubBalances()
	_, err := bal.Set(context.Background(), "u1", 1300)
	require.NoError(t, err)
	svc := NewBalanceService(trx, bal)

	initial, err := svc.InitialBalance(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, int64(500), initial)
}

func TestInitialBalance_IgnoresNonSuccessRows(t *testing.T) {
	trx := newStubTransactions(
		models.Transaction{ID: "t1", UserID: "u1", Type: models.TxnDeposit, Status: models.TxnFailed, Amount: 9999, TransactionDate: at(1)},
		models.Transaction{ID: "t2", UserID: "u1", Type: models.TxnDeposit, Status: models.TxnSuccess, Amount: 100, TransactionDate: at(2), BalanceAfter: 100},
	)
	bal := newStubBalances()
	_, err := bal.Set(context.Background(), "u1", 100)
	require.NoError(t, err)
	svc := NewBalanceService(trx, bal)

	initial, err := svc.InitialBalance(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, int64(0), initial)
}

func TestRecalculateAll_RebuildsChainFromOverride(t *testing.T) {
	// Snapshots are all stale; a replay from 100 must rewrite every row.
	trx := newStubTransactions(
		models.Transaction{ID: "t1", UserID: "u1", Type: models.TxnDeposit, Status: models.TxnSuccess, Amount: 50, TransactionDate: at(1), BalanceAfter: 0},
		models.Transaction{ID: "t2", UserID: "u1", Type: models.TxnFee, Status: models.TxnSuccess, Amount: 30, TransactionDate: at(2), BalanceAfter: 0},
		models.Transaction{ID: "t3", UserID: "u1", Type: models.TxnDeposit, Status: models.TxnPending, Amount: 500, TransactionDate: at(3), BalanceAfter: 0},
	)
	bal := newStubBalances()
	svc := NewBalanceService(trx, bal)

	initial := int64(100)
	res, err := svc.RecalculateAll(context.Background(), "u1", &initial)

	require.NoError(t, err)
	assert.Equal(t, int64(120), res.NewBalance)
	assert.Equal(t, 3, res.RowsUpdated)

	t1, _ := trx.GetByID(context.Background(), "t1")
	t2, _ := trx.GetByID(context.Background(), "t2")
	t3, _ := trx.GetByID(context.Background(), "t3")
	assert.Equal(t, int64(150), t1.BalanceAfter)
	assert.Equal(t, int64(120), t2.BalanceAfter)
	assert.Equal(t, int64(120), t3.BalanceAfter, "pending row carries the running balance unchanged")

	b, err := bal.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(120), b.Amount)
}

func TestRecalculateAll_NoOverrideDerivesInitial(t *testing.T) {
	trx := newStubTransactions(
		models.Transaction{ID: "t1", UserID: "u1", Type: models.TxnDeposit, Status: models.TxnSuccess, Amount: 100, TransactionDate: at(1), BalanceAfter: 400},
	)
	bal := newStubBalances()
	_, err := bal.Set(context.Background(), "u1", 400)
	require.NoError(t, err)
	svc := NewBalanceService(trx, bal)

	res, err := svc.RecalculateAll(context.Background(), "u1", nil)

	require.NoError(t, err)
	// derived opening 300, chain already consistent
	assert.Equal(t, int64(400), res.NewBalance)
	assert.Equal(t, 0, res.RowsUpdated)
}

func TestRecalculateAll_EmptyHistorySetsInitial(t *testing.T) {
	trx := newStubTransactions()
	bal := newStubBalances()
	svc := NewBalanceService(trx, bal)

	initial := int64(250)
	res, err := svc.RecalculateAll(context.Background(), "u1", &initial)

	require.NoError(t, err)
	assert.Equal(t, int64(250), res.NewBalance)

	b, err := bal.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(250), b.Amount)
}
