package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletCredit(t *testing.T) {
	w := &Wallet{Balance: 10}

	txn, err := w.Credit(50, "Wallet top-up")
	require.NoError(t, err)
	assert.Equal(t, float64(60), w.Balance)
	assert.Equal(t, TransactionCredit, txn.Kind)
	assert.Equal(t, float64(50), txn.Amount)
	assert.Equal(t, "Wallet top-up", txn.Description)

	_, err = w.Credit(0, "zero")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = w.Credit(-5, "negative")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, float64(60), w.Balance)
}

func TestWalletDebit(t *testing.T) {
	w := &Wallet{Balance: 100}

	txn, err := w.Debit(50, "Parking booking at Central Plaza")
	require.NoError(t, err)
	assert.Equal(t, float64(50), w.Balance)
	assert.Equal(t, TransactionDebit, txn.Kind)

	_, err = w.Debit(60, "over balance")
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, float64(50), w.Balance)

	_, err = w.Debit(0, "zero")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// Списание ровно до нуля допустимо
	_, err = w.Debit(50, "drain")
	require.NoError(t, err)
	assert.Equal(t, float64(0), w.Balance)
}

func TestWalletLedgerSum(t *testing.T) {
	w := &Wallet{}

	_, err := w.Credit(100, "top-up")
	require.NoError(t, err)
	_, err = w.Debit(30, "booking")
	require.NoError(t, err)
	_, err = w.Credit(30, "refund")
	require.NoError(t, err)

	assert.Equal(t, w.Balance, w.LedgerSum())
	assert.Equal(t, float64(100), w.LedgerSum())
	assert.Len(t, w.Transactions, 3)
}
