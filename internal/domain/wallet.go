package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidAmount возвращается при нулевой или отрицательной сумме операции
	ErrInvalidAmount = errors.New("domain: transaction amount must be positive")

	// ErrInsufficientFunds возвращается при списании суммы больше баланса
	ErrInsufficientFunds = errors.New("domain: insufficient wallet balance")
)

// TransactionKind is the direction of a wallet transaction
type TransactionKind string

const (
	TransactionCredit TransactionKind = "credit"
	TransactionDebit  TransactionKind = "debit"
)

// WalletTransaction is a single entry of the append-only wallet ledger
type WalletTransaction struct {
	ID          int64
	UserID      int64
	Kind        TransactionKind
	Amount      float64
	Description string
	CreatedAt   time.Time
}

// Wallet holds a user's balance together with the ledger backing it.
// Invariant: Balance equals the signed sum of all transactions
// (credits positive, debits negative).
type Wallet struct {
	Balance      float64
	Transactions []WalletTransaction
}

// Credit adds funds and appends a credit entry to the ledger
func (w *Wallet) Credit(amount float64, description string) (*WalletTransaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	txn := WalletTransaction{
		Kind:        TransactionCredit,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now(),
	}
	w.Balance += amount
	w.Transactions = append(w.Transactions, txn)
	return &txn, nil
}

// Debit withdraws funds and appends a debit entry to the ledger.
// The balance is never allowed to go negative.
func (w *Wallet) Debit(amount float64, description string) (*WalletTransaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if w.Balance < amount {
		return nil, ErrInsufficientFunds
	}
	txn := WalletTransaction{
		Kind:        TransactionDebit,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now(),
	}
	w.Balance -= amount
	w.Transactions = append(w.Transactions, txn)
	return &txn, nil
}

// LedgerSum returns the signed sum of all transactions.
// For a consistent wallet it equals Balance.
func (w *Wallet) LedgerSum() float64 {
	var sum float64
	for _, txn := range w.Transactions {
		switch txn.Kind {
		case TransactionCredit:
			sum += txn.Amount
		case TransactionDebit:
			sum -= txn.Amount
		}
	}
	return sum
}
