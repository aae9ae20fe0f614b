package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the direction of a ledger entry.
type TransactionType string

const (
	Withdrawal TransactionType = "WITHDRAWAL"
	Deposit    TransactionType = "DEPOSIT"
)

// Delta returns the signed effect of an entry of this type on the account
// balance: positive for deposits, negative for withdrawals.
func (t TransactionType) Delta(amount decimal.Decimal) decimal.Decimal {
	if t == Withdrawal {
		return amount.Neg()
	}
	return amount
}

// TransactionStatus is the outcome recorded on a ledger entry. The teller
// only ever writes SUCCESS; FAILED and PENDING are reserved.
type TransactionStatus string

const (
	TxnSuccess TransactionStatus = "SUCCESS"
	TxnFailed  TransactionStatus = "FAILED"
	TxnPending TransactionStatus = "PENDING"
)

// Transaction is one append-only ledger entry against an account. Entries
// reference the account by id only and are never updated or deleted.
type Transaction struct {
	ID                      int64             `json:"id"`
	AccountID               int64             `json:"accountID"`
	TransactionType         TransactionType   `json:"transactionType"`
	Amount                  decimal.Decimal   `json:"amount"` // Strictly positive
	BalanceAfterTransaction decimal.Decimal   `json:"balanceAfterTransaction"`
	Description             string            `json:"description"`
	Status                  TransactionStatus `json:"status"`
	TransactionDate         time.Time         `json:"transactionDate"`
}
