package dto

import (
	"time"

	"github.com/branchsim/atm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WithdrawRequest carries the amount for a cash withdrawal. The account is
// taken from the session, not the body.
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// DepositRequest carries the amount for a cash deposit.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// TransactionResponse is the redacted view of a ledger entry.
type TransactionResponse struct {
	ID                      int64                    `json:"id"`
	TransactionType         domain.TransactionType   `json:"transactionType"`
	Amount                  decimal.Decimal          `json:"amount"`
	BalanceAfterTransaction decimal.Decimal          `json:"balanceAfterTransaction"`
	Description             string                   `json:"description"`
	Status                  domain.TransactionStatus `json:"status"`
	TransactionDate         time.Time                `json:"transactionDate"`
}

// ToTransactionResponse converts a domain.Transaction to its view.
func ToTransactionResponse(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                      txn.ID,
		TransactionType:         txn.TransactionType,
		Amount:                  txn.Amount,
		BalanceAfterTransaction: txn.BalanceAfterTransaction,
		Description:             txn.Description,
		Status:                  txn.Status,
		TransactionDate:         txn.TransactionDate,
	}
}

// ToTransactionResponses converts a slice of ledger entries, preserving order.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(txn)
	}
	return res
}
