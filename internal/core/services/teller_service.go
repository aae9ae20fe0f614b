package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/branchsim/atm_backend/internal/apperrors"
	"github.com/branchsim/atm_backend/internal/core/domain"
	portsrepo "github.com/branchsim/atm_backend/internal/core/ports/repositories"
	portssvc "github.com/branchsim/atm_backend/internal/core/ports/services"
	"github.com/branchsim/atm_backend/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// tellerService implements the TellerSvc interface.
type tellerService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
	txnRepo     portsrepo.TransactionRepository
	transactor  portsrepo.Transactor
}

// NewTellerService creates the financial operations engine.
func NewTellerService(accountRepo portsrepo.AccountRepository, txnRepo portsrepo.TransactionRepository, transactor portsrepo.Transactor) portssvc.TellerSvc {
	return &tellerService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		transactor:  transactor,
	}
}

var _ portssvc.TellerSvc = (*tellerService)(nil)

var cashUnit = decimal.NewFromInt(100)

// Withdraw debits the account and appends a WITHDRAWAL ledger entry in one
// store transaction.
func (s *tellerService) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (*dto.TransactionResponse, error) {
	return s.postEntry(ctx, accountNumber, amount, domain.Withdrawal, "Cash withdrawal")
}

// Deposit credits the account and appends a DEPOSIT ledger entry in one
// store transaction.
func (s *tellerService) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*dto.TransactionResponse, error) {
	return s.postEntry(ctx, accountNumber, amount, domain.Deposit, "Cash deposit")
}

// validateAmount enforces the cash rules shared by both operations: strictly
// positive and an exact multiple of 100.
func validateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return &apperrors.InvalidAmountError{Reason: "amount must be greater than 0"}
	}
	if !amount.Mod(cashUnit).IsZero() {
		return &apperrors.InvalidAmountError{Reason: "amount must be in multiples of 100"}
	}
	return nil
}

// postEntry is the single commit path for both withdraw and deposit. Inside
// one transaction it locks the account row, validates, moves the balance by
// the entry type's signed delta and appends the ledger entry. The same
// instant stamps both last_transaction_date and transaction_date.
func (s *tellerService) postEntry(ctx context.Context, accountNumber string, amount decimal.Decimal, entryType domain.TransactionType, description string) (*dto.TransactionResponse, error) {
	var view dto.TransactionResponse

	err := s.transactor.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.accountRepo.FindAccountByNumberForUpdate(ctx, tx, accountNumber)
		if err != nil {
			return err
		}

		if !account.CanTransact() {
			return fmt.Errorf("%w: account status is %s", apperrors.ErrAccountLocked, account.Status)
		}

		if err := validateAmount(amount); err != nil {
			return err
		}

		if entryType == domain.Withdrawal && account.Balance.LessThan(amount) {
			return &apperrors.InsufficientBalanceError{
				CurrentBalance: account.Balance,
				Requested:      amount,
			}
		}

		now := time.Now().UTC()
		newBalance := account.Balance.Add(entryType.Delta(amount))

		account.Balance = newBalance
		account.LastTransactionDate = &now
		if err := s.accountRepo.UpdateAccount(ctx, tx, *account); err != nil {
			return err
		}

		txn := domain.Transaction{
			AccountID:               account.ID,
			TransactionType:         entryType,
			Amount:                  amount,
			BalanceAfterTransaction: newBalance,
			Description:             description,
			Status:                  domain.TxnSuccess,
			TransactionDate:         now,
		}
		if err := s.txnRepo.SaveTransaction(ctx, tx, &txn); err != nil {
			return err
		}

		view = dto.ToTransactionResponse(txn)
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, "Teller operation failed",
			slog.String("account_number", accountNumber),
			slog.String("type", string(entryType)),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.LogInfo(ctx, "Teller operation completed",
		slog.String("account_number", accountNumber),
		slog.String("type", string(entryType)),
		slog.String("amount", amount.StringFixed(2)),
		slog.String("balance_after", view.BalanceAfterTransaction.StringFixed(2)))
	return &view, nil
}
