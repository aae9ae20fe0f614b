package services

import (
	"context"

	portsrepo "github.com/branchsim/atm_backend/internal/core/ports/repositories"
	portssvc "github.com/branchsim/atm_backend/internal/core/ports/services"
	"github.com/branchsim/atm_backend/internal/dto"
)

// recentEntryCount caps the short history projection shown on the dashboard.
const recentEntryCount = 10

// historyService implements the HistorySvc interface.
type historyService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
	txnRepo     portsrepo.TransactionRepository
}

// NewHistoryService creates the read-only ledger projection.
func NewHistoryService(accountRepo portsrepo.AccountRepository, txnRepo portsrepo.TransactionRepository) portssvc.HistorySvc {
	return &historyService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}
}

var _ portssvc.HistorySvc = (*historyService)(nil)

// History returns all of the account's ledger entries newest first. An empty
// slice is a valid result for an existing account.
func (s *historyService) History(ctx context.Context, accountNumber string) ([]dto.TransactionResponse, error) {
	return s.list(ctx, accountNumber, 0)
}

// Recent returns the newest ten entries.
func (s *historyService) Recent(ctx context.Context, accountNumber string) ([]dto.TransactionResponse, error) {
	return s.list(ctx, accountNumber, recentEntryCount)
}

func (s *historyService) list(ctx context.Context, accountNumber string, limit int) ([]dto.TransactionResponse, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.ListTransactionsByAccount(ctx, account.ID, limit)
	if err != nil {
		return nil, err
	}
	return dto.ToTransactionResponses(txns), nil
}
