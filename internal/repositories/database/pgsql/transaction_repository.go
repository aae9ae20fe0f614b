package pgsql

import (
	"context"
	"fmt"

	"github.com/branchsim/atm_backend/internal/apperrors"
	"github.com/branchsim/atm_backend/internal/core/domain"
	portsrepo "github.com/branchsim/atm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

// SaveTransaction appends a ledger entry inside the caller's transaction.
// The ledger has no update or delete path anywhere in this package.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (account_id, transaction_type, amount, balance_after_transaction, description, status, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`
	err := tx.QueryRow(ctx, query,
		txn.AccountID,
		txn.TransactionType,
		txn.Amount,
		txn.BalanceAfterTransaction,
		txn.Description,
		txn.Status,
		txn.TransactionDate,
	).Scan(&txn.ID)

	if err != nil {
		return fmt.Errorf("%w: failed to save transaction for account %d: %v", apperrors.ErrStoreFailure, txn.AccountID, err)
	}
	return nil
}

// ListTransactionsByAccount returns the account's ledger entries newest
// first. Entries sharing a timestamp fall back to id order so the scan stays
// deterministic. A limit of 0 returns everything.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID int64, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT id, account_id, transaction_type, amount, balance_after_transaction, description, status, transaction_date
		FROM transactions
		WHERE account_id = $1
		ORDER BY transaction_date DESC, id DESC
	`
	args := []any{accountID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list transactions for account %d: %v", apperrors.ErrStoreFailure, accountID, err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		var txn domain.Transaction
		if err := rows.Scan(
			&txn.ID,
			&txn.AccountID,
			&txn.TransactionType,
			&txn.Amount,
			&txn.BalanceAfterTransaction,
			&txn.Description,
			&txn.Status,
			&txn.TransactionDate,
		); err != nil {
			return nil, fmt.Errorf("%w: failed to scan transaction row: %v", apperrors.ErrStoreFailure, err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read transaction rows: %v", apperrors.ErrStoreFailure, err)
	}
	return txns, nil
}
