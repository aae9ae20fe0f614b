package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/branchsim/atm_backend/internal/apperrors"
	"github.com/branchsim/atm_backend/internal/core/domain"
	portsrepo "github.com/branchsim/atm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `id, account_number, pin, account_holder_name, balance, status, email, phone_number, created_date, last_transaction_date, failed_login_attempts`

// row is the common scan target for pool and tx queries.
type row interface {
	Scan(dest ...any) error
}

func scanAccount(r row) (*domain.Account, error) {
	var acc domain.Account
	var email, phone sql.NullString
	var lastTxn sql.NullTime

	err := r.Scan(
		&acc.ID,
		&acc.AccountNumber,
		&acc.PIN,
		&acc.AccountHolderName,
		&acc.Balance,
		&acc.Status,
		&email,
		&phone,
		&acc.CreatedDate,
		&lastTxn,
		&acc.FailedLoginAttempts,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		acc.Email = &email.String
	}
	if phone.Valid {
		acc.PhoneNumber = &phone.String
	}
	if lastTxn.Valid {
		acc.LastTransactionDate = &lastTxn.Time
	}
	return &acc, nil
}

// FindAccountByNumber retrieves an account by its customer-facing number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`

	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountNumber)
		}
		return nil, fmt.Errorf("%w: failed to find account %s: %v", apperrors.ErrStoreFailure, accountNumber, err)
	}
	return acc, nil
}

// FindAccountByNumberForUpdate loads the account row under write intent so
// concurrent teller and authenticator operations on the same account
// serialize on the row lock before reading the balance or the counter.
func (r *PgxAccountRepository) FindAccountByNumberForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1 FOR UPDATE;`

	acc, err := scanAccount(tx.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountNumber)
		}
		return nil, fmt.Errorf("%w: failed to lock account %s: %v", apperrors.ErrStoreFailure, accountNumber, err)
	}
	return acc, nil
}

// AccountExists reports whether an account with the given number exists.
func (r *PgxAccountRepository) AccountExists(ctx context.Context, accountNumber string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: failed to check account %s: %v", apperrors.ErrStoreFailure, accountNumber, err)
	}
	return exists, nil
}

// SaveAccount inserts a new account and fills in the store-assigned ID and
// CreatedDate.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (account_number, pin, account_holder_name, balance, status, email, phone_number, failed_login_attempts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_date;
	`
	var email, phone sql.NullString
	if account.Email != nil {
		email = sql.NullString{String: *account.Email, Valid: true}
	}
	if account.PhoneNumber != nil {
		phone = sql.NullString{String: *account.PhoneNumber, Valid: true}
	}

	err := r.Pool.QueryRow(ctx, query,
		account.AccountNumber,
		account.PIN,
		account.AccountHolderName,
		account.Balance,
		account.Status,
		email,
		phone,
		account.FailedLoginAttempts,
	).Scan(&account.ID, &account.CreatedDate)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account with number %s already exists", apperrors.ErrDuplicate, account.AccountNumber)
		}
		return fmt.Errorf("%w: failed to save account %s: %v", apperrors.ErrStoreFailure, account.AccountNumber, err)
	}
	return nil
}

// UpdateAccount persists the mutable fields of an existing account by id.
// Account number, PIN and created date are immutable after insert.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	query := `
		UPDATE accounts
		SET balance = $2, status = $3, failed_login_attempts = $4, last_transaction_date = $5
		WHERE id = $1;
	`
	var lastTxn sql.NullTime
	if account.LastTransactionDate != nil {
		lastTxn = sql.NullTime{Time: *account.LastTransactionDate, Valid: true}
	}

	tag, err := tx.Exec(ctx, query,
		account.ID,
		account.Balance,
		account.Status,
		account.FailedLoginAttempts,
		lastTxn,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to update account %d: %v", apperrors.ErrStoreFailure, account.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account id %d", apperrors.ErrAccountNotFound, account.ID)
	}
	return nil
}

// DeleteAllAccounts wipes all accounts (ledger entries cascade via FK).
// Only the seeding command calls this.
func (r *PgxAccountRepository) DeleteAllAccounts(ctx context.Context) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM accounts;`); err != nil {
		return fmt.Errorf("%w: failed to delete accounts: %v", apperrors.ErrStoreFailure, err)
	}
	return nil
}
