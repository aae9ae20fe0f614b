package repositories

import (
	"context"

	"github.com/branchsim/atm_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// Transactor runs work inside a single database transaction. The transaction
// commits when fn returns nil and rolls back otherwise. The store's isolation
// is the only synchronization primitive in the system; services hold no locks
// of their own.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// AccountRepository persists accounts. Methods taking a pgx.Tx participate in
// a caller-managed transaction; the rest read committed state directly from
// the pool.
type AccountRepository interface {
	// FindAccountByNumber returns the account with the given number, or
	// apperrors.ErrAccountNotFound.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountByNumberForUpdate loads the account under write intent
	// (SELECT ... FOR UPDATE) so that concurrent mutations of the same
	// account serialize on the row lock.
	FindAccountByNumberForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*domain.Account, error)

	// AccountExists reports whether an account with the number exists.
	AccountExists(ctx context.Context, accountNumber string) (bool, error)

	// SaveAccount inserts a new account and assigns its ID and CreatedDate.
	// Duplicate account numbers or emails surface as apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account *domain.Account) error

	// UpdateAccount persists the mutable fields (balance, status, failed
	// login attempts, last transaction date) of an existing account by id.
	UpdateAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// DeleteAllAccounts removes every account. Used only by the seeding command.
	DeleteAllAccounts(ctx context.Context) error
}

// TransactionRepository persists ledger entries. The ledger is append-only:
// there is deliberately no update or delete surface.
type TransactionRepository interface {
	// SaveTransaction inserts a ledger entry inside the given transaction
	// and assigns its ID.
	SaveTransaction(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error

	// ListTransactionsByAccount returns the account's entries newest first.
	// A limit of 0 means no cap. An account with no entries yields an empty,
	// non-nil slice.
	ListTransactionsByAccount(ctx context.Context, accountID int64, limit int) ([]domain.Transaction, error)
}

// RepositoryContainer bundles the repositories and the transaction runner for
// injection into services.
type RepositoryContainer struct {
	Account     AccountRepository
	Transaction TransactionRepository
	Transactor  Transactor
}
