package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/branchsim/atm_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides the shared pool handle and transaction plumbing for
// all pgsql repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// WithTx runs fn inside a single database transaction: commit on nil return,
// rollback otherwise. Read-committed isolation plus SELECT ... FOR UPDATE row
// locks give linearizable per-account ordering without serialization retries.
func (r *BaseRepository) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", apperrors.ErrStoreFailure, err)
	}
	defer func() {
		// No-op once the transaction has been committed.
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %v", apperrors.ErrStoreFailure, err)
	}
	return nil
}
