package pgsql

import (
	portsrepo "github.com/branchsim/atm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryContainer wires the pgsql repositories and the shared
// transaction runner onto one pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *portsrepo.RepositoryContainer {
	return &portsrepo.RepositoryContainer{
		Account:     newPgxAccountRepository(pool),
		Transaction: newPgxTransactionRepository(pool),
		Transactor:  &BaseRepository{Pool: pool},
	}
}
