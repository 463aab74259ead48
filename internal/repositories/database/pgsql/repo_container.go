package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds the Postgres-backed repositories. The session revocation
// store is not database-backed and is filled in by the caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool, timeout time.Duration) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool, Timeout: timeout}

	return portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(base),
		EntityRepo:      newPgxEntityRepository(base),
		UnitRepo:        newPgxUnitRepository(base),
		AccountRepo:     newPgxAccountRepository(base),
		TransactionRepo: newPgxTransactionRepository(base),
		Ledger:          newPgxLedger(base),
	}
}
