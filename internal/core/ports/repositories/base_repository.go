package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerTx is the set of operations available inside a single ledger database transaction.
// Implementations must make every write visible only when the enclosing RunInTx commits.
type LedgerTx interface {
	// LockAccounts selects the accounts and locks them for update. Missing IDs are simply
	// absent from the returned map.
	LockAccounts(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// EntityExists reports whether the entity row exists.
	EntityExists(ctx context.Context, entityID string) (bool, error)

	// SetAccountBalance writes the new balance of a locked account.
	SetAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, now time.Time) error

	// InsertTransaction appends a transaction row.
	InsertTransaction(ctx context.Context, txn domain.Transaction) error
}

// LedgerUnitOfWork runs fn inside one database transaction. If fn returns an error the
// transaction is rolled back and the error is returned unchanged.
type LedgerUnitOfWork interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}
