package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	"github.com/SscSPs/fin_manager_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PgxLedger runs transfer work inside a single database transaction.
type PgxLedger struct {
	BaseRepository
}

func newPgxLedger(base BaseRepository) portsrepo.LedgerUnitOfWork {
	return &PgxLedger{BaseRepository: base}
}

var _ portsrepo.LedgerUnitOfWork = (*PgxLedger)(nil)

// RunInTx begins a transaction, hands fn a LedgerTx bound to it and commits when fn
// returns nil. Any error, including a panic, rolls back.
func (l *PgxLedger) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) (err error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	tx, err := l.Begin(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = l.Rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			if rbErr := l.Rollback(ctx, tx); rbErr != nil {
				slog.ErrorContext(ctx, "Ledger rollback failed", slog.String("error", rbErr.Error()))
			}
		}
	}()

	if err = fn(ctx, &pgxLedgerTx{tx: tx}); err != nil {
		return err
	}
	return l.Commit(ctx, tx)
}

type pgxLedgerTx struct {
	tx pgx.Tx
}

// LockAccounts takes row locks in account_id order so that concurrent transfers over
// the same pair of accounts cannot deadlock.
func (t *pgxLedgerTx) LockAccounts(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := t.tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, mapPgError(fmt.Errorf("failed to lock accounts: %w", err))
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(fmt.Errorf("error iterating locked account rows: %w", err))
	}
	return accounts, nil
}

func (t *pgxLedgerTx) EntityExists(ctx context.Context, entityID string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM entities WHERE entity_id = $1);`, entityID).Scan(&exists)
	if err != nil {
		return false, mapPgError(fmt.Errorf("failed to check entity: %w", err))
	}
	return exists, nil
}

func (t *pgxLedgerTx) SetAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, now time.Time) error {
	tag, err := t.tx.Exec(ctx, `UPDATE accounts SET balance = $1, updated_at = $2 WHERE account_id = $3;`, balance, now, accountID)
	if err != nil {
		return mapPgError(fmt.Errorf("failed to update account balance: %w", err))
	}
	return notFoundIfNoRows(tag, "account", accountID)
}

func (t *pgxLedgerTx) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	return insertTransaction(ctx, t.tx, txn)
}
