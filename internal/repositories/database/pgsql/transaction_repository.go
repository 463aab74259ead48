package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	"github.com/SscSPs/fin_manager_app/internal/models"
	"github.com/SscSPs/fin_manager_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(base BaseRepository) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: base}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, entity_id, unit_id, account_id, amount, transaction_type, category, transaction_date, description, recipient, created_at, updated_at`

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.EntityID,
		&m.UnitID,
		&m.AccountID,
		&m.Amount,
		&m.TransactionType,
		&m.Category,
		&m.TransactionDate,
		&m.Description,
		&m.Recipient,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// insertTransaction is shared by the repository and the ledger unit of work.
func insertTransaction(ctx context.Context, q querier, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := q.Exec(ctx, query,
		m.TransactionID,
		m.EntityID,
		m.UnitID,
		m.AccountID,
		m.Amount,
		m.TransactionType,
		m.Category,
		m.TransactionDate,
		m.Description,
		m.Recipient,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return mapPgError(fmt.Errorf("failed to insert transaction: %w", err))
	}
	return nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return insertTransaction(ctx, r.Pool, txn)
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m, err := scanTransaction(r.Pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1;`, transactionID))
	if err != nil {
		return nil, mapPgError(fmt.Errorf("failed to find transaction %s: %w", transactionID, err))
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// filterClause renders the WHERE clause for a filter. Placeholders start at $1.
func filterClause(filter domain.TransactionFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if filter.EntityID != "" {
		add("entity_id = ?", filter.EntityID)
	}
	if filter.UnitID != "" {
		add("unit_id = ?", filter.UnitID)
	}
	if filter.AccountID != "" {
		add("account_id = ?", filter.AccountID)
	}
	if filter.Type != "" {
		add("transaction_type = ?", string(filter.Type))
	}
	if filter.Category != "" {
		add("category = ?", filter.Category)
	}
	if filter.From != nil {
		add("transaction_date >= ?", *filter.From)
	}
	if filter.To != nil {
		add("transaction_date <= ?", *filter.To)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	where, args := filterClause(filter)
	query := `SELECT ` + transactionColumns + ` FROM transactions` + where +
		` ORDER BY transaction_date DESC, created_at DESC, transaction_id`
	if !filter.Unpaged {
		limit, offset := normalizePage(filter.Limit, filter.Offset)
		args = append(args, limit, offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(fmt.Errorf("failed to query transactions: %w", err))
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

func (r *PgxTransactionRepository) TotalsByType(ctx context.Context, filter domain.TransactionFilter) (map[domain.TransactionType]domain.TypeTotal, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	where, args := filterClause(filter)
	query := `SELECT transaction_type, COALESCE(SUM(amount), 0), COUNT(*) FROM transactions` + where + ` GROUP BY transaction_type;`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(fmt.Errorf("failed to total transactions: %w", err))
	}
	defer rows.Close()

	totals := make(map[domain.TransactionType]domain.TypeTotal, 2)
	for rows.Next() {
		var (
			txnType string
			sum     decimal.Decimal
			count   int
		)
		if err := rows.Scan(&txnType, &sum, &count); err != nil {
			return nil, fmt.Errorf("failed to scan totals row: %w", err)
		}
		totals[domain.TransactionType(txnType)] = domain.TypeTotal{Total: sum, Count: count}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating totals rows: %w", err)
	}
	return totals, nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET unit_id = $1, account_id = $2, amount = $3, transaction_type = $4, category = $5,
		    transaction_date = $6, description = $7, recipient = $8, updated_at = $9
		WHERE transaction_id = $10;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.UnitID, m.AccountID, m.Amount, m.TransactionType, m.Category,
		m.TransactionDate, m.Description, m.Recipient, m.UpdatedAt, m.TransactionID)
	if err != nil {
		return mapPgError(fmt.Errorf("failed to update transaction: %w", err))
	}
	return notFoundIfNoRows(tag, "transaction", txn.TransactionID)
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return mapPgError(fmt.Errorf("failed to delete transaction: %w", err))
	}
	return notFoundIfNoRows(tag, "transaction", transactionID)
}
