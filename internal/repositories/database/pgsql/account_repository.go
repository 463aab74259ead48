package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	"github.com/SscSPs/fin_manager_app/internal/models"
	"github.com/SscSPs/fin_manager_app/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(base BaseRepository) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: base}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, name, account_type, account_number, bank_name, currency_code, balance, is_active, description, created_at, updated_at`

func scanAccount(row rowScanner) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.AccountType,
		&m.AccountNumber,
		&m.BankName,
		&m.CurrencyCode,
		&m.Balance,
		&m.IsActive,
		&m.Description,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// SaveAccount inserts a new account with its opening balance.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.AccountType,
		m.AccountNumber,
		m.BankName,
		m.CurrencyCode,
		m.Balance,
		m.IsActive,
		m.Description,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return mapPgError(fmt.Errorf("failed to save account %s: %w", m.AccountID, err))
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m, err := scanAccount(r.Pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1;`, accountID))
	if err != nil {
		return nil, mapPgError(fmt.Errorf("failed to find account %s: %w", accountID, err))
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Account, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	limit, offset = normalizePage(limit, offset)

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE ($1::boolean = false OR is_active)
		ORDER BY name, account_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, activeOnly, limit, offset)
	if err != nil {
		return nil, mapPgError(fmt.Errorf("failed to query accounts: %w", err))
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// UpdateAccount writes descriptive fields only; balance is owned by the ledger.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $1, account_type = $2, account_number = $3, bank_name = $4, description = $5, is_active = $6, updated_at = $7
		WHERE account_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Name, m.AccountType, m.AccountNumber, m.BankName, m.Description, m.IsActive, m.UpdatedAt, m.AccountID)
	if err != nil {
		return mapPgError(fmt.Errorf("failed to update account: %w", err))
	}
	return notFoundIfNoRows(tag, "account", account.AccountID)
}

func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return mapPgError(fmt.Errorf("failed to delete account: %w", err))
	}
	return notFoundIfNoRows(tag, "account", accountID)
}
