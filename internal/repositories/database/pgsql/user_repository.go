package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	"github.com/SscSPs/fin_manager_app/internal/models"
	"github.com/SscSPs/fin_manager_app/internal/utils/mapping"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(base BaseRepository) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: base}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, email, name, role, status, phone, phone_code, department, password_hash, created_at, updated_at`

func scanUser(row rowScanner) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.Name,
		&m.Role,
		&m.Status,
		&m.Phone,
		&m.PhoneCode,
		&m.Department,
		&m.PasswordHash,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Email,
		m.Name,
		m.Role,
		m.Status,
		m.Phone,
		m.PhoneCode,
		m.Department,
		m.PasswordHash,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return mapPgError(fmt.Errorf("failed to save user: %w", err))
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, mapPgError(fmt.Errorf("failed to find user by ID %s: %w", userID, err))
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE email = lower($1);`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, mapPgError(fmt.Errorf("failed to find user by email: %w", err))
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	limit, offset = normalizePage(limit, offset)

	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC, user_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapPgError(fmt.Errorf("failed to query users: %w", err))
	}
	defer rows.Close()

	modelUsers := []models.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		modelUsers = append(modelUsers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return mapping.ToDomainUserSlice(modelUsers), nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET name = $1, role = $2, status = $3, phone = $4, phone_code = $5, department = $6, updated_at = $7
		WHERE user_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Name, m.Role, m.Status, m.Phone, m.PhoneCode, m.Department, m.UpdatedAt, m.UserID)
	if err != nil {
		return mapPgError(fmt.Errorf("failed to update user: %w", err))
	}
	return notFoundIfNoRows(tag, "user", user.UserID)
}

func (r *PgxUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string, now time.Time) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.Pool.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = $2 WHERE user_id = $3;`, passwordHash, now, userID)
	if err != nil {
		return mapPgError(fmt.Errorf("failed to update password: %w", err))
	}
	return notFoundIfNoRows(tag, "user", userID)
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return mapPgError(fmt.Errorf("failed to delete user: %w", err))
	}
	return notFoundIfNoRows(tag, "user", userID)
}

// normalizePage applies the default and maximum page size.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
