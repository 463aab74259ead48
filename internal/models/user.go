package models

import (
	"database/sql"
)

// User is a row of the users table.
// PasswordHash is NULL for users that only sign in through the managed provider or Google.
type User struct {
	UserID       string         `db:"user_id"`
	Email        string         `db:"email"`
	Name         string         `db:"name"`
	Role         string         `db:"role"`
	Status       string         `db:"status"`
	Phone        string         `db:"phone"`
	PhoneCode    string         `db:"phone_code"`
	Department   string         `db:"department"`
	PasswordHash sql.NullString `db:"password_hash"`
	AuditFields
}
