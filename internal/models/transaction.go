package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	EntityID        string          `db:"entity_id"`
	UnitID          sql.NullString  `db:"unit_id"`    // set NULL when the unit is deleted
	AccountID       sql.NullString  `db:"account_id"` // set NULL when the account is deleted
	Amount          decimal.Decimal `db:"amount"`     // always > 0
	TransactionType string          `db:"transaction_type"`
	Category        string          `db:"category"`
	TransactionDate time.Time       `db:"transaction_date"` // DATE column
	Description     string          `db:"description"`
	Recipient       string          `db:"recipient"`
	AuditFields
}
