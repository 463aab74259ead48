package models

import (
	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID     string          `db:"account_id"`
	Name          string          `db:"name"`
	AccountType   string          `db:"account_type"` // free-form label
	AccountNumber string          `db:"account_number"`
	BankName      string          `db:"bank_name"`
	CurrencyCode  string          `db:"currency_code"`
	Balance       decimal.Decimal `db:"balance"` // NUMERIC(19,4)
	IsActive      bool            `db:"is_active"`
	Description   string          `db:"description"`
	AuditFields
}
