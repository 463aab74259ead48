package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is money in or money out.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Transaction is a dated, typed monetary record linked to an Entity and optionally
// to a Unit and an Account. Amount is always unsigned; Type carries the direction.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	EntityID        string          `json:"entityID"`            // FK -> entities (required)
	UnitID          *string         `json:"unitID,omitempty"`    // FK -> units, set null on unit delete
	AccountID       *string         `json:"accountID,omitempty"` // FK -> accounts
	Amount          decimal.Decimal `json:"amount"`
	TransactionType TransactionType `json:"type"`
	Category        string          `json:"category"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	Recipient       string          `json:"recipient"`
	AuditFields
}

// Validate checks the row-level invariants of a transaction.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.EntityID) == "" {
		return errors.New("entity ID is required")
	}
	if !t.Amount.IsPositive() {
		return errors.New("amount must be positive")
	}
	if !t.TransactionType.Valid() {
		return errors.New("type must be INCOME or EXPENSE")
	}
	if t.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}

// TransactionFilter narrows transaction listings, summaries and exports.
type TransactionFilter struct {
	EntityID  string
	UnitID    string
	AccountID string
	Type      TransactionType
	Category  string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
	// Unpaged ignores Limit and Offset and returns every matching row.
	Unpaged bool
}

// TypeTotal is the sum and count of transactions of one type.
type TypeTotal struct {
	Total decimal.Decimal
	Count int
}

// TransactionSummary is the basic income/expense roll-up of a filtered listing.
type TransactionSummary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Net          decimal.Decimal `json:"net"`
	Count        int             `json:"count"`
}
