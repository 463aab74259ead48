package domain

import (
	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits stored for balances and amounts.
const AmountScale = 4

// FitsAmountScale reports whether d can be stored without rounding.
func FitsAmountScale(d decimal.Decimal) bool {
	return d.Exponent() >= -AmountScale || d.Equal(d.Truncate(AmountScale))
}

// Account represents a financial account with a currency-denominated balance.
// The balance only moves through transfers; see TransferResult.
type Account struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	AccountType   string          `json:"type"` // free-form: checking, savings, credit card, cash ...
	AccountNumber string          `json:"accountNumber"`
	BankName      string          `json:"bankName"`
	Balance       decimal.Decimal `json:"balance"`
	CurrencyCode  string          `json:"currency"`
	IsActive      bool            `json:"isActive"`
	Description   string          `json:"description"`
	AuditFields
}

// Covers reports whether the balance is at least amount.
func (a *Account) Covers(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}
