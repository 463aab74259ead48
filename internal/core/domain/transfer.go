package domain

import "github.com/shopspring/decimal"

// TransferCategory is the category stamped on transaction rows created by a transfer.
const TransferCategory = "Transfer"

// TransferResult describes a completed transfer with post-transfer balances.
type TransferResult struct {
	FromAccount  Account         `json:"fromAccount"`
	ToAccount    Account         `json:"toAccount"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency"`
	EntityID     string          `json:"entityID"`
	// IDs of the EXPENSE (source) and INCOME (destination) rows.
	DebitTransactionID  string `json:"debitTransactionID"`
	CreditTransactionID string `json:"creditTransactionID"`
}
