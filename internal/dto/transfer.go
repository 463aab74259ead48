package dto

import (
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest moves Amount from one account to another of the same currency.
type TransferRequest struct {
	FromAccountID string `json:"fromAccountID" binding:"required"`
	ToAccountID   string `json:"toAccountID" binding:"required,nefield=FromAccountID"`
	Amount        string `json:"amount" binding:"required,positive_amount"`
	Description   string `json:"description"`
	// EntityID attributes the two generated transaction rows. When empty the
	// configured default transfer entity is used.
	EntityID string `json:"entityID"`
}

// TransferResponse is the data returned for a completed transfer.
type TransferResponse struct {
	FromAccount AccountResponse `json:"fromAccount"`
	ToAccount   AccountResponse `json:"toAccount"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
}

// ToTransferResponse converts a domain.TransferResult to TransferResponse DTO
func ToTransferResponse(r *domain.TransferResult) TransferResponse {
	return TransferResponse{
		FromAccount: ToAccountResponse(&r.FromAccount),
		ToAccount:   ToAccountResponse(&r.ToAccount),
		Amount:      r.Amount,
		Currency:    r.CurrencyCode,
	}
}
