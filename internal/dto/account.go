package dto

import (
	"time"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name          string `json:"name" binding:"required"`
	Type          string `json:"type" binding:"required"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	Currency      string `json:"currency" binding:"required,currency_code"`
	Balance       string `json:"balance" binding:"omitempty,nonnegative_amount"` // opening balance, default 0
	Description   string `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// The balance is deliberately absent: it only moves through transfers.
type UpdateAccountRequest struct {
	Name          *string `json:"name"`
	Type          *string `json:"type"`
	AccountNumber *string `json:"accountNumber"`
	BankName      *string `json:"bankName"`
	Description   *string `json:"description"`
	IsActive      *bool   `json:"isActive"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	ListParams
	ActiveOnly bool `form:"activeOnly"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	AccountNumber string          `json:"accountNumber"`
	BankName      string          `json:"bankName"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	IsActive      bool            `json:"isActive"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		Type:          acc.AccountType,
		AccountNumber: acc.AccountNumber,
		BankName:      acc.BankName,
		Balance:       acc.Balance,
		Currency:      acc.CurrencyCode,
		IsActive:      acc.IsActive,
		Description:   acc.Description,
		CreatedAt:     acc.CreatedAt,
		UpdatedAt:     acc.UpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
