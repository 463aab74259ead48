package dto

import (
	"time"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of transaction dates.
const DateLayout = "2006-01-02"

// CreateTransactionRequest defines the data needed to record an income or expense.
type CreateTransactionRequest struct {
	EntityID    string                 `json:"entityID" binding:"required"`
	UnitID      *string                `json:"unitID"`
	AccountID   *string                `json:"accountID"`
	Amount      string                 `json:"amount" binding:"required,positive_amount"`
	Type        domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Category    string                 `json:"category"`
	Date        string                 `json:"date" binding:"required,datetime=2006-01-02"`
	Description string                 `json:"description"`
	Recipient   string                 `json:"recipient"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
type UpdateTransactionRequest struct {
	UnitID      *string                 `json:"unitID"`
	AccountID   *string                 `json:"accountID"`
	Amount      *string                 `json:"amount" binding:"omitempty,positive_amount"`
	Type        *domain.TransactionType `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Category    *string                 `json:"category"`
	Date        *string                 `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description *string                 `json:"description"`
	Recipient   *string                 `json:"recipient"`
}

// ListTransactionsParams defines query filters for listing, summarising and exporting.
type ListTransactionsParams struct {
	ListParams
	EntityID  string `form:"entityID"`
	UnitID    string `form:"unitID"`
	AccountID string `form:"accountID"`
	Type      string `form:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Category  string `form:"category"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ToFilter converts query parameters to a domain filter. Dates were validated by binding.
func (p ListTransactionsParams) ToFilter() domain.TransactionFilter {
	f := domain.TransactionFilter{
		EntityID:  p.EntityID,
		UnitID:    p.UnitID,
		AccountID: p.AccountID,
		Type:      domain.TransactionType(p.Type),
		Category:  p.Category,
		Limit:     p.Limit,
		Offset:    p.Offset,
	}
	if p.From != "" {
		if from, err := time.Parse(DateLayout, p.From); err == nil {
			f.From = &from
		}
	}
	if p.To != "" {
		if to, err := time.Parse(DateLayout, p.To); err == nil {
			f.To = &to
		}
	}
	return f
}

// TransactionResponse mirrors domain.Transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	EntityID      string                 `json:"entityID"`
	UnitID        *string                `json:"unitID"`
	AccountID     *string                `json:"accountID"`
	Amount        decimal.Decimal        `json:"amount"`
	Type          domain.TransactionType `json:"type"`
	Category      string                 `json:"category"`
	Date          string                 `json:"date"`
	Description   string                 `json:"description"`
	Recipient     string                 `json:"recipient"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		EntityID:      t.EntityID,
		UnitID:        t.UnitID,
		AccountID:     t.AccountID,
		Amount:        t.Amount,
		Type:          t.TransactionType,
		Category:      t.Category,
		Date:          t.Date.Format(DateLayout),
		Description:   t.Description,
		Recipient:     t.Recipient,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to response DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
