package services

import (
	"context"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/SscSPs/fin_manager_app/internal/dto"
)

// TransferSvc moves money between two accounts of the same currency.
type TransferSvc interface {
	// Transfer debits the source, credits the destination and records an EXPENSE and an
	// INCOME row, all in one database transaction.
	Transfer(ctx context.Context, req dto.TransferRequest, actorID string) (*domain.TransferResult, error)
}
