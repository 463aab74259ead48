package repositories

import (
	"context"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves one transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the filter, newest first.
	// A non-positive filter.Limit means "no limit" (used by export).
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// TotalsByType sums amounts per transaction type for the filter (limit/offset ignored).
	TotalsByType(ctx context.Context, filter domain.TransactionFilter) (map[domain.TransactionType]domain.TypeTotal, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
