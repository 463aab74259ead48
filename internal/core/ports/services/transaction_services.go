package services

import (
	"context"
	"io"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/SscSPs/fin_manager_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transactions
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionReportSvc defines the reporting operations over transactions
type TransactionReportSvc interface {
	// Summarize returns income, expense and net totals for the filter.
	Summarize(ctx context.Context, filter domain.TransactionFilter) (*domain.TransactionSummary, error)

	// ExportCSV writes every transaction matching the filter as CSV. Limit and offset are ignored.
	ExportCSV(ctx context.Context, filter domain.TransactionFilter, w io.Writer) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	TransactionReportSvc
}
