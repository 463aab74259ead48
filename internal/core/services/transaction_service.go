package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fin_manager_app/internal/core/ports/services"
	"github.com/SscSPs/fin_manager_app/internal/dto"
	"github.com/SscSPs/fin_manager_app/internal/utils"
	"github.com/SscSPs/fin_manager_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// exportHeader is the first row of a CSV export.
var exportHeader = []string{"Date", "Type", "Category", "Description", "Recipient", "Amount", "Entity ID", "Unit ID", "Account ID"}

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	txnRepo  portsrepo.TransactionRepositoryFacade
	unitRepo portsrepo.UnitRepositoryFacade
	now      func() time.Time
}

// NewTransactionService creates a new transaction service
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, unitRepo portsrepo.UnitRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo, unitRepo: unitRepo, now: time.Now}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	txns, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := s.now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		EntityID:        req.EntityID,
		UnitID:          emptyToNil(req.UnitID),
		AccountID:       emptyToNil(req.AccountID),
		Amount:          amount,
		TransactionType: req.Type,
		Category:        strings.TrimSpace(req.Category),
		Date:            date,
		Description:     req.Description,
		Recipient:       req.Recipient,
		AuditFields:     domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := s.checkUnit(ctx, txn); err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		}
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created", slog.String("transaction_id", txn.TransactionID))
	return &txn, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if txn.Amount, err = parseAmount(*req.Amount); err != nil {
			return nil, err
		}
	}
	if req.Date != nil {
		if txn.Date, err = parseDate(*req.Date); err != nil {
			return nil, err
		}
	}
	if req.Type != nil {
		txn.TransactionType = *req.Type
	}
	if req.UnitID != nil {
		txn.UnitID = emptyToNil(req.UnitID)
	}
	if req.AccountID != nil {
		txn.AccountID = emptyToNil(req.AccountID)
	}
	if req.Category != nil {
		txn.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Recipient != nil {
		txn.Recipient = *req.Recipient
	}
	txn.UpdatedAt = s.now()

	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := s.checkUnit(ctx, *txn); err != nil {
		return nil, err
	}

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		}
		return err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *transactionService) Summarize(ctx context.Context, filter domain.TransactionFilter) (*domain.TransactionSummary, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	totals, err := s.txnRepo.TotalsByType(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to total transactions")
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	summary := accounting.Summarize(totals)
	return &summary, nil
}

func (s *transactionService) ExportCSV(ctx context.Context, filter domain.TransactionFilter, w io.Writer) error {
	filter.Limit, filter.Offset, filter.Unpaged = 0, 0, true
	txns, err := s.ListTransactions(ctx, filter)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(txns)+1)
	rows = append(rows, exportHeader)
	for _, t := range txns {
		rows = append(rows, []string{
			t.Date.Format(dto.DateLayout),
			string(t.TransactionType),
			t.Category,
			t.Description,
			t.Recipient,
			utils.FormatMoney(t.Amount),
			t.EntityID,
			derefOrEmpty(t.UnitID),
			derefOrEmpty(t.AccountID),
		})
	}

	if err := utils.WriteQuotedCSV(w, rows); err != nil {
		s.LogError(ctx, err, "Failed to write CSV export")
		return fmt.Errorf("failed to write export: %w", err)
	}
	s.LogInfo(ctx, "Transactions exported", slog.Int("count", len(txns)))
	return nil
}

// checkUnit rejects a unit that belongs to a different entity than the transaction.
func (s *transactionService) checkUnit(ctx context.Context, txn domain.Transaction) error {
	if txn.UnitID == nil {
		return nil
	}
	unit, err := s.unitRepo.FindUnitByID(ctx, *txn.UnitID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: unit %s not found", apperrors.ErrValidation, *txn.UnitID)
		}
		return err
	}
	if unit.EntityID != txn.EntityID {
		return fmt.Errorf("%w: unit does not belong to the transaction's entity", apperrors.ErrValidation)
	}
	return nil
}

func validateFilter(filter domain.TransactionFilter) error {
	if filter.Type != "" && !filter.Type.Valid() {
		return fmt.Errorf("%w: type must be INCOME or EXPENSE", apperrors.ErrValidation)
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return fmt.Errorf("%w: 'to' date is before 'from' date", apperrors.ErrValidation)
	}
	return nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", apperrors.ErrValidation, raw)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !domain.FitsAmountScale(amount) {
		return decimal.Zero, fmt.Errorf("%w: amount must have at most %d decimal places", apperrors.ErrValidation, domain.AmountScale)
	}
	return amount, nil
}

func parseDate(raw string) (time.Time, error) {
	date, err := time.Parse(dto.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidation)
	}
	return date, nil
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
