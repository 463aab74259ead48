package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fin_manager_app/internal/core/ports/services"
	"github.com/SscSPs/fin_manager_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transferService implements TransferSvc on top of a LedgerUnitOfWork.
type transferService struct {
	BaseService
	ledger          portsrepo.LedgerUnitOfWork
	defaultEntityID string
	now             func() time.Time
}

// NewTransferService creates a transfer service. defaultEntityID attributes the generated
// transaction rows when a request names no entity; it may be empty.
func NewTransferService(ledger portsrepo.LedgerUnitOfWork, defaultEntityID string) portssvc.TransferSvc {
	return &transferService{ledger: ledger, defaultEntityID: defaultEntityID, now: time.Now}
}

var _ portssvc.TransferSvc = (*transferService)(nil)

func (s *transferService) Transfer(ctx context.Context, req dto.TransferRequest, actorID string) (*domain.TransferResult, error) {
	fromID := strings.TrimSpace(req.FromAccountID)
	toID := strings.TrimSpace(req.ToAccountID)
	if fromID == "" || toID == "" {
		return nil, fmt.Errorf("%w: source and destination accounts are required", apperrors.ErrValidation)
	}
	if fromID == toID {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	entityID := strings.TrimSpace(req.EntityID)
	if entityID == "" {
		entityID = s.defaultEntityID
	}
	if entityID == "" {
		return nil, fmt.Errorf("%w: an entity is required to record the transfer", apperrors.ErrValidation)
	}

	var result *domain.TransferResult
	err = s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		accounts, err := tx.LockAccounts(ctx, []string{fromID, toID})
		if err != nil {
			return fmt.Errorf("failed to lock accounts: %w", err)
		}
		from, ok := accounts[fromID]
		if !ok {
			return fmt.Errorf("%w: source account %s", apperrors.ErrNotFound, fromID)
		}
		to, ok := accounts[toID]
		if !ok {
			return fmt.Errorf("%w: destination account %s", apperrors.ErrNotFound, toID)
		}
		if !from.IsActive || !to.IsActive {
			return fmt.Errorf("%w: cannot transfer with an inactive account", apperrors.ErrValidation)
		}
		if from.CurrencyCode != to.CurrencyCode {
			return apperrors.ErrCurrencyMismatch
		}
		if !from.Covers(amount) {
			return apperrors.ErrInsufficientFunds
		}
		exists, err := tx.EntityExists(ctx, entityID)
		if err != nil {
			return fmt.Errorf("failed to check entity: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: entity %s not found", apperrors.ErrValidation, entityID)
		}

		now := s.now()
		from.Balance = from.Balance.Sub(amount)
		to.Balance = to.Balance.Add(amount)
		from.UpdatedAt, to.UpdatedAt = now, now
		if err := tx.SetAccountBalance(ctx, from.AccountID, from.Balance, now); err != nil {
			return fmt.Errorf("failed to debit source account: %w", err)
		}
		if err := tx.SetAccountBalance(ctx, to.AccountID, to.Balance, now); err != nil {
			return fmt.Errorf("failed to credit destination account: %w", err)
		}

		debit := transferRow(entityID, from.AccountID, amount, domain.Expense,
			transferDescription("Transfer to "+to.Name, req.Description), to.Name, now)
		credit := transferRow(entityID, to.AccountID, amount, domain.Income,
			transferDescription("Transfer from "+from.Name, req.Description), from.Name, now)
		if err := tx.InsertTransaction(ctx, debit); err != nil {
			return fmt.Errorf("failed to record debit: %w", err)
		}
		if err := tx.InsertTransaction(ctx, credit); err != nil {
			return fmt.Errorf("failed to record credit: %w", err)
		}

		result = &domain.TransferResult{
			FromAccount:         from,
			ToAccount:           to,
			Amount:              amount,
			CurrencyCode:        from.CurrencyCode,
			EntityID:            entityID,
			DebitTransactionID:  debit.TransactionID,
			CreditTransactionID: credit.TransactionID,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Transfer rejected",
				slog.String("error", err.Error()),
				slog.String("from_account_id", fromID),
				slog.String("to_account_id", toID))
		} else {
			s.LogError(ctx, err, "Transfer failed",
				slog.String("from_account_id", fromID),
				slog.String("to_account_id", toID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.String("from_account_id", fromID),
		slog.String("to_account_id", toID),
		slog.String("amount", amount.String()),
		slog.String("currency", result.CurrencyCode),
		slog.String("actor_id", actorID))
	return result, nil
}

func transferRow(entityID, accountID string, amount decimal.Decimal, typ domain.TransactionType, description, recipient string, now time.Time) domain.Transaction {
	account := accountID
	return domain.Transaction{
		TransactionID:   uuid.NewString(),
		EntityID:        entityID,
		AccountID:       &account,
		Amount:          amount,
		TransactionType: typ,
		Category:        domain.TransferCategory,
		Date:            time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Description:     description,
		Recipient:       recipient,
		AuditFields:     domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
}

func transferDescription(base, note string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return base
	}
	return base + ": " + note
}
