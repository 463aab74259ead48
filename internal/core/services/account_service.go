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

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	now         func() time.Time
}

// NewAccountService creates a new account service with the provided dependencies
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, now: time.Now}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		// Note: Don't log if error is ErrNotFound, as it's an expected outcome
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	s.LogDebug(ctx, "Account retrieved successfully", slog.String("account_id", account.AccountID))
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, params.ActiveOnly, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int("limit", params.Limit), slog.Int("offset", params.Offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil // Return empty slice if repo returns nil
	}
	return accounts, nil
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: currency must be a 3-letter code", apperrors.ErrValidation)
	}

	balance := decimal.Zero
	if req.Balance != "" {
		opening, err := decimal.NewFromString(req.Balance)
		if err != nil || opening.IsNegative() {
			return nil, fmt.Errorf("%w: opening balance must be a non-negative amount", apperrors.ErrValidation)
		}
		if !domain.FitsAmountScale(opening) {
			return nil, fmt.Errorf("%w: opening balance must have at most %d decimal places", apperrors.ErrValidation, domain.AmountScale)
		}
		balance = opening
	}

	now := s.now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		Name:          name,
		AccountType:   strings.TrimSpace(req.Type),
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		Balance:       balance,
		CurrencyCode:  currency,
		IsActive:      true, // Default to active on creation
		Description:   req.Description,
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created successfully", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = name
	}
	if req.Type != nil {
		account.AccountType = strings.TrimSpace(*req.Type)
	}
	if req.AccountNumber != nil {
		account.AccountNumber = *req.AccountNumber
	}
	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.UpdatedAt = s.now()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		}
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}
