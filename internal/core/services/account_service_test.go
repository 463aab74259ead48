package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/SscSPs/fin_manager_app/internal/core/services"
	"github.com/SscSPs/fin_manager_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountService_CreateAccount(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		req         dto.CreateAccountRequest
		wantErr     error
		wantBalance string
	}{
		{
			name:        "opening balance",
			req:         dto.CreateAccountRequest{Name: "Checking", Type: "checking", Currency: "usd", Balance: "1000.50"},
			wantBalance: "1000.5",
		},
		{
			name:        "defaults to zero",
			req:         dto.CreateAccountRequest{Name: "Cash", Currency: "EUR"},
			wantBalance: "0",
		},
		{
			name:    "negative opening balance",
			req:     dto.CreateAccountRequest{Name: "Bad", Currency: "USD", Balance: "-1"},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "opening balance beyond stored scale",
			req:     dto.CreateAccountRequest{Name: "Bad", Currency: "USD", Balance: "10.00005"},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "bad currency",
			req:     dto.CreateAccountRequest{Name: "Bad", Currency: "DOLLARS"},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "blank name",
			req:     dto.CreateAccountRequest{Name: "  ", Currency: "USD"},
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockAccountRepository)
			svc := services.NewAccountService(repo)
			if tt.wantErr == nil {
				repo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()
			}

			account, err := svc.CreateAccount(ctx, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "SaveAccount", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.True(t, account.IsActive)
			assert.Len(t, account.CurrencyCode, 3)
			assert.Equal(t, tt.wantBalance, account.Balance.String())
			repo.AssertExpectations(t)
		})
	}
}

func TestAccountService_UpdateAccount_KeepsBalance(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepository)
	svc := services.NewAccountService(repo)
	existing := &domain.Account{AccountID: "a1", Name: "Old", Balance: decimal.NewFromInt(250), CurrencyCode: "USD", IsActive: true}
	off := false
	name := "Renamed"

	repo.On("FindAccountByID", ctx, "a1").Return(existing, nil).Once()
	repo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == "Renamed" && !a.IsActive && a.Balance.Equal(decimal.NewFromInt(250))
	})).Return(nil).Once()

	account, err := svc.UpdateAccount(ctx, "a1", dto.UpdateAccountRequest{Name: &name, IsActive: &off})
	require.NoError(t, err)
	assert.False(t, account.IsActive)
	repo.AssertExpectations(t)
}

func TestAccountService_ListAccounts_EmptyIsNotNil(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepository)
	svc := services.NewAccountService(repo)
	repo.On("ListAccounts", ctx, true, 50, 0).Return(nil, nil).Once()

	accounts, err := svc.ListAccounts(ctx, dto.ListAccountsParams{ListParams: dto.ListParams{Limit: 50}, ActiveOnly: true})
	require.NoError(t, err)
	assert.NotNil(t, accounts)
	assert.Empty(t, accounts)
}
