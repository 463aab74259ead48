package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionType_Valid(t *testing.T) {
	assert.True(t, domain.Income.Valid())
	assert.True(t, domain.Expense.Valid())
	assert.False(t, domain.TransactionType("TRANSFER").Valid())
	assert.False(t, domain.TransactionType("").Valid())
}

func TestTransaction_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		tx      domain.Transaction
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid income",
			tx: domain.Transaction{
				EntityID:        "entity_1",
				Amount:          decimal.NewFromInt(500),
				TransactionType: domain.Income,
				Date:            now,
			},
		},
		{
			name: "missing entity",
			tx: domain.Transaction{
				Amount:          decimal.NewFromInt(10),
				TransactionType: domain.Expense,
				Date:            now,
			},
			wantErr: true,
			errMsg:  "entity ID is required",
		},
		{
			name: "zero amount",
			tx: domain.Transaction{
				EntityID:        "entity_1",
				Amount:          decimal.Zero,
				TransactionType: domain.Expense,
				Date:            now,
			},
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name: "negative amount",
			tx: domain.Transaction{
				EntityID:        "entity_1",
				Amount:          decimal.NewFromInt(-5),
				TransactionType: domain.Expense,
				Date:            now,
			},
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name: "unknown type",
			tx: domain.Transaction{
				EntityID:        "entity_1",
				Amount:          decimal.NewFromInt(5),
				TransactionType: "REFUND",
				Date:            now,
			},
			wantErr: true,
			errMsg:  "type must be INCOME or EXPENSE",
		},
		{
			name: "missing date",
			tx: domain.Transaction{
				EntityID:        "entity_1",
				Amount:          decimal.NewFromInt(5),
				TransactionType: domain.Income,
			},
			wantErr: true,
			errMsg:  "date is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, domain.RoleAdmin.AtLeast(domain.RoleManager))
	assert.True(t, domain.RoleManager.AtLeast(domain.RoleManager))
	assert.False(t, domain.RoleUser.AtLeast(domain.RoleManager))
	assert.False(t, domain.UserRole("guest").AtLeast(domain.RoleUser))
}

func TestAccount_Covers(t *testing.T) {
	acc := domain.Account{Balance: decimal.NewFromInt(1000)}
	assert.True(t, acc.Covers(decimal.NewFromInt(1000)))
	assert.True(t, acc.Covers(decimal.NewFromInt(500)))
	assert.False(t, acc.Covers(decimal.RequireFromString("1000.01")))
}
