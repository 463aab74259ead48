package services_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/SscSPs/fin_manager_app/internal/core/services"
	"github.com/SscSPs/fin_manager_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestTransactionService_CreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("valid expense", func(t *testing.T) {
		txns, units := new(MockTransactionRepository), new(MockUnitRepository)
		svc := services.NewTransactionService(txns, units)
		units.On("FindUnitByID", ctx, "u1").Return(&domain.Unit{UnitID: "u1", EntityID: "e1"}, nil).Once()
		txns.On("SaveTransaction", ctx, mock.MatchedBy(func(tx domain.Transaction) bool {
			return tx.Amount.Equal(decimal.RequireFromString("120.40")) &&
				tx.TransactionType == domain.Expense &&
				tx.Date.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)) &&
				tx.AccountID == nil
		})).Return(nil).Once()

		txn, err := svc.CreateTransaction(ctx, dto.CreateTransactionRequest{
			EntityID:  "e1",
			UnitID:    strPtr("u1"),
			AccountID: strPtr(""),
			Amount:    "120.40",
			Type:      domain.Expense,
			Category:  "Repairs",
			Date:      "2024-03-05",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, txn.TransactionID)
		txns.AssertExpectations(t)
	})

	t.Run("rejects non-positive or over-precise amount", func(t *testing.T) {
		txns, units := new(MockTransactionRepository), new(MockUnitRepository)
		svc := services.NewTransactionService(txns, units)
		for _, amount := range []string{"0", "-3", "abc", "1.00005", "0.00001"} {
			_, err := svc.CreateTransaction(ctx, dto.CreateTransactionRequest{EntityID: "e1", Amount: amount, Type: domain.Income, Date: "2024-03-05"})
			assert.ErrorIs(t, err, apperrors.ErrValidation, amount)
		}
		txns.AssertNotCalled(t, "SaveTransaction", mock.Anything, mock.Anything)
	})

	t.Run("rejects unit of another entity", func(t *testing.T) {
		txns, units := new(MockTransactionRepository), new(MockUnitRepository)
		svc := services.NewTransactionService(txns, units)
		units.On("FindUnitByID", ctx, "u1").Return(&domain.Unit{UnitID: "u1", EntityID: "e2"}, nil).Once()

		_, err := svc.CreateTransaction(ctx, dto.CreateTransactionRequest{EntityID: "e1", UnitID: strPtr("u1"), Amount: "5", Type: domain.Income, Date: "2024-03-05"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestTransactionService_ListTransactions_BadRange(t *testing.T) {
	svc := services.NewTransactionService(new(MockTransactionRepository), new(MockUnitRepository))
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.ListTransactions(context.Background(), domain.TransactionFilter{From: &from, To: &to})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTransactionService_Summarize(t *testing.T) {
	ctx := context.Background()
	txns := new(MockTransactionRepository)
	svc := services.NewTransactionService(txns, new(MockUnitRepository))
	filter := domain.TransactionFilter{EntityID: "e1"}
	txns.On("TotalsByType", ctx, filter).Return(map[domain.TransactionType]domain.TypeTotal{
		domain.Income:  {Total: decimal.RequireFromString("1500"), Count: 2},
		domain.Expense: {Total: decimal.RequireFromString("420.25"), Count: 3},
	}, nil).Once()

	summary, err := svc.Summarize(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, "1500", summary.TotalIncome.String())
	assert.Equal(t, "420.25", summary.TotalExpense.String())
	assert.Equal(t, "1079.75", summary.Net.String())
	assert.Equal(t, 5, summary.Count)
}

func TestTransactionService_ExportCSV(t *testing.T) {
	ctx := context.Background()
	txns := new(MockTransactionRepository)
	svc := services.NewTransactionService(txns, new(MockUnitRepository))

	txns.On("ListTransactions", ctx, domain.TransactionFilter{EntityID: "e1", Unpaged: true}).Return([]domain.Transaction{
		{
			EntityID:        "e1",
			AccountID:       strPtr("a1"),
			Amount:          decimal.RequireFromString("500"),
			TransactionType: domain.Expense,
			Category:        "Transfer",
			Date:            time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Description:     `Rent "May"`,
			Recipient:       "Savings",
		},
	}, nil).Once()

	var buf bytes.Buffer
	err := svc.ExportCSV(ctx, domain.TransactionFilter{EntityID: "e1", Limit: 50, Offset: 100}, &buf)
	require.NoError(t, err)

	want := `"Date","Type","Category","Description","Recipient","Amount","Entity ID","Unit ID","Account ID"` + "\r\n" +
		`"2024-05-01","EXPENSE","Transfer","Rent ""May""","Savings","500.00","e1","","a1"` + "\r\n"
	assert.Equal(t, want, buf.String())
	txns.AssertExpectations(t)
}
