package accounting

import (
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
)

// Summarize rolls per-type totals up into income, expense and net.
func Summarize(totals map[domain.TransactionType]domain.TypeTotal) domain.TransactionSummary {
	income := totals[domain.Income]
	expense := totals[domain.Expense]
	return domain.TransactionSummary{
		TotalIncome:  income.Total,
		TotalExpense: expense.Total,
		Net:          income.Total.Sub(expense.Total),
		Count:        income.Count + expense.Count,
	}
}
