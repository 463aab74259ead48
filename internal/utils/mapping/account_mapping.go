package mapping

import (
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/SscSPs/fin_manager_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		Name:          d.Name,
		AccountType:   d.AccountType,
		AccountNumber: d.AccountNumber,
		BankName:      d.BankName,
		CurrencyCode:  d.CurrencyCode,
		Balance:       d.Balance,
		IsActive:      d.IsActive,
		Description:   d.Description,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		Name:          m.Name,
		AccountType:   m.AccountType,
		AccountNumber: m.AccountNumber,
		BankName:      m.BankName,
		CurrencyCode:  m.CurrencyCode,
		Balance:       m.Balance,
		IsActive:      m.IsActive,
		Description:   m.Description,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
