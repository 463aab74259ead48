package mapping

import (
	"database/sql"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/SscSPs/fin_manager_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		EntityID:        d.EntityID,
		UnitID:          toNullString(d.UnitID),
		AccountID:       toNullString(d.AccountID),
		Amount:          d.Amount,
		TransactionType: string(d.TransactionType),
		Category:        d.Category,
		TransactionDate: d.Date,
		Description:     d.Description,
		Recipient:       d.Recipient,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		EntityID:        m.EntityID,
		UnitID:          fromNullString(m.UnitID),
		AccountID:       fromNullString(m.AccountID),
		Amount:          m.Amount,
		TransactionType: domain.TransactionType(m.TransactionType),
		Category:        m.Category,
		Date:            m.TransactionDate,
		Description:     m.Description,
		Recipient:       m.Recipient,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

func toNullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
